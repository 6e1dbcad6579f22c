// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/cjsify/cjsify/internal/logging"
)

// Telemetry carries the logger and clock shared by every stage. The zero
// value discards logs and uses the system clock.
type Telemetry struct {
	Logger *log.Logger
	Clock  logging.Clock
}

func (t Telemetry) logger() *log.Logger {
	if t.Logger == nil {
		return logging.Discard()
	}
	return t.Logger
}

// StartTimer starts timing a stage with the telemetry clock.
func (t Telemetry) StartTimer(label string) *logging.Timer {
	return logging.StartTimer(t.logger(), t.Clock, label)
}
