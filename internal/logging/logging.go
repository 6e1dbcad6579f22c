// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line.
const Prefix = "cjsify"

type (
	// Clock abstracts time for stage timing. Production code uses RealClock.
	Clock interface {
		Now() time.Time
		Since(t time.Time) time.Duration
	}

	// RealClock implements Clock using system time.
	RealClock struct{}

	// Timer measures one stage and logs its label when the stage completes.
	// A stage that fails is never reported as finished.
	Timer struct {
		logger  *log.Logger
		clock   Clock
		label   string
		started time.Time
	}
)

// New creates the logger used across the pipeline. Debug output is enabled
// when verbose is set.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Now returns the current system time.
func (RealClock) Now() time.Time { return time.Now() }

// Since returns the time elapsed since t.
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }

// StartTimer starts timing label. A nil clock means RealClock.
func StartTimer(logger *log.Logger, clock Clock, label string) *Timer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Timer{logger: logger, clock: clock, label: label, started: clock.Now()}
}

// Stop logs the label with the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := t.clock.Since(t.started)
	t.logger.Info(t.label, "elapsed", elapsed)
	return elapsed
}
