// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"strings"

	"github.com/cjsify/cjsify/internal/shell"
	"github.com/cjsify/cjsify/pkg/manifest"
)

// AlreadyPublishedMarker is the registry message for a version that exists.
const AlreadyPublishedMarker = "You cannot publish over the previously published versions"

// dryRunFlag is appended to the publish command in dry-run mode.
const dryRunFlag = "--dry-run"

const (
	// OutcomePublished means the publish command succeeded.
	OutcomePublished PublishOutcome = iota + 1
	// OutcomeAlreadyPublished means the registry already had this version.
	OutcomeAlreadyPublished
)

type (
	// PublishOutcome is the result of a successful Publish.
	PublishOutcome int

	// PublishResult records one published package.
	PublishResult struct {
		Identity string
		Dir      string
		Outcome  PublishOutcome
	}

	// Publisher runs the registry publish command for converted packages.
	Publisher struct {
		runner    shell.Runner
		command   string
		dryRun    bool
		telemetry Telemetry
	}
)

// NewPublisher creates a Publisher. In dry-run mode the command is run with
// --dry-run appended.
func NewPublisher(runner shell.Runner, command string, dryRun bool, telemetry Telemetry) *Publisher {
	return &Publisher{runner: runner, command: command, dryRun: dryRun, telemetry: telemetry}
}

// DryRun reports whether publishing is simulated.
func (p *Publisher) DryRun() bool { return p.dryRun }

// CommandLine returns the publish command line that Publish runs.
func (p *Publisher) CommandLine() string {
	if p.dryRun {
		return p.command + " " + dryRunFlag
	}
	return p.command
}

// Publish publishes the package in dir. A version the registry already has
// is reported as OutcomeAlreadyPublished; every other failure is returned.
func (p *Publisher) Publish(ctx context.Context, dir string) (PublishOutcome, error) {
	m, err := manifest.LoadDir(dir)
	if err != nil {
		return 0, &StageError{Stage: StagePublish, Target: dir, Cause: err}
	}
	identity := m.Identity()

	timer := p.telemetry.StartTimer(identity + " has been published")
	if _, err := p.runner.Run(ctx, shell.Command{Line: p.CommandLine(), Dir: dir}); err != nil {
		if strings.Contains(err.Error(), AlreadyPublishedMarker) {
			p.telemetry.logger().Info(identity + " is already published")
			return OutcomeAlreadyPublished, nil
		}
		return 0, &StageError{Stage: StagePublish, Target: identity, Cause: err}
	}
	timer.Stop()

	return OutcomePublished, nil
}

// String returns a readable outcome name.
func (o PublishOutcome) String() string {
	switch o {
	case OutcomePublished:
		return "published"
	case OutcomeAlreadyPublished:
		return "already published"
	default:
		return "unknown"
	}
}
