// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/cjsify/cjsify/internal/config"
	"github.com/cjsify/cjsify/internal/issue"
	"github.com/cjsify/cjsify/internal/pipeline"
	"github.com/cjsify/cjsify/internal/rewrite"
	"github.com/cjsify/cjsify/pkg/manifest"
	"github.com/cjsify/cjsify/pkg/npm"
)

// ServiceError carries the issue catalog entry rendered below a failed
// command's error message. Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID selects the help text; zero renders none.
	IssueID issue.Id
	// StyledMessage is printed before the help text.
	StyledMessage string
}

func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID, StyledMessage: styledMessage}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a failure to its issue catalog entry and renders the
// error line. Specific causes win over the stage they surfaced in.
func classifyError(err error, verbose bool) *ServiceError {
	var issueID issue.Id

	switch {
	case errors.Is(err, rewrite.ErrUnsupportedLicense):
		issueID = issue.UnsupportedLicenseId
	case errors.Is(err, rewrite.ErrEntryPointResolution):
		issueID = issue.EntryPointResolutionId
	case errors.Is(err, manifest.ErrMissingField), errors.Is(err, manifest.ErrMalformedField),
		errors.Is(err, pipeline.ErrScanFailed):
		issueID = issue.InvalidManifestId
	case errors.Is(err, pipeline.ErrInstallFailed):
		issueID = issue.InstallFailedId
	case errors.Is(err, pipeline.ErrTranspileFailed):
		issueID = issue.TranspileFailedId
	case errors.Is(err, pipeline.ErrPublishFailed):
		issueID = issue.PublishFailedId
	case errors.Is(err, config.ErrInvalidPackageList):
		issueID = issue.InvalidPackageListId
	case errors.Is(err, npm.ErrInvalidPinnedSpec):
		issueID = issue.InvalidPinnedSpecId
	default:
		var ae *issue.ActionableError
		if errors.As(err, &ae) && ae.Issue() != nil {
			issueID = ae.IssueID
		}
	}

	return newServiceError(err, issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose)))
}

// formatErrorForDisplay uses the actionable format when available, which
// adds suggestions and, in verbose mode, the full cause chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderServiceError prints the styled message and the issue help text.
func renderServiceError(stderr io.Writer, svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if entry := issue.Get(svcErr.IssueID); entry != nil {
		rendered, err := entry.Render("dark")
		if err != nil {
			fmt.Fprintf(stderr, "%s failed to render help: %v\n", WarningStyle.Render("!"), err)
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}
