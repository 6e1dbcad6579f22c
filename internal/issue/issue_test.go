// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValuesCoversEveryId(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(InvalidPinnedSpecId) {
		t.Fatalf("len(Values()) = %d, want %d", len(values), InvalidPinnedSpecId)
	}
	for i, issue := range values {
		if want := Id(i + 1); issue.Id() != want {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), want)
		}
		if strings.TrimSpace(string(issue.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", issue.Id())
		}
	}
}

func TestGetUnknown(t *testing.T) {
	t.Parallel()

	if Get(0) != nil {
		t.Error("Get(0) should be nil")
	}
	if Get(InvalidPinnedSpecId+1) != nil {
		t.Error("Get(out of range) should be nil")
	}
}

func TestDocLinksAreCloned(t *testing.T) {
	t.Parallel()

	issue := Get(PublishFailedId)
	links := issue.DocLinks()
	if len(links) == 0 {
		t.Fatal("PublishFailed issue has no doc links")
	}
	links[0] = "modified"
	if issue.DocLinks()[0] == "modified" {
		t.Error("DocLinks() returned the internal slice")
	}
}

func TestRenderIncludesDocLinks(t *testing.T) {
	t.Parallel()

	out, err := Get(EntryPointResolutionId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"Cannot derive a CommonJS entry point", "See also", "conditional-exports"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output does not contain %q:\n%s", want, out)
		}
	}
}
