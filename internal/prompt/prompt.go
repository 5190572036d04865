package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codesweep/sweep/internal/classify"
)

// Prompt is one ready-to-paste assistant prompt.
type Prompt struct {
	Title string
	Body  string
}

// Build renders the prompt set for a vendor from the classification
// result. Warp gets its two-step terminal flow; every other assistant
// gets the three-step analysis, cleanup, verification set.
func Build(vendor Vendor, result *classify.Result) []Prompt {
	files := flaggedSummary(result)

	if vendor == VendorWarp {
		return []Prompt{
			{
				Title: "Analysis Prompt",
				Body: fmt.Sprintf(
					"Analyze the staged changes below for cleanup opportunities. "+
						"List each debug statement, deferred-work marker, and duplicated "+
						"function with its file and line.\n\n%s", files),
			},
			{
				Title: "Cleanup Execution Prompt",
				Body: fmt.Sprintf(
					"Apply the cleanup plan from the analysis above. Remove debug "+
						"output, resolve or ticket the markers, and consolidate "+
						"duplicates. Show the commands or edits for each file.\n\n%s", files),
			},
		}
	}

	return []Prompt{
		{
			Title: "Initial Analysis Prompt",
			Body: fmt.Sprintf(
				"I am about to commit the staged changes. Review them for "+
					"cleanup before the commit lands. The pre-commit scan flagged "+
					"the following:\n\n%s\n"+
					"For each file, identify what should be removed, what should be "+
					"resolved now, and what belongs in the issue tracker.", files),
		},
		{
			Title: "Systematic Cleanup Prompt",
			Body: fmt.Sprintf(
				"Work through the flagged files one at a time:\n\n%s\n"+
					"1. Delete debug statements or replace them with proper logging.\n"+
					"2. Resolve each deferred-work marker or file it as an issue.\n"+
					"3. Merge duplicated function names into a single implementation.\n"+
					"4. Keep behavior identical; this is cleanup, not a rewrite.", files),
		},
		{
			Title: "Verification Prompt",
			Body: fmt.Sprintf(
				"Verify the cleanup is complete. Confirm that none of the "+
					"following remain in the staged files, and call out anything "+
					"still pending:\n\n%s", files),
		},
	}
}

// WritePrompts persists a vendor's prompt set into dir and returns the
// written path.
func WritePrompts(dir string, vendor Vendor, prompts []Prompt) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating prompt directory: %w", err)
	}

	var sb strings.Builder
	for i, p := range prompts {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n%s\n", p.Title, p.Body))
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-prompts.txt", vendor))
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("writing %s prompts: %w", vendor, err)
	}
	return path, nil
}

// flaggedSummary lists flagged files with their issues, or a short
// all-clear line when nothing was flagged.
func flaggedSummary(result *classify.Result) string {
	flagged := result.Flagged()
	if len(flagged) == 0 {
		return "No issues were flagged; double-check documentation and naming.\n"
	}

	var sb strings.Builder
	for _, rec := range flagged {
		sb.WriteString(fmt.Sprintf("%s (%s):\n", rec.Path, languageLabel(rec)))
		for _, issue := range rec.Issues {
			if issue.Line > 0 {
				sb.WriteString(fmt.Sprintf("  - %s at line %d: %s\n", issue.Kind, issue.Line, issue.Detail))
			} else {
				sb.WriteString(fmt.Sprintf("  - %s: %s\n", issue.Kind, issue.Detail))
			}
		}
	}
	return sb.String()
}

func languageLabel(rec classify.FileRecord) string {
	if rec.Language == "" {
		return "unknown"
	}
	return rec.Language
}
