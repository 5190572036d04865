package review

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is how many unchanged lines are kept on each side of a
// collapsed run.
const contextLines = 3

// RenderDiff renders a line diff between two versions of a file, with
// insertions and deletions prefixed and long unchanged runs collapsed.
// The result always ends with a newline unless it is empty.
func RenderDiff(oldText, newText string) string {
	if oldText == "" && newText == "" {
		return "  (no content available)\n"
	}
	if oldText == newText {
		return "  (staged content identical to HEAD)\n"
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	var sb strings.Builder
	for _, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			for _, line := range lines {
				sb.WriteString(green("+ "+line) + "\n")
			}
		case diffmatchpatch.DiffDelete:
			for _, line := range lines {
				sb.WriteString(red("- "+line) + "\n")
			}
		case diffmatchpatch.DiffEqual:
			writeContext(&sb, lines)
		}
	}
	return sb.String()
}

// writeContext emits an unchanged run, eliding the middle when it is
// longer than twice the context window.
func writeContext(sb *strings.Builder, lines []string) {
	if len(lines) <= 2*contextLines {
		for _, line := range lines {
			sb.WriteString("  " + line + "\n")
		}
		return
	}

	for _, line := range lines[:contextLines] {
		sb.WriteString("  " + line + "\n")
	}
	sb.WriteString(fmt.Sprintf("  ... (%d unchanged lines)\n", len(lines)-2*contextLines))
	for _, line := range lines[len(lines)-contextLines:] {
		sb.WriteString("  " + line + "\n")
	}
}

// splitLines splits diff chunk text into lines without a trailing empty
// entry for the final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
