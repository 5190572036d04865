package classify

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// binarySniffLen is how much of a file is inspected for NUL bytes
	// before line scanning starts.
	binarySniffLen = 8192

	// maxLineBytes bounds a single scanned line. Lines beyond this are
	// a strong sign of machine-written content; the file is skipped
	// rather than partially scanned.
	maxLineBytes = 1 << 20

	reasonMissing = "missing from working tree"
	reasonBinary  = "binary content"
)

// declaration is a function or class name extracted from a scanned
// file, with its 1-based line.
type declaration struct {
	name string
	line int
}

// fileScan is the per-file intermediate carried from the parallel scan
// into the sequential reduce.
type fileScan struct {
	record  FileRecord
	decls   []declaration
	skipped *SkippedFile
}

// scanFile reads one non-generated file and collects its issues and
// declarations. Per-file errors are absorbed into the skipped entry:
// a deleted file still counts toward the size class, while an
// unreadable or binary file is treated like generated output.
func (c *Classifier) scanFile(root, rel string) fileScan {
	rec := FileRecord{Path: rel}

	f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileScan{
				record:  rec,
				skipped: &SkippedFile{Path: rel, Reason: reasonMissing},
			}
		}
		rec.IsGenerated = true
		return fileScan{
			record:  rec,
			skipped: &SkippedFile{Path: rel, Reason: fmt.Sprintf("unreadable: %v", err)},
		}
	}
	defer f.Close()

	reader := bufio.NewReaderSize(f, 64*1024)
	sample, _ := reader.Peek(binarySniffLen)
	if bytes.IndexByte(sample, 0) >= 0 {
		rec.IsGenerated = true
		return fileScan{
			record:  rec,
			skipped: &SkippedFile{Path: rel, Reason: reasonBinary},
		}
	}

	lang := languageFor(rel, sample)
	rec.Language = lang
	debugPatterns := c.rules.debug[lang]
	declPatterns := c.rules.decls[lang]

	var decls []declaration
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		for _, rx := range debugPatterns {
			if match := rx.FindString(line); match != "" {
				rec.Issues = append(rec.Issues, Issue{
					Kind:   IssueDebugStatement,
					Line:   lineNo,
					Detail: strings.TrimSpace(match),
				})
				break
			}
		}

		for _, marker := range c.rules.todos {
			if strings.Contains(line, marker) {
				rec.Issues = append(rec.Issues, Issue{
					Kind:   IssueTodoMarker,
					Line:   lineNo,
					Detail: marker,
				})
				break
			}
		}

		for _, rx := range declPatterns {
			if m := rx.FindStringSubmatch(line); m != nil {
				decls = append(decls, declaration{name: m[1], line: lineNo})
				break
			}
		}
	}

	if err := scanner.Err(); err != nil {
		// Discard partial findings so results never depend on how far
		// the scan got before failing.
		rec.Issues = nil
		rec.IsGenerated = true
		return fileScan{
			record:  rec,
			skipped: &SkippedFile{Path: rel, Reason: fmt.Sprintf("unreadable: %v", err)},
		}
	}

	rec.LineCount = lineNo
	if c.cfg.LargeFileLines > 0 && lineNo > c.cfg.LargeFileLines {
		rec.Issues = append(rec.Issues, Issue{
			Kind:   IssueLargeFile,
			Detail: fmt.Sprintf("%d lines", lineNo),
		})
	}

	return fileScan{record: rec, decls: decls}
}
