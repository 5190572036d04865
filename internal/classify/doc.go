// Package classify turns a staged git change set into a structured
// classification: how big the change is, and which superficial cleanup
// signals each file carries.
//
// # Model
//
// A ChangeSet (ordered file list plus aggregate insertion/deletion
// counts) goes in; a Result comes out. The Result holds one FileRecord
// per input file, a size class, and the list of files that could not be
// scanned. Classification is a pure, single-pass transformation: it
// never writes to the working tree, never touches the git index, and
// produces deeply equal Results for identical inputs.
//
// # Generated files
//
// Files recognized as build output are exempt from content scanning.
// Rules apply in fixed priority order, first match wins:
//
//  1. Path lies under a generated-output directory (dist/, build/, ...).
//  2. Name matches a minified/machine-written glob (*.min.js,
//     package-lock.json, go.sum, ...).
//  3. A .js file has a same-basename .ts/.tsx sibling in the tree.
//
// A generated file always has an empty issue list; its content is never
// opened.
//
// # Issue detection
//
// Non-generated files are scanned line by line for debug statements
// (patterns selected by language), TODO/FIXME/XXX/HACK markers, and an
// over-threshold total line count. Declaration names are collected per
// file and compared across the change set; a name declared twice within
// a file or appearing in two different files yields a duplicate-name
// issue on every declaring record.
//
// Duplicate detection is name-based only. Two classes that each
// implement a validate method are flagged even though both are
// legitimate. It is a hint for the reviewer, not a semantic judgment;
// treat the results accordingly.
//
// # Errors
//
// Per-file problems never abort a run. A deleted file still counts
// toward the size class but is recorded as skipped; an unreadable or
// binary file is treated like generated output and recorded as skipped.
// The only hard failure is invalid configuration, which New reports
// before any scanning happens.
package classify
