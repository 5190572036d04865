package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDuplicates_AcrossFiles(t *testing.T) {
	records := []FileRecord{
		{Path: "a.js"},
		{Path: "b.js"},
	}
	decls := [][]declaration{
		{{name: "validate", line: 3}},
		{{name: "validate", line: 7}},
	}

	resolveDuplicates(records, decls)

	require.Len(t, records[0].Issues, 1)
	require.Len(t, records[1].Issues, 1)
	assert.Equal(t, Issue{Kind: IssueDuplicateName, Line: 3, Detail: "validate"}, records[0].Issues[0])
	assert.Equal(t, Issue{Kind: IssueDuplicateName, Line: 7, Detail: "validate"}, records[1].Issues[0])
}

func TestResolveDuplicates_WithinFile(t *testing.T) {
	records := []FileRecord{{Path: "a.py"}}
	decls := [][]declaration{
		{{name: "parse", line: 1}, {name: "parse", line: 10}, {name: "render", line: 20}},
	}

	resolveDuplicates(records, decls)

	require.Len(t, records[0].Issues, 2)
	assert.Equal(t, 1, records[0].Issues[0].Line)
	assert.Equal(t, 10, records[0].Issues[1].Line)
}

func TestResolveDuplicates_UniqueNamesUntouched(t *testing.T) {
	records := []FileRecord{
		{Path: "a.go"},
		{Path: "b.go"},
	}
	decls := [][]declaration{
		{{name: "Open", line: 5}},
		{{name: "Close", line: 9}},
	}

	resolveDuplicates(records, decls)

	assert.Empty(t, records[0].Issues)
	assert.Empty(t, records[1].Issues)
}

// Existing scan issues stay ahead of appended duplicate issues so the
// per-record ordering is stable.
func TestResolveDuplicates_AppendsAfterScanIssues(t *testing.T) {
	records := []FileRecord{
		{Path: "a.js", Issues: []Issue{{Kind: IssueDebugStatement, Line: 2}}},
		{Path: "b.js"},
	}
	decls := [][]declaration{
		{{name: "run", line: 1}},
		{{name: "run", line: 1}},
	}

	resolveDuplicates(records, decls)

	require.Len(t, records[0].Issues, 2)
	assert.Equal(t, IssueDebugStatement, records[0].Issues[0].Kind)
	assert.Equal(t, IssueDuplicateName, records[0].Issues[1].Kind)
}
