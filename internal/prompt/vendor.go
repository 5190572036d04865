// Package prompt turns classification results into cleanup context and
// ready-to-paste prompts for whichever AI coding assistant a repository
// is set up for.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
)

// Vendor identifies an AI assistant detected in a repository.
type Vendor string

const (
	VendorClaude  Vendor = "claude"
	VendorCursor  Vendor = "cursor"
	VendorCodex   Vendor = "codex"
	VendorRoo     Vendor = "roo"
	VendorWarp    Vendor = "warp"
	VendorGeneric Vendor = "generic"
)

// vendorMarkers maps a vendor to the files or directories whose
// presence at the repository root selects it.
var vendorMarkers = []struct {
	vendor  Vendor
	markers []string
}{
	{VendorClaude, []string{"CLAUDE.md", "claude.md"}},
	{VendorCursor, []string{".cursorrules", ".cursor"}},
	{VendorCodex, []string{".codex"}},
	{VendorRoo, []string{".roo"}},
	{VendorWarp, []string{".warp"}},
}

// ParseVendor validates a vendor name given on the command line.
func ParseVendor(name string) (Vendor, error) {
	switch v := Vendor(name); v {
	case VendorClaude, VendorCursor, VendorCodex, VendorRoo, VendorWarp, VendorGeneric:
		return v, nil
	default:
		return "", fmt.Errorf("unknown vendor %q (expected claude, cursor, codex, roo, warp, or generic)", name)
	}
}

// DetectVendors returns the assistants configured in the repository, in
// a stable order. With no markers present it returns VendorGeneric so
// callers always have a prompt set to write.
func DetectVendors(root string) []Vendor {
	var found []Vendor
	for _, entry := range vendorMarkers {
		for _, marker := range entry.markers {
			if _, err := os.Stat(filepath.Join(root, marker)); err == nil {
				found = append(found, entry.vendor)
				break
			}
		}
	}
	if len(found) == 0 {
		return []Vendor{VendorGeneric}
	}
	return found
}
