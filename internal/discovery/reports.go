package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultReportPattern matches the status output files written next to the
// test cases, e.g. clm-intel.status.out.txt
const DefaultReportPattern = "*.status.out.txt"

// ReportFinder locates status report files in a test root
type ReportFinder struct {
	pattern string
}

// NewReportFinder creates a new ReportFinder. An empty pattern uses
// DefaultReportPattern.
func NewReportFinder(pattern string) *ReportFinder {
	if pattern == "" {
		pattern = DefaultReportPattern
	}
	return &ReportFinder{pattern: pattern}
}

// Find returns the matching report files directly inside root, sorted by name
func (f *ReportFinder) Find(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("could not determine test root directory. Expected: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test root is not a directory: %s", root)
	}

	matches, err := filepath.Glob(filepath.Join(root, f.pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid report pattern %q: %w", f.pattern, err)
	}

	var reports []string
	for _, m := range matches {
		if st, err := os.Stat(m); err == nil && !st.IsDir() {
			reports = append(reports, m)
		}
	}
	sort.Strings(reports)
	return reports, nil
}
