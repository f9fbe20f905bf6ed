package classify

import (
	"strings"

	"ctf/internal/domain"
)

// SubFilter moves FAIL entries whose name contains Marker into Category.
// Test names encode the failed sub-check as a suffix, so a literal substring
// test is the classification.
type SubFilter struct {
	Marker   string
	Category domain.Status
}

// Pipeline is the fixed filter order. Earlier filters win when a name
// carries more than one marker.
var Pipeline = []SubFilter{
	{Marker: "tputcomp", Category: domain.CategoryTput},
	{Marker: "generate", Category: domain.CategoryGenerate},
	{Marker: "memcomp", Category: domain.CategoryMemcomp},
	{Marker: "nlcomp", Category: domain.CategoryNlcomp},
	{Marker: "compare_hist", Category: domain.CategoryCompareHist},
}

// Apply moves matching names out of FAIL and returns them in FAIL order
func (f SubFilter) Apply(res *domain.ClassificationResult) []string {
	var moved []string
	for _, name := range res.Snapshot(domain.StatusFail) {
		if !strings.Contains(name, f.Marker) {
			continue
		}
		if res.Move(domain.StatusFail, f.Category, name) {
			moved = append(moved, name)
		}
	}
	return moved
}

// ApplyPipeline runs every filter in order. visit, when not nil, is called
// for each moved name right after its filter has run.
func ApplyPipeline(res *domain.ClassificationResult, visit func(category domain.Status, name string)) {
	for _, f := range Pipeline {
		for _, name := range f.Apply(res) {
			if visit != nil {
				visit(f.Category, name)
			}
		}
	}
}
