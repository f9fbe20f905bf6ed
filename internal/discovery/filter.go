package discovery

import (
	"path/filepath"
	"strings"
)

// Filter selects namelist files by name. Exclusions are applied first; an
// empty include list keeps everything that is not excluded.
type Filter struct {
	include []string
	exclude []string
}

// NewFilter creates a new Filter. Patterns support * and ? wildcards;
// patterns without wildcards must match the whole name.
func NewFilter(include, exclude []string) *Filter {
	return &Filter{include: include, exclude: exclude}
}

// Apply returns the names that pass the filter, keeping their order
func (f *Filter) Apply(names []string) []string {
	var filtered []string
	for _, name := range names {
		if f.Match(name) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// Match reports whether a single name passes the filter
func (f *Filter) Match(name string) bool {
	base := filepath.Base(name)
	for _, pattern := range f.exclude {
		if matchName(pattern, base) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, pattern := range f.include {
		if matchName(pattern, base) {
			return true
		}
	}
	return false
}

func matchName(pattern, name string) bool {
	if pattern == "" {
		return false
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == name
	}
	matched, err := filepath.Match(pattern, name)
	return err == nil && matched
}
