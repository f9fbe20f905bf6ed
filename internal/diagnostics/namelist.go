package diagnostics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/kylelemons/godebug/diff"

	"ctf/internal/config"
	"ctf/internal/discovery"
)

// NamelistChecker diffs the namelists of an nlcomp failure against the baseline
type NamelistChecker struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter
}

// NewNamelistChecker creates a new NamelistChecker
func NewNamelistChecker(cfg *config.Config, scanner *discovery.Scanner, filter *discovery.Filter) *NamelistChecker {
	return &NamelistChecker{
		config:  cfg,
		scanner: scanner,
		filter:  filter,
	}
}

// Check returns the namelist diagnostics for an nlcomp test. Problems are
// reported as ERROR lines in the returned text.
func (nc *NamelistChecker) Check(test string) string {
	var b strings.Builder

	baseName := test
	if i := strings.LastIndex(test, ".nlcomp"); i >= 0 {
		baseName = test[:i]
	}
	runDir := filepath.Join(nc.config.GetTestRoot(), "..", baseName, "run")

	names, err := nc.scanner.Scan(runDir)
	if err != nil {
		fmt.Fprintf(&b, "ERROR : nlcomp : %s : %v\n", test, err)
		return b.String()
	}

	for _, nlfile := range nc.filter.Apply(names) {
		nc.checkFile(&b, test, runDir, nlfile)
	}

	return b.String()
}

func (nc *NamelistChecker) checkFile(w io.Writer, test, runDir, nlfile string) {
	machine := regexp.QuoteMeta(nc.config.Machine)
	match := regexp.MustCompile(machine + `_([a-z]+)`).FindStringSubmatch(test)
	if match == nil {
		fmt.Fprintf(w, "ERROR : nlcomp : %s : could not match compiler re.\n", test)
		return
	}
	compiler := match[1]

	baselineRe := regexp.MustCompile(`^(.+\.` + machine + `_` + regexp.QuoteMeta(compiler) + `(\.[\w_\-]{2,})?)`)
	baseline := baselineRe.FindStringSubmatch(test)
	if baseline == nil {
		fmt.Fprintf(w, "ERROR : nlcomp : %s : could not determine baseline case name.\n", test)
		return
	}

	baselineFile := filepath.Join(nc.config.BaselineRoot, nc.config.Baseline, baseline[1], "CaseDocs", nlfile)
	namelistFile := filepath.Join(runDir, nlfile)

	missing := false
	if !isFile(baselineFile) {
		fmt.Fprintf(w, "ERROR : nlcomp : %s : could not find baseline namelist file : %s\n", test, baselineFile)
		missing = true
	}
	if !isFile(namelistFile) {
		fmt.Fprintf(w, "ERROR : nlcomp : %s : could not find test namelist file : %s\n", test, namelistFile)
		missing = true
	}
	if missing {
		return
	}

	if err := writeNamelistDiff(w, baselineFile, namelistFile); err != nil {
		fmt.Fprintf(w, "ERROR : nlcomp : %s : %v\n", test, err)
	}
}

// writeNamelistDiff writes a line diff of two namelist files, or nothing
// when they are identical
func writeNamelistDiff(w io.Writer, baselineFile, namelistFile string) error {
	want, err := os.ReadFile(baselineFile)
	if err != nil {
		return fmt.Errorf("read baseline namelist: %w", err)
	}
	got, err := os.ReadFile(namelistFile)
	if err != nil {
		return fmt.Errorf("read test namelist: %w", err)
	}

	chunks := diff.DiffChunks(splitLines(string(want)), splitLines(string(got)))
	changed := false
	for _, c := range chunks {
		if len(c.Added) > 0 || len(c.Deleted) > 0 {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	fmt.Fprintf(w, "  diffing namelist files :\n    %s\n", shellquote.Join("diff", baselineFile, namelistFile))
	for _, c := range chunks {
		for _, line := range c.Deleted {
			fmt.Fprintf(w, "< %s\n", line)
		}
		for _, line := range c.Added {
			fmt.Fprintf(w, "> %s\n", line)
		}
	}
	return nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
