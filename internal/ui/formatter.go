package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"ctf/internal/domain"
	"ctf/internal/report"
)

// Formatter formats and displays console output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter() *Formatter {
	return &Formatter{out: os.Stdout}
}

// NewFormatterTo creates a new Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// PrintSummary displays the statistics of a classify run
func (f *Formatter) PrintSummary(summary *domain.RunSummary) {
	meta := summary.Meta

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                  Test Classification Summary                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rule := "├─────────────────────────────────┼─────────────────────────────┤"
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row(white, "Status Reports", meta.TotalReports)
	fmt.Fprintln(f.out, rule)
	f.row(white, "Tests", meta.TotalTests)
	fmt.Fprintln(f.out, rule)
	f.row(countColor(meta.Failures), "Unexpected Failures", meta.Failures)
	fmt.Fprintln(f.out, rule)
	f.row(countColor(meta.Miscategorized), "Miscategorized Expected Fails", meta.Miscategorized)
	fmt.Fprintln(f.out, rule)
	f.row(white, "Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Fprintln(f.out, rule)
	f.row(white, "Report", meta.SummaryFile)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	for _, r := range summary.Reports {
		failures := report.Failures(r)
		if failures == 0 {
			green.Fprintf(f.out, "✓ %s: no unexpected failures\n", r.ReportPath)
			continue
		}
		red.Fprintf(f.out, "✗ %s: %d unexpected failure(s)\n", r.ReportPath, failures)
		for _, s := range r.Sections {
			if len(s.Entries) == 0 || !countsAsFailure(s.Name) {
				continue
			}
			yellow.Fprintf(f.out, "  |_%s (%d)\n", s.Title, len(s.Entries))
		}
	}
}

func (f *Formatter) row(c *color.Color, label string, value interface{}) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, "%-27v", value)
	fmt.Fprintln(f.out, " │")
}

func countColor(n int) *color.Color {
	if n == 0 {
		return green
	}
	return red
}

func countsAsFailure(section string) bool {
	return section != report.SectionXFail && section != report.SectionBFail && section != report.SectionPass
}

// PrintSections prints the sections of a saved run as a tree. section limits
// the output to one section name; all includes passing tests and empty
// sections.
func (f *Formatter) PrintSections(summary *domain.RunSummary, section string, all bool) error {
	if section != "" {
		if _, ok := report.Lookup(section); !ok {
			return fmt.Errorf("unknown section %q (expected one of %s)", section, strings.Join(report.Names(), ", "))
		}
	}

	for i, r := range summary.Reports {
		cyan.Fprintf(f.out, "%s [%s %s]\n", r.ReportPath, r.Machine, r.Compiler)

		var shown []domain.SectionSummary
		for _, s := range r.Sections {
			switch {
			case section != "" && s.Name != section:
			case section == "" && !all && (s.Name == report.SectionPass || len(s.Entries) == 0):
			default:
				shown = append(shown, s)
			}
		}

		for j, s := range shown {
			branch, indent := "├── ", "│   "
			if j == len(shown)-1 {
				branch, indent = "└── ", "    "
			}
			sectionColor(s.Name).Fprintf(f.out, "%s%s (%d)\n", branch, s.Title, len(s.Entries))
			for k, entry := range s.Entries {
				leaf := "├── "
				if k == len(s.Entries)-1 {
					leaf = "└── "
				}
				fmt.Fprintf(f.out, "%s%s%s\n", indent, leaf, entry)
			}
		}

		if len(r.Miscategorized) > 0 && (section == "" || section == report.SectionXFail) {
			yellow.Fprintf(f.out, "miscategorized expected failures (%d)\n", len(r.Miscategorized))
			for _, e := range r.Miscategorized {
				fmt.Fprintf(f.out, "    %s : %s\n", e.Prefix, e.ExpectedStatus)
			}
		}

		if i < len(summary.Reports)-1 {
			fmt.Fprintln(f.out)
		}
	}
	return nil
}

func sectionColor(name string) *color.Color {
	switch name {
	case report.SectionPass:
		return green
	case report.SectionXFail, report.SectionBFail:
		return yellow
	}
	return red
}

// PrintHistory prints recorded classify runs, newest first
func (f *Formatter) PrintHistory(runs []domain.HistoryRun) {
	if len(runs) == 0 {
		yellow.Fprintln(f.out, "No recorded runs.")
		return
	}
	green.Fprintf(f.out, "Last %d recorded run(s):\n\n", len(runs))
	for _, run := range runs {
		c := countColor(run.Failures)
		fmt.Fprintf(f.out, "%5d  %-25s  %-12s %-8s  %6d tests  ", run.ID, run.Timestamp, run.Machine, run.Compiler, run.Total)
		c.Fprintf(f.out, "%d failure(s)", run.Failures)
		fmt.Fprintf(f.out, "  %s\n", run.ReportPath)
	}
}
