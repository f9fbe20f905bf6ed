package report

import (
	"fmt"
	"io"
	"strings"

	"ctf/internal/domain"
)

var separator = strings.Repeat("=", 80)

// CaseRebuilder reruns the build of a CFAIL case, writing its output to w
type CaseRebuilder interface {
	Rebuild(w io.Writer, test string)
}

// Header identifies the inputs of one report block
type Header struct {
	ReportPath   string
	RegistryPath string
	Tests        int // Lines read from the report
}

// Renderer writes classified results as the text report
type Renderer struct {
	detailed  bool
	rebuilder CaseRebuilder
}

// NewRenderer creates a new Renderer. rebuilder is only used in detailed
// mode and may be nil.
func NewRenderer(detailed bool, rebuilder CaseRebuilder) *Renderer {
	return &Renderer{detailed: detailed, rebuilder: rebuilder}
}

// Render writes one report block: the header, every section in the fixed
// order, and two trailing blank lines.
func (r *Renderer) Render(w io.Writer, h Header, res *domain.ClassificationResult) error {
	ew := &errWriter{w: w}

	ew.println(separator)
	ew.println("  Report file:")
	ew.printf("    %s\n", h.ReportPath)
	ew.println(separator)
	ew.println("  Using expected failures from:")
	ew.printf("    %s\n", h.RegistryPath)

	for _, s := range Sections {
		ew.println(separator)
		ew.printf("  %s\n\n", s.Title)
		r.renderBody(ew, s, res)
	}
	ew.println("\n\n")

	if ew.err != nil {
		return fmt.Errorf("failed to write report: %w", ew.err)
	}
	return nil
}

func (r *Renderer) renderBody(ew *errWriter, s Section, res *domain.ClassificationResult) {
	switch s.Name {
	case SectionXFail:
		ew.println("    removing expected failure tests :")
		for _, entry := range Entries(s, res) {
			ew.printf("      %s\n", entry)
		}
		if len(res.Miscategorized) > 0 {
			ew.println("\n    miscategorized expected failure tests :")
			for _, e := range res.Miscategorized {
				ew.printf("      %s\n", formatEntry(e))
			}
		}
		return
	case SectionCFail:
		for _, test := range Entries(s, res) {
			ew.printf("    %s\n", test)
			if r.detailed && r.rebuilder != nil && ew.err == nil {
				r.rebuilder.Rebuild(ew.w, test)
			}
		}
		return
	}

	if s.Note == "" {
		for _, entry := range Entries(s, res) {
			ew.printf("    %s\n", entry)
		}
		return
	}

	ew.printf("    %s\n", s.Note)
	for _, test := range Entries(s, res) {
		details, ok := res.Diagnostics[test]
		if !r.detailed || !ok {
			ew.printf("      %s\n", test)
			continue
		}
		switch s.Name {
		case SectionCompareHist:
			dots := strings.Repeat(".", len(test))
			ew.printf("      %s\n      %s\n      %s\n", dots, test, dots)
		default:
			ew.printf("      %s\n", test)
			ew.println(strings.Repeat("-", 80))
		}
		ew.print(details)
	}
}

// errWriter keeps the first write error so rendering code can stay linear
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (ew *errWriter) println(s string) {
	ew.print(s + "\n")
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
