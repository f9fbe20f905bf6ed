package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"ctf/internal/domain"
)

// maxLineSize bounds a single report line. Status scripts can emit long
// diagnostic lines, which are skipped anyway since they have more than two
// tokens.
const maxLineSize = 1024 * 1024

// StatusParser parses the "STATUS NAME" reports produced by the test suite
// status scripts
type StatusParser struct{}

// NewStatusParser creates a new StatusParser
func NewStatusParser() *StatusParser {
	return &StatusParser{}
}

// ParseFile reads and parses the report at path. A missing report is an error.
func (p *StatusParser) ParseFile(path string) (domain.StatusReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.StatusReport{}, fmt.Errorf("could not open status report %s: %w", path, err)
	}
	defer f.Close()

	report, err := p.Parse(f)
	if err != nil {
		return domain.StatusReport{}, fmt.Errorf("error reading status report %s: %w", path, err)
	}
	report.Path = path
	return report, nil
}

// Parse reads a status report. Only lines with exactly two whitespace
// separated tokens are kept; every other line is dropped without error.
// Status strings are kept verbatim, no case folding.
func (p *StatusParser) Parse(r io.Reader) (domain.StatusReport, error) {
	var report domain.StatusReport

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		report.Lines = append(report.Lines, domain.StatusLine{
			Status: fields[0],
			Name:   fields[1],
		})
	}
	if err := scanner.Err(); err != nil {
		return report, err
	}

	return report, nil
}
