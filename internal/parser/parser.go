package parser

import (
	"io"

	"ctf/internal/domain"
)

// Parser turns raw status report text into a StatusReport
type Parser interface {
	Parse(r io.Reader) (domain.StatusReport, error)
	ParseFile(path string) (domain.StatusReport, error)
}
