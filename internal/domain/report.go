package domain

// Status is a test status code as written by the test suite status scripts
type Status string

// Status codes a report line may carry
const (
	StatusPass    Status = "PASS"
	StatusCFail   Status = "CFAIL"
	StatusBFail   Status = "BFAIL"
	StatusTFail   Status = "TFAIL"
	StatusSFail   Status = "SFAIL"
	StatusFail    Status = "FAIL"
	StatusRun     Status = "RUN"
	StatusGen     Status = "GEN"
	StatusPend    Status = "PEND"
	StatusUnknown Status = "UNKNOWN"
)

// Categories split out of the FAIL bucket by name suffix. They never appear
// in a status report.
const (
	CategoryTput        Status = "TPUT"
	CategoryGenerate    Status = "GENERATE"
	CategoryMemcomp     Status = "MEMCOMP"
	CategoryNlcomp      Status = "NLCOMP"
	CategoryCompareHist Status = "COMPARE_HIST"
)

// Vocabulary is the closed set of statuses that get their own bucket when a
// report is ingested. Anything else, including a literal UNKNOWN, is kept as
// an UnknownEntry.
var Vocabulary = []Status{
	StatusPass,
	StatusCFail,
	StatusBFail,
	StatusTFail,
	StatusSFail,
	StatusFail,
	StatusRun,
	StatusGen,
	StatusPend,
}

// Categories lists the synthetic buckets in the order the sub-filters fill them.
var Categories = []Status{
	CategoryTput,
	CategoryGenerate,
	CategoryMemcomp,
	CategoryNlcomp,
	CategoryCompareHist,
}

// IsKnown reports whether status is part of the report vocabulary.
func IsKnown(status string) bool {
	for _, s := range Vocabulary {
		if string(s) == status {
			return true
		}
	}
	return false
}

// StatusLine is a single "STATUS NAME" line of a status report
type StatusLine struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

// StatusReport is the ordered content of one status report file
type StatusReport struct {
	Path  string       // File the report was read from, empty for in-memory input
	Lines []StatusLine // Two-token lines in file order
}
