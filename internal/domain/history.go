package domain

// SectionSummary is one rendered section of a classified report
type SectionSummary struct {
	Name    string            `json:"name"`
	Title   string            `json:"title"`
	Entries []string          `json:"entries"`
	Details map[string]string `json:"details,omitempty"`
}

// ReportSummary is the machine-readable form of one classified report
type ReportSummary struct {
	ReportPath     string                 `json:"report_path"`
	RegistryPath   string                 `json:"registry_path"`
	Machine        string                 `json:"machine"`
	Compiler       string                 `json:"compiler"`
	TotalTests     int                    `json:"total_tests"`
	Reconciled     int                    `json:"reconciled"`
	Miscategorized []ExpectedFailureEntry `json:"miscategorized"`
	Sections       []SectionSummary       `json:"sections"`
}

// Section returns the named section, or nil
func (r *ReportSummary) Section(name string) *SectionSummary {
	for i := range r.Sections {
		if r.Sections[i].Name == name {
			return &r.Sections[i]
		}
	}
	return nil
}

// RunSummaryMeta contains metadata about a classify run
type RunSummaryMeta struct {
	TotalReports    int     `json:"total_reports"`
	TotalTests      int     `json:"total_tests"`
	Failures        int     `json:"failures"`
	Miscategorized  int     `json:"miscategorized"`
	Detailed        bool    `json:"detailed"`
	SummaryFile     string  `json:"summary_file"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunSummary is the complete stored output of a classify run
type RunSummary struct {
	Meta    RunSummaryMeta  `json:"meta"`
	Reports []ReportSummary `json:"reports"`
}

// HistoryRun is one row of the recorded run history
type HistoryRun struct {
	ID         int64
	Timestamp  string
	Machine    string
	Compiler   string
	ReportPath string
	Total      int
	Failures   int
}
