package domain

// ExpectedFailureEntry is one record of the expected failure registry.
// Prefix is matched against the start of a test name, so a single entry
// covers every variant suffix a test may be reported with.
type ExpectedFailureEntry struct {
	Prefix         string `json:"prefix"`
	ExpectedStatus Status `json:"expected_status"`
	IssueID        string `json:"issue_id,omitempty"`
	Comment        string `json:"comment,omitempty"`
}

// ExpectedFailureRegistry holds the expected failures for one machine and
// compiler, in document order
type ExpectedFailureRegistry struct {
	Source   string
	Machine  string
	Compiler string
	Entries  []ExpectedFailureEntry
}

// Add appends an entry. A prefix that is already present keeps its position
// and takes the new status, issue and comment.
func (r *ExpectedFailureRegistry) Add(entry ExpectedFailureEntry) {
	for i := range r.Entries {
		if r.Entries[i].Prefix == entry.Prefix {
			r.Entries[i] = entry
			return
		}
	}
	r.Entries = append(r.Entries, entry)
}
