package domain

// UnknownEntry is a report line whose status is outside the vocabulary.
// The raw status is kept for display.
type UnknownEntry struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

// ReconciledFailure records an expected failure that matched an actual test
type ReconciledFailure struct {
	Entry    ExpectedFailureEntry `json:"entry"`
	TestName string               `json:"test_name"`
}

// ClassificationResult is the per-run state of one classified report.
// Buckets keep insertion order. Filters move names between buckets so a name
// ends up in at most one of them.
type ClassificationResult struct {
	Buckets          map[Status][]string
	Unknown          []UnknownEntry
	Reconciled       []ReconciledFailure
	Miscategorized   []ExpectedFailureEntry
	BaselineFailures []string          // BFAIL names checked against FAIL
	Diagnostics      map[string]string // Detailed-mode text keyed by test name
}

// NewClassificationResult returns a result with every bucket present and empty
func NewClassificationResult() *ClassificationResult {
	res := &ClassificationResult{
		Buckets:     make(map[Status][]string, len(Vocabulary)+len(Categories)),
		Diagnostics: make(map[string]string),
	}
	for _, s := range Vocabulary {
		res.Buckets[s] = []string{}
	}
	for _, c := range Categories {
		res.Buckets[c] = []string{}
	}
	return res
}

// Bucket returns the names currently filed under status
func (r *ClassificationResult) Bucket(status Status) []string {
	return r.Buckets[status]
}

// HasBucket reports whether status names a bucket of this result
func (r *ClassificationResult) HasBucket(status Status) bool {
	_, ok := r.Buckets[status]
	return ok
}

// Add appends name to the bucket for status
func (r *ClassificationResult) Add(status Status, name string) {
	r.Buckets[status] = append(r.Buckets[status], name)
}

// Remove deletes the first occurrence of name from the bucket for status.
func (r *ClassificationResult) Remove(status Status, name string) bool {
	bucket := r.Buckets[status]
	for i, n := range bucket {
		if n == name {
			r.Buckets[status] = append(bucket[:i:i], bucket[i+1:]...)
			return true
		}
	}
	return false
}

// Move transfers one occurrence of name from one bucket to another
func (r *ClassificationResult) Move(from, to Status, name string) bool {
	if !r.Remove(from, name) {
		return false
	}
	r.Add(to, name)
	return true
}

// Snapshot returns a copy of the bucket that is safe to range over while the
// bucket itself is being modified.
func (r *ClassificationResult) Snapshot(status Status) []string {
	bucket := r.Buckets[status]
	snapshot := make([]string, len(bucket))
	copy(snapshot, bucket)
	return snapshot
}

// Count returns the number of names across every bucket, including UNKNOWN
func (r *ClassificationResult) Count() int {
	total := len(r.Unknown)
	for _, bucket := range r.Buckets {
		total += len(bucket)
	}
	return total
}
