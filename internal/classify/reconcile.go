package classify

import (
	"strings"

	"ctf/internal/domain"
)

// Bucketize files every line of the report under its status. Lines with a
// status outside the vocabulary are kept as UNKNOWN entries with the raw
// status.
func Bucketize(report domain.StatusReport) *domain.ClassificationResult {
	res := domain.NewClassificationResult()
	for _, line := range report.Lines {
		if domain.IsKnown(line.Status) {
			res.Add(domain.Status(line.Status), line.Name)
			continue
		}
		res.Unknown = append(res.Unknown, domain.UnknownEntry{Status: line.Status, Name: line.Name})
	}
	return res
}

// Reconcile removes expected failures from their buckets. Entries are
// processed in registry order; each one claims the first name in the bucket
// of its expected status that starts with its prefix. Entries that claim
// nothing, including a name an earlier entry already took, are recorded as
// miscategorized.
func Reconcile(res *domain.ClassificationResult, entries []domain.ExpectedFailureEntry) {
	for _, entry := range entries {
		name, found := firstWithPrefix(res.Bucket(entry.ExpectedStatus), entry.Prefix)
		if !found {
			res.Miscategorized = append(res.Miscategorized, entry)
			continue
		}
		res.Remove(entry.ExpectedStatus, name)
		res.Reconciled = append(res.Reconciled, domain.ReconciledFailure{Entry: entry, TestName: name})
	}
}

func firstWithPrefix(bucket []string, prefix string) (string, bool) {
	for _, name := range bucket {
		if strings.HasPrefix(name, prefix) {
			return name, true
		}
	}
	return "", false
}

// DropBaselineFailures removes from FAIL every name that is also in BFAIL:
// a comparison against a broken baseline says nothing about the test.
func DropBaselineFailures(res *domain.ClassificationResult) {
	for _, name := range res.Snapshot(domain.StatusBFail) {
		res.BaselineFailures = append(res.BaselineFailures, name)
		res.Remove(domain.StatusFail, name)
	}
}
