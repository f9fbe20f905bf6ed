package classify

import (
	log "github.com/sirupsen/logrus"

	"ctf/internal/domain"
)

// Diagnoser produces detailed-mode text for tests split out of FAIL
type Diagnoser interface {
	Namelist(test string) string
	CompareHist(test string) string
}

// Classifier runs the full classification of one status report
type Classifier struct {
	diagnoser Diagnoser
	detailed  bool
}

// NewClassifier creates a new Classifier. diagnoser is only consulted when
// detailed is set and may be nil otherwise.
func NewClassifier(diagnoser Diagnoser, detailed bool) *Classifier {
	return &Classifier{
		diagnoser: diagnoser,
		detailed:  detailed && diagnoser != nil,
	}
}

// Classify buckets the report, reconciles expected failures, drops baseline
// failures from FAIL and runs the sub-filter pipeline, in that order.
func (c *Classifier) Classify(report domain.StatusReport, reg *domain.ExpectedFailureRegistry) *domain.ClassificationResult {
	res := Bucketize(report)

	if reg != nil {
		Reconcile(res, reg.Entries)
	}
	DropBaselineFailures(res)

	ApplyPipeline(res, func(category domain.Status, name string) {
		if !c.detailed {
			return
		}
		switch category {
		case domain.CategoryNlcomp:
			res.Diagnostics[name] = c.diagnoser.Namelist(name)
		case domain.CategoryCompareHist:
			res.Diagnostics[name] = c.diagnoser.CompareHist(name)
		}
	})

	log.WithFields(log.Fields{
		"report":         report.Path,
		"tests":          len(report.Lines),
		"reconciled":     len(res.Reconciled),
		"miscategorized": len(res.Miscategorized),
		"fail":           len(res.Bucket(domain.StatusFail)),
	}).Debug("classified report")

	return res
}
