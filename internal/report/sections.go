package report

import "ctf/internal/domain"

// Section names, in the order they appear in every report
const (
	SectionXFail       = "xfail"
	SectionCFail       = "cfail"
	SectionBFail       = "bfail"
	SectionTput        = "tput"
	SectionGenerate    = "generate"
	SectionMemcomp     = "memcomp"
	SectionNlcomp      = "nlcomp"
	SectionCompareHist = "compare_hist"
	SectionRun         = "run"
	SectionTFail       = "tfail"
	SectionSFail       = "sfail"
	SectionFail        = "fail"
	SectionGen         = "gen"
	SectionPend        = "pend"
	SectionUnknown     = "unknown"
	SectionPass        = "pass"
)

// Section describes one block of the text report
type Section struct {
	Name   string
	Title  string
	Bucket domain.Status // Empty for sections not backed by a bucket
	Note   string        // Line printed before the entries, if any
}

// Sections is the fixed section order. Scripts downstream read the report by
// position, so this order never changes with the content.
var Sections = []Section{
	{Name: SectionXFail, Title: "XFAIL tests"},
	{Name: SectionCFail, Title: "CFAIL tests - configure/compile failure", Bucket: domain.StatusCFail},
	{Name: SectionBFail, Title: "BFAIL tests", Note: "removing BFAIL tests from the FAIL list."},
	{Name: SectionTput, Title: "through put tests", Bucket: domain.CategoryTput, Note: "removing tput failures from the FAIL list."},
	{Name: SectionGenerate, Title: "generate tests", Bucket: domain.CategoryGenerate, Note: "removing generate failures from the FAIL list."},
	{Name: SectionMemcomp, Title: "memcomp tests", Bucket: domain.CategoryMemcomp, Note: "removing memcomp failures from the FAIL list."},
	{Name: SectionNlcomp, Title: "nlcomp tests", Bucket: domain.CategoryNlcomp, Note: "separating nlcomp failures from the FAIL list."},
	{Name: SectionCompareHist, Title: "compare_hist tests", Bucket: domain.CategoryCompareHist, Note: "separating compare_hist failures from the FAIL list."},
	{Name: SectionRun, Title: "RUN fail tests", Bucket: domain.StatusRun},
	{Name: SectionTFail, Title: "TFAIL tests", Bucket: domain.StatusTFail},
	{Name: SectionSFail, Title: "SFAIL tests - scripts failures", Bucket: domain.StatusSFail},
	{Name: SectionFail, Title: "FAIL tests", Bucket: domain.StatusFail},
	{Name: SectionGen, Title: "GEN tests", Bucket: domain.StatusGen},
	{Name: SectionPend, Title: "PEND tests", Bucket: domain.StatusPend},
	{Name: SectionUnknown, Title: "Tests with UNKNOWN status type"},
	{Name: SectionPass, Title: "Passing tests:", Bucket: domain.StatusPass},
}

// Lookup returns the section with the given name
func Lookup(name string) (Section, bool) {
	for _, s := range Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Names returns every section name in report order
func Names() []string {
	names := make([]string, len(Sections))
	for i, s := range Sections {
		names[i] = s.Name
	}
	return names
}

// Entries returns the lines listed under section s for a classified result
func Entries(s Section, res *domain.ClassificationResult) []string {
	switch s.Name {
	case SectionXFail:
		entries := make([]string, 0, len(res.Reconciled))
		for _, r := range res.Reconciled {
			entries = append(entries, formatEntry(r.Entry))
		}
		return entries
	case SectionBFail:
		return append([]string{}, res.BaselineFailures...)
	case SectionUnknown:
		entries := make([]string, 0, len(res.Unknown))
		for _, u := range res.Unknown {
			entries = append(entries, u.Status+" : "+u.Name)
		}
		return entries
	}
	return res.Snapshot(s.Bucket)
}

func formatEntry(e domain.ExpectedFailureEntry) string {
	return e.Prefix + " : " + string(e.ExpectedStatus)
}
