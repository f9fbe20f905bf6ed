package report

import "ctf/internal/domain"

// Summarize builds the machine-readable form of a classified report. Sections
// keep the report order and are present even when empty.
func Summarize(h Header, reg *domain.ExpectedFailureRegistry, res *domain.ClassificationResult) domain.ReportSummary {
	summary := domain.ReportSummary{
		ReportPath:     h.ReportPath,
		RegistryPath:   h.RegistryPath,
		TotalTests:     h.Tests,
		Reconciled:     len(res.Reconciled),
		Miscategorized: append([]domain.ExpectedFailureEntry{}, res.Miscategorized...),
		Sections:       make([]domain.SectionSummary, 0, len(Sections)),
	}
	if reg != nil {
		summary.Machine = reg.Machine
		summary.Compiler = reg.Compiler
	}

	for _, s := range Sections {
		section := domain.SectionSummary{
			Name:    s.Name,
			Title:   s.Title,
			Entries: Entries(s, res),
		}
		for _, test := range section.Entries {
			if details, ok := res.Diagnostics[test]; ok {
				if section.Details == nil {
					section.Details = make(map[string]string)
				}
				section.Details[test] = details
			}
		}
		summary.Sections = append(summary.Sections, section)
	}
	return summary
}

// Failures counts the entries a person has to look at: every section except
// the reconciled expected failures and the passing tests.
func Failures(summary domain.ReportSummary) int {
	total := 0
	for _, s := range summary.Sections {
		if s.Name == SectionXFail || s.Name == SectionPass || s.Name == SectionBFail {
			continue
		}
		total += len(s.Entries)
	}
	return total
}
