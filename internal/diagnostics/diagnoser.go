package diagnostics

// Diagnoser bundles the detailed-mode checks used by the classifier
type Diagnoser struct {
	namelist *NamelistChecker
	hist     *HistChecker
}

// NewDiagnoser creates a new Diagnoser
func NewDiagnoser(namelist *NamelistChecker, hist *HistChecker) *Diagnoser {
	return &Diagnoser{namelist: namelist, hist: hist}
}

// Namelist explains an nlcomp failure
func (d *Diagnoser) Namelist(test string) string {
	return d.namelist.Check(test)
}

// CompareHist explains a compare_hist failure
func (d *Diagnoser) CompareHist(test string) string {
	return d.hist.Check(test)
}
