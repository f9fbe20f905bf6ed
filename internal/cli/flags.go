package cli

import "ctf/internal/config"

// Flags holds command-line flags
type Flags struct {
	TestInfo     string
	Detailed     bool
	Machine      string
	Compiler     string
	ExpectedFail string
	TestRoot     string
	Baseline     string
	BaselineRoot string
	Output       string
	History      bool
	Section      string
	All          bool
	Limit        int
	Debug        bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		TestInfo:     f.TestInfo,
		Detailed:     f.Detailed,
		Machine:      f.Machine,
		Compiler:     f.Compiler,
		ExpectedFail: f.ExpectedFail,
		TestRoot:     f.TestRoot,
		Baseline:     f.Baseline,
		BaselineRoot: f.BaselineRoot,
		Output:       f.Output,
		History:      f.History,
		Section:      f.Section,
		All:          f.All,
		Limit:        f.Limit,
		Debug:        f.Debug,
	}
}
