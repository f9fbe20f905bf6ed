package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultOutputJSONFile is the default summary file name
	DefaultOutputJSONFile = "ctf-results.json"
	// DefaultOutputJSONDir is the default summary directory
	DefaultOutputJSONDir = ".ctf"
	// DefaultReportName names the text report when no test info file is given
	DefaultReportName = "ctf"
	// DefaultHistoryLimit is the number of runs the history command shows
	DefaultHistoryLimit = 20

	// DefaultDBHost is the default history database host
	DefaultDBHost = "127.0.0.1"
	// DefaultDBPort is the default history database port
	DefaultDBPort = "3306"
	// DefaultDBUser is the default history database user
	DefaultDBUser = "root"
	// DefaultDBName is the default history database name
	DefaultDBName = "ctf_history"
)

// DefaultNamelistInclude restricts namelist diffs to the land model
var DefaultNamelistInclude = []string{"lnd_in"}

// DefaultNamelistExclude lists namelists that always differ between runs.
// drv_in carries test and user names.
var DefaultNamelistExclude = []string{"drv_in"}
