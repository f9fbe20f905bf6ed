package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Test suite settings
	Machine       string
	Compiler      string
	TestRoot      string
	ExpectedFail  string
	Baseline      string
	BaselineRoot  string
	ReportPattern string
	ReportName    string

	// Namelist diagnostics
	NamelistInclude []string
	NamelistExclude []string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Run history
	Database DatabaseConfig

	// Command flags
	Flags Flags
}

// DatabaseConfig holds the MySQL connection settings of the run history
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

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

// TestInfo is the YAML file describing one test suite run
type TestInfo struct {
	Machine       string `yaml:"machine"`
	Compiler      string `yaml:"compiler"`
	ScratchDir    string `yaml:"scratch_dir"`
	TestDataDir   string `yaml:"test_data_dir"`
	ExpectedFail  string `yaml:"expected_fail"`
	Baseline      string `yaml:"baseline"`
	BaselineRoot  string `yaml:"baseline_root"`
	ReportPattern string `yaml:"report_pattern"`
	Namelists     struct {
		Include []string `yaml:"include"`
		Exclude []string `yaml:"exclude"`
	} `yaml:"namelists"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		ReportName:     DefaultReportName,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Database: DatabaseConfig{
			Host: DefaultDBHost,
			Port: DefaultDBPort,
			User: DefaultDBUser,
			Name: DefaultDBName,
		},
		Flags: Flags{Limit: DefaultHistoryLimit},
	}
	cfg.NamelistInclude = append([]string(nil), DefaultNamelistInclude...)
	cfg.NamelistExclude = append([]string(nil), DefaultNamelistExclude...)
	return cfg
}

// Load creates a config and applies the test info file, the environment and
// the flags, in increasing order of precedence
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.Apply(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply layers the test info file, the environment and the flags onto c
func (c *Config) Apply(flags Flags) error {
	c.Flags = flags

	if flags.TestInfo != "" {
		info, err := ReadTestInfo(flags.TestInfo)
		if err != nil {
			return err
		}
		c.applyTestInfo(info)
		base := filepath.Base(flags.TestInfo)
		c.ReportName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	c.applyEnv()

	setIfNotEmpty(&c.Machine, flags.Machine)
	setIfNotEmpty(&c.Compiler, flags.Compiler)
	setIfNotEmpty(&c.ExpectedFail, flags.ExpectedFail)
	setIfNotEmpty(&c.TestRoot, flags.TestRoot)
	setIfNotEmpty(&c.Baseline, flags.Baseline)
	setIfNotEmpty(&c.BaselineRoot, flags.BaselineRoot)
	c.Compiler = strings.ToLower(c.Compiler)

	return nil
}

// ReadTestInfo parses a YAML test info file
func ReadTestInfo(path string) (*TestInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test info file: %w", err)
	}
	var info TestInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse test info file %s: %w", path, err)
	}
	return &info, nil
}

func (c *Config) applyTestInfo(info *TestInfo) {
	setIfNotEmpty(&c.Machine, info.Machine)
	setIfNotEmpty(&c.Compiler, info.Compiler)
	setIfNotEmpty(&c.ExpectedFail, info.ExpectedFail)
	setIfNotEmpty(&c.Baseline, info.Baseline)
	setIfNotEmpty(&c.BaselineRoot, info.BaselineRoot)
	setIfNotEmpty(&c.ReportPattern, info.ReportPattern)
	if info.ScratchDir != "" || info.TestDataDir != "" {
		c.TestRoot = filepath.Join(info.ScratchDir, info.TestDataDir)
	}
	if len(info.Namelists.Include) > 0 {
		c.NamelistInclude = info.Namelists.Include
	}
	if len(info.Namelists.Exclude) > 0 {
		c.NamelistExclude = info.Namelists.Exclude
	}
}

// applyEnv reads CTF_* and DB_* settings. A .env file in the project
// directory is loaded first; it never overrides variables already set.
func (c *Config) applyEnv() {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	setIfNotEmpty(&c.Machine, os.Getenv("CTF_MACHINE"))
	setIfNotEmpty(&c.Compiler, os.Getenv("CTF_COMPILER"))
	setIfNotEmpty(&c.TestRoot, os.Getenv("CTF_TEST_ROOT"))
	setIfNotEmpty(&c.ExpectedFail, os.Getenv("CTF_EXPECTED_FAIL"))
	setIfNotEmpty(&c.Baseline, os.Getenv("CTF_BASELINE"))
	setIfNotEmpty(&c.BaselineRoot, os.Getenv("CTF_BASELINE_ROOT"))

	setIfNotEmpty(&c.Database.Host, os.Getenv("DB_HOST"))
	setIfNotEmpty(&c.Database.Port, os.Getenv("DB_PORT"))
	setIfNotEmpty(&c.Database.User, os.Getenv("DB_USERNAME"))
	setIfNotEmpty(&c.Database.Password, os.Getenv("DB_PASSWORD"))
	setIfNotEmpty(&c.Database.Name, os.Getenv("CTF_DB_DATABASE"))
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Validate checks what a classify run needs before any report is read
func (c *Config) Validate() error {
	if c.Machine == "" {
		return fmt.Errorf("no machine given: use --machine, CTF_MACHINE or the test info file")
	}
	if c.Compiler == "" {
		return fmt.Errorf("no compiler given: use --compiler, CTF_COMPILER or the test info file")
	}
	if c.ExpectedFail == "" {
		return fmt.Errorf("must provide an expected fail file")
	}
	if st, err := os.Stat(c.ExpectedFail); err != nil || st.IsDir() {
		return fmt.Errorf("could not find expected fail file. Expected: %s", c.ExpectedFail)
	}
	if c.TestRoot != "" {
		if st, err := os.Stat(c.TestRoot); err != nil || !st.IsDir() {
			return fmt.Errorf("could not determine test root directory. Expected: %s", c.TestRoot)
		}
	}
	if c.Flags.Detailed {
		if c.TestRoot == "" {
			return fmt.Errorf("a detailed report needs the test root directory")
		}
		if c.Baseline == "" {
			return fmt.Errorf("a detailed report needs a baseline")
		}
	}
	return nil
}

// GetTestRoot returns the directory holding the test cases
func (c *Config) GetTestRoot() string {
	if c.TestRoot != "" {
		return c.TestRoot
	}
	return c.ProjectPath
}

// GetSummaryPath returns the path of the text report: test-summary.<name>.txt,
// or test-details.<name>.txt for a detailed report, in the test root
func (c *Config) GetSummaryPath() string {
	if c.Flags.Output != "" {
		return c.Flags.Output
	}
	prefix := "test-summary"
	if c.Flags.Detailed {
		prefix = "test-details"
	}
	return filepath.Join(c.GetTestRoot(), fmt.Sprintf("%s.%s.txt", prefix, c.ReportName))
}

// GetOutputPath returns the absolute path of the JSON summary of the last run
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
