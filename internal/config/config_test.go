package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CTF_MACHINE", "CTF_COMPILER", "CTF_TEST_ROOT", "CTF_EXPECTED_FAIL",
		"CTF_BASELINE", "CTF_BASELINE_ROOT", "CTF_DB_DATABASE",
	} {
		t.Setenv(key, "")
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultProjectPath, cfg.ProjectPath)
	assert.Equal(t, DefaultNamelistInclude, cfg.NamelistInclude)
	assert.Equal(t, DefaultNamelistExclude, cfg.NamelistExclude)
	assert.Equal(t, DefaultDBName, cfg.Database.Name)
	assert.Equal(t, DefaultHistoryLimit, cfg.Flags.Limit)

	cfg.NamelistInclude[0] = "changed"
	assert.Equal(t, "lnd_in", DefaultNamelistInclude[0], "defaults must be copied")
}

func TestConfig_Apply(t *testing.T) {
	dir := t.TempDir()
	infoPath := filepath.Join(dir, "clm-intel.yaml")
	require.NoError(t, os.WriteFile(infoPath, []byte(`
machine: yellowstone
compiler: INTEL
scratch_dir: /glade/scratch/user
test_data_dir: tests-20131009-19
expected_fail: /src/expectedClmTestFails.xml
baseline: clm4_5_36
baseline_root: /glade/p/cesmdata/baselines
namelists:
  include: [lnd_in, atm_in]
`), 0644))

	t.Run("reads the test info file", func(t *testing.T) {
		clearEnv(t)
		cfg := New()
		cfg.ProjectPath = dir
		require.NoError(t, cfg.Apply(Flags{TestInfo: infoPath}))

		assert.Equal(t, "yellowstone", cfg.Machine)
		assert.Equal(t, "intel", cfg.Compiler)
		assert.Equal(t, "/glade/scratch/user/tests-20131009-19", cfg.TestRoot)
		assert.Equal(t, "clm4_5_36", cfg.Baseline)
		assert.Equal(t, []string{"lnd_in", "atm_in"}, cfg.NamelistInclude)
		assert.Equal(t, "clm-intel", cfg.ReportName)
	})

	t.Run("environment overrides the test info file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CTF_BASELINE", "clm4_5_40")
		cfg := New()
		cfg.ProjectPath = dir
		require.NoError(t, cfg.Apply(Flags{TestInfo: infoPath}))

		assert.Equal(t, "clm4_5_40", cfg.Baseline)
	})

	t.Run("flags override everything", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CTF_MACHINE", "cheyenne")
		cfg := New()
		cfg.ProjectPath = dir
		require.NoError(t, cfg.Apply(Flags{TestInfo: infoPath, Machine: "hobart", Compiler: "NAG"}))

		assert.Equal(t, "hobart", cfg.Machine)
		assert.Equal(t, "nag", cfg.Compiler)
	})

	t.Run("returns error for missing test info file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(Flags{TestInfo: filepath.Join(dir, "missing.yaml")})
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()
	xfail := filepath.Join(dir, "expected.xml")
	require.NoError(t, os.WriteFile(xfail, []byte("<expectedFails/>"), 0644))

	valid := func() *Config {
		cfg := New()
		cfg.Machine = "yellowstone"
		cfg.Compiler = "intel"
		cfg.ExpectedFail = xfail
		cfg.TestRoot = dir
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "missing machine", modify: func(c *Config) { c.Machine = "" }, wantErr: true},
		{name: "missing compiler", modify: func(c *Config) { c.Compiler = "" }, wantErr: true},
		{name: "missing expected fail", modify: func(c *Config) { c.ExpectedFail = "" }, wantErr: true},
		{name: "expected fail does not exist", modify: func(c *Config) { c.ExpectedFail = filepath.Join(dir, "nope.xml") }, wantErr: true},
		{name: "test root does not exist", modify: func(c *Config) { c.TestRoot = filepath.Join(dir, "nope") }, wantErr: true},
		{name: "detailed without baseline", modify: func(c *Config) { c.Flags.Detailed = true }, wantErr: true},
		{name: "detailed with baseline", modify: func(c *Config) { c.Flags.Detailed = true; c.Baseline = "clm4_5_36" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_GetSummaryPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "summary in test root",
			config:   &Config{ProjectPath: ".", TestRoot: "/scratch/tests", ReportName: "clm-intel"},
			expected: "/scratch/tests/test-summary.clm-intel.txt",
		},
		{
			name:     "details when detailed",
			config:   &Config{ProjectPath: ".", TestRoot: "/scratch/tests", ReportName: "clm-intel", Flags: Flags{Detailed: true}},
			expected: "/scratch/tests/test-details.clm-intel.txt",
		},
		{
			name:     "project path without test root",
			config:   &Config{ProjectPath: "/project", ReportName: "ctf"},
			expected: "/project/test-summary.ctf.txt",
		},
		{
			name:     "explicit output",
			config:   &Config{ProjectPath: ".", ReportName: "ctf", Flags: Flags{Output: "/tmp/report.txt"}},
			expected: "/tmp/report.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.GetSummaryPath())
		})
	}
}
