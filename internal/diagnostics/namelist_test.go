package diagnostics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctf/internal/config"
	"ctf/internal/discovery"
)

const nlTest = "ERS_D.f10_f10.ICLM45.yellowstone_intel.clm-default.C.20140101.nlcomp"

type namelistFixture struct {
	cfg         *config.Config
	runDir      string
	baselineDir string
}

func setupNamelist(t *testing.T) namelistFixture {
	t.Helper()
	scratch := t.TempDir()

	cfg := config.New()
	cfg.Machine = "yellowstone"
	cfg.TestRoot = filepath.Join(scratch, "tests-20140101")
	cfg.BaselineRoot = filepath.Join(scratch, "baselines")
	cfg.Baseline = "clm4_5_36"

	runDir := filepath.Join(scratch, "ERS_D.f10_f10.ICLM45.yellowstone_intel.clm-default.C.20140101", "run")
	baselineDir := filepath.Join(cfg.BaselineRoot, cfg.Baseline, "ERS_D.f10_f10.ICLM45.yellowstone_intel.clm-default", "CaseDocs")
	for _, dir := range []string{cfg.TestRoot, runDir, baselineDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "drv_in"), []byte("case_name = 'x'\n"), 0644))

	return namelistFixture{cfg: cfg, runDir: runDir, baselineDir: baselineDir}
}

func newChecker(cfg *config.Config) *NamelistChecker {
	return NewNamelistChecker(cfg,
		discovery.NewScanner(discovery.NamelistPattern, nil),
		discovery.NewFilter(cfg.NamelistInclude, cfg.NamelistExclude))
}

func TestNamelistChecker_Check(t *testing.T) {
	t.Run("diffs baseline against run namelist", func(t *testing.T) {
		fx := setupNamelist(t)
		require.NoError(t, os.WriteFile(filepath.Join(fx.baselineDir, "lnd_in"), []byte("&clm_inparm\n hist_nhtfrq = 0\n/\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(fx.runDir, "lnd_in"), []byte("&clm_inparm\n hist_nhtfrq = -24\n/\n"), 0644))

		out := newChecker(fx.cfg).Check(nlTest)

		assert.Contains(t, out, "  diffing namelist files :\n    diff ")
		assert.Contains(t, out, "<  hist_nhtfrq = 0\n")
		assert.Contains(t, out, ">  hist_nhtfrq = -24\n")
		assert.NotContains(t, out, "ERROR")
		assert.NotContains(t, out, "case_name", "drv_in is never diffed")
	})

	t.Run("identical namelists print nothing", func(t *testing.T) {
		fx := setupNamelist(t)
		content := []byte("&clm_inparm\n/\n")
		require.NoError(t, os.WriteFile(filepath.Join(fx.baselineDir, "lnd_in"), content, 0644))
		require.NoError(t, os.WriteFile(filepath.Join(fx.runDir, "lnd_in"), content, 0644))

		assert.Empty(t, newChecker(fx.cfg).Check(nlTest))
	})

	t.Run("missing baseline namelist is an error line", func(t *testing.T) {
		fx := setupNamelist(t)
		require.NoError(t, os.WriteFile(filepath.Join(fx.runDir, "lnd_in"), []byte("&clm_inparm\n/\n"), 0644))

		out := newChecker(fx.cfg).Check(nlTest)

		assert.Contains(t, out, "ERROR : nlcomp : "+nlTest+" : could not find baseline namelist file : "+filepath.Join(fx.baselineDir, "lnd_in"))
		assert.NotContains(t, out, "diffing")
	})

	t.Run("missing run directory is an error line", func(t *testing.T) {
		fx := setupNamelist(t)
		out := newChecker(fx.cfg).Check("SMS.f10.ICLM45.yellowstone_intel.C.1.nlcomp")
		assert.Contains(t, out, "ERROR : nlcomp : SMS.f10.ICLM45.yellowstone_intel.C.1.nlcomp")
	})

	t.Run("compiler not in test name is an error line", func(t *testing.T) {
		fx := setupNamelist(t)
		fx.cfg.Machine = "cheyenne"
		require.NoError(t, os.WriteFile(filepath.Join(fx.runDir, "lnd_in"), []byte("&clm_inparm\n/\n"), 0644))

		out := newChecker(fx.cfg).Check(nlTest)

		assert.Contains(t, out, "could not match compiler re.")
	})
}
