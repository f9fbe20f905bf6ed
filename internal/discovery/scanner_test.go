package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamelistPattern(t *testing.T) {
	for _, name := range []string{"lnd_in", "drv_in", "atm_in_0001", "ice_in12", "ocn_in_"} {
		assert.True(t, NamelistPattern.MatchString(name), name)
	}
	for _, name := range []string{"lnd_in.bak", "lnd_in_00001", "input", "lnd_inx", "user_nl_clm"} {
		assert.False(t, NamelistPattern.MatchString(name), name)
	}
}

func TestScanner_Scan(t *testing.T) {
	runDir := t.TempDir()

	files := []string{
		"lnd_in",
		"drv_in",
		"atm_in_0001",
		"cesm.log",
		"timing/lnd_in_0002",
		".hidden/ocn_in",
		"restarts/ice_in",
	}
	for _, file := range files {
		full := filepath.Join(runDir, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("&clm_inparm\n/\n"), 0644))
	}

	scanner := NewScanner(NamelistPattern, []string{"restarts"})

	t.Run("finds namelist files by base name", func(t *testing.T) {
		names, err := scanner.Scan(runDir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"lnd_in", "drv_in", "atm_in_0001", "lnd_in_0002"}, names)
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/run")
		assert.Error(t, err)
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(runDir, "cesm.log"))
		assert.Error(t, err)
	})
}
