package diagnostics

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const failingLog = `2014-01-01 13:00 starting run
Comparing hist file with baseline hist file
  clm2.h0.0001-01-01-00000.nc
hist file comparison is FAIL
Comparing initial hist file with second hist file
  clm2.h0.0001-01-06-00000.nc
PASS
`

const passingLog = `Comparing hist file with baseline hist file
  clm2.h0.0001-01-01-00000.nc
hist file comparison is PASS
`

func TestScanRegion(t *testing.T) {
	t.Run("captures a failing region", func(t *testing.T) {
		region, err := ScanRegion(strings.NewReader(failingLog), HistMarker)
		require.NoError(t, err)
		assert.True(t, region.Failed)
		assert.Equal(t, []string{
			"Comparing hist file with baseline hist file",
			"  clm2.h0.0001-01-01-00000.nc",
			"hist file comparison is FAIL",
		}, region.Lines)
	})

	t.Run("passing region yields nothing", func(t *testing.T) {
		region, err := ScanRegion(strings.NewReader(passingLog), HistMarker)
		require.NoError(t, err)
		assert.False(t, region.Failed)
		assert.Empty(t, region.Lines)
	})

	t.Run("restart marker scans its own region", func(t *testing.T) {
		region, err := ScanRegion(strings.NewReader(failingLog), RestartMarker)
		require.NoError(t, err)
		assert.False(t, region.Failed)
	})

	t.Run("marker never seen", func(t *testing.T) {
		region, err := ScanRegion(strings.NewReader("nothing to see\n"), HistMarker)
		require.NoError(t, err)
		assert.False(t, region.Failed)
	})

	t.Run("last region decides", func(t *testing.T) {
		log := failingLog + passingLog
		region, err := ScanRegion(strings.NewReader(log), HistMarker)
		require.NoError(t, err)
		assert.False(t, region.Failed)
	})
}

func TestCaseName(t *testing.T) {
	tests := []struct {
		test     string
		expected string
		wantErr  bool
	}{
		{
			test:     "ERS_D.f10_f10.ICLM45.yellowstone_intel.clm-default.C.20140101_123456.compare_hist.clm4_5_36",
			expected: "ERS_D.f10_f10.ICLM45.yellowstone_intel.clm-default.C.20140101_123456",
		},
		{
			test:     "SMS.f10_f10.ICLM45.hobart_nag.C",
			expected: "SMS.f10_f10.ICLM45.hobart_nag.C",
		},
		{
			test:    "SMS.f10_f10.ICLM45.hobart_nag.compare_hist",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.test, func(t *testing.T) {
			name, err := CaseName(tt.test)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestHistChecker_Check(t *testing.T) {
	const test = "ERS_D.f10_f10.ICLM45.yellowstone_intel.C.20140101.compare_hist.clm4_5_36"
	root := t.TempDir()
	caseDir := filepath.Join(root, "ERS_D.f10_f10.ICLM45.yellowstone_intel.C.20140101")
	require.NoError(t, os.MkdirAll(caseDir, 0755))

	newChecker := func(calls *[]string) *HistChecker {
		c := NewHistChecker(root)
		c.RMS = func(testDir string, w io.Writer) {
			*calls = append(*calls, testDir)
			io.WriteString(w, "RMS extracted\n")
		}
		return c
	}

	t.Run("failing comparison triggers rms extraction", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(caseDir, "TestStatus.out"), []byte(failingLog), 0644))
		var calls []string

		out := newChecker(&calls).Check(test)

		assert.Contains(t, out, "Checking for history comparison failure....")
		assert.Contains(t, out, "hist file comparison is FAIL")
		assert.Contains(t, out, "RMS extracted")
		assert.Equal(t, []string{caseDir}, calls, "only the history comparison failed")
		assert.Contains(t, out, "Checking for restart failure....\n        less "+filepath.Join(caseDir, "TestStatus.out")+"\n\nPASS\n")
	})

	t.Run("passing comparison prints PASS without rms extraction", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(caseDir, "TestStatus.out"), []byte(passingLog), 0644))
		var calls []string

		out := newChecker(&calls).Check(test)

		assert.Contains(t, out, "PASS\n")
		assert.NotContains(t, out, "RMS extracted")
		assert.Empty(t, calls)
	})

	t.Run("missing status log is an error line", func(t *testing.T) {
		var calls []string
		c := newChecker(&calls)
		out := c.Check("SMS.f10.ICLM45.m_c.C.20140102.compare_hist")

		assert.Contains(t, out, "ERROR : compare_hist : could not open status log")
		assert.Empty(t, calls)
	})

	t.Run("test name without case component", func(t *testing.T) {
		var calls []string
		out := newChecker(&calls).Check("SMS.f10.compare_hist")
		assert.True(t, strings.HasPrefix(out, "ERROR : compare_hist : SMS.f10.compare_hist"))
	})
}

func TestWriteRMS(t *testing.T) {
	input := strings.Join([]string{
		"  header",
		" file 1=case/clm2.h0.nc",
		"   line one after file",
		"   line two after file",
		"   line three after file",
		" RMS H2OSOI  1.2E-03",
		"other",
		" RMS TSOI  4.5E-01",
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, WriteRMS(strings.NewReader(input), &out))

	assert.Equal(t, strings.Join([]string{
		"file 1=case/clm2.h0.nc",
		"line one after file",
		"line two after file",
		"RMS H2OSOI  1.2E-03",
		"RMS TSOI  4.5E-01",
	}, "\n")+"\n", out.String())

	t.Run("file line inside lookahead is echoed twice", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, WriteRMS(strings.NewReader("file a\nfile b\nx\ny\n"), &out))
		assert.Equal(t, "file a\nfile b\nfile b\nx\ny\n", out.String())
	})
}

func TestExtractRMS(t *testing.T) {
	t.Run("missing cprnc output is an error line", func(t *testing.T) {
		var out bytes.Buffer
		ExtractRMS(t.TempDir(), &out)
		assert.Contains(t, out.String(), "ERROR : compare_hist : could not open comparison output")
	})

	t.Run("reads cprnc.out in the test dir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cprnc.out"), []byte(" RMS X 1.0\n"), 0644))
		var out bytes.Buffer
		ExtractRMS(dir, &out)
		assert.Contains(t, out.String(), "RMS X 1.0\n")
	})
}
