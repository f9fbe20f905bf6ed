package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Marker phrases written to TestStatus.out by the comparison scripts
const (
	HistMarker    = "Comparing hist file with baseline hist file"
	RestartMarker = "Comparing initial hist file with second hist file"
	FailMarker    = "hist file comparison is FAIL"
	PassMarker    = "PASS"

	testStatusFile = "TestStatus.out"
)

// Region is the outcome of scanning a status log for one comparison
type Region struct {
	Lines  []string // Captured lines of the last failing region
	Failed bool
}

// ScanRegion runs the idle/recording state machine over r. A line containing
// marker starts recording. While recording, a line containing FailMarker ends
// the region as failed and keeps the captured lines; a line containing
// PassMarker ends it as passed and drops them. The last region to end
// decides the result.
func ScanRegion(r io.Reader, marker string) (Region, error) {
	var (
		result    Region
		buffer    []string
		recording bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !recording && strings.Contains(line, marker) {
			recording = true
			buffer = nil
		}
		if !recording {
			continue
		}

		buffer = append(buffer, line)
		if strings.Contains(line, FailMarker) {
			recording = false
			result = Region{Lines: buffer, Failed: true}
		} else if strings.Contains(line, PassMarker) {
			recording = false
			result = Region{}
		}
	}

	return result, scanner.Err()
}

// CaseName truncates a dotted test name two components after the "C"
// component, e.g. ERS.f10_f10.ICLM45.yellowstone_intel.C.20140101.compare_hist
// becomes ERS.f10_f10.ICLM45.yellowstone_intel.C.20140101.
func CaseName(test string) (string, error) {
	parts := strings.Split(test, ".")
	for i, p := range parts {
		if p == "C" {
			end := i + 2
			if end > len(parts) {
				end = len(parts)
			}
			return strings.Join(parts[:end], "."), nil
		}
	}
	return "", fmt.Errorf("no case component 'C' in test name")
}

// HistChecker explains compare_hist failures from a test's status log
type HistChecker struct {
	testRoot string
	// RMS writes the root-mean-square differences for a failed comparison
	RMS func(testDir string, w io.Writer)
}

// NewHistChecker creates a new HistChecker for cases below testRoot
func NewHistChecker(testRoot string) *HistChecker {
	return &HistChecker{testRoot: testRoot, RMS: ExtractRMS}
}

// Check returns the history and restart comparison details for test
func (c *HistChecker) Check(test string) string {
	var b strings.Builder

	caseName, err := CaseName(test)
	if err != nil {
		fmt.Fprintf(&b, "ERROR : compare_hist : %s : %v\n", test, err)
		return b.String()
	}
	testDir := filepath.Join(c.testRoot, caseName)

	c.check(&b, testDir, "history comparison", HistMarker)
	c.check(&b, testDir, "restart", RestartMarker)

	return b.String()
}

func (c *HistChecker) check(w io.Writer, testDir, what, marker string) {
	fmt.Fprintf(w, "\nChecking for %s failure....\n", what)
	statusPath := filepath.Join(testDir, testStatusFile)
	fmt.Fprintf(w, "        less %s\n\n", statusPath)

	f, err := os.Open(statusPath)
	if err != nil {
		fmt.Fprintf(w, "ERROR : compare_hist : could not open status log : %s\n", statusPath)
		return
	}
	defer f.Close()

	region, err := ScanRegion(f, marker)
	if err != nil {
		fmt.Fprintf(w, "ERROR : compare_hist : error reading status log %s : %v\n", statusPath, err)
		return
	}

	if !region.Failed {
		fmt.Fprintln(w, "PASS")
		return
	}
	for _, line := range region.Lines {
		fmt.Fprintln(w, line)
	}
	if c.RMS != nil {
		c.RMS(testDir, w)
	}
}
