package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const cprncFile = "cprnc.out"

// ExtractRMS writes the RMS summary of the cprnc output in testDir
func ExtractRMS(testDir string, w io.Writer) {
	path := filepath.Join(testDir, cprncFile)
	fmt.Fprintf(w, "        less %s\n\n", path)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(w, "ERROR : compare_hist : could not open comparison output : %s\n", path)
		return
	}
	defer f.Close()

	if err := WriteRMS(f, w); err != nil {
		fmt.Fprintf(w, "ERROR : compare_hist : error reading comparison output %s : %v\n", path, err)
	}
}

// WriteRMS echoes the interesting lines of cprnc output. Lines are trimmed.
// A line starting with "file" is echoed together with the two lines after
// it; a line starting with "RMS" is always echoed. A line can be echoed
// twice when both rules apply.
func WriteRMS(r io.Reader, w io.Writer) error {
	printNext := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if printNext > 0 {
			fmt.Fprintln(w, line)
			printNext--
		}
		if strings.HasPrefix(line, "file") {
			fmt.Fprintln(w, line)
			printNext = 2
		}
		if strings.HasPrefix(line, "RMS") {
			fmt.Fprintln(w, line)
		}
	}

	return scanner.Err()
}
