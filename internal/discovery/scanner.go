package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// NamelistPattern matches namelist file names such as lnd_in, drv_in or
// atm_in_0001
var NamelistPattern = regexp.MustCompile(`_in[_\d]{0,4}$`)

// Scanner finds files below a case run directory whose base name matches a pattern
type Scanner struct {
	pattern  *regexp.Regexp
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(pattern *regexp.Regexp, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{pattern: pattern, skipDirs: skipMap}
}

// Scan walks root and returns the base names of matching files in walk order
func (s *Scanner) Scan(root string) ([]string, error) {
	var names []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("run directory does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("run directory is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.pattern.MatchString(d.Name()) {
			names = append(names, d.Name())
		}
		return nil
	})

	return names, err
}
