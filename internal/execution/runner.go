package execution

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	log "github.com/sirupsen/logrus"
)

// Runner executes commands with os/exec
type Runner struct{}

// NewRunner creates a new Runner
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes name in dir and waits for it. There is no timeout.
func (r *Runner) Run(ctx context.Context, dir string, out io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out

	log.WithField("dir", dir).Debugf("running %s", shellquote.Join(append([]string{name}, args...)...))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Rebuilder reruns the build script of a test case that failed to configure
// or compile, capturing the build output into the report
type Rebuilder struct {
	executor Executor
	testRoot string
}

// NewRebuilder creates a new Rebuilder for cases below testRoot
func NewRebuilder(executor Executor, testRoot string) *Rebuilder {
	return &Rebuilder{executor: executor, testRoot: testRoot}
}

// Rebuild runs ./<test>.test_build in the case directory and writes the
// output to w between two rows of stars. A missing case directory is
// skipped. A failing build is expected and only logged.
func (rb *Rebuilder) Rebuild(w io.Writer, test string) {
	caseDir := filepath.Join(rb.testRoot, test)
	if st, err := os.Stat(caseDir); err != nil || !st.IsDir() {
		log.WithField("case", caseDir).Debug("no case directory, skipping rebuild")
		return
	}

	command := "./" + test + ".test_build"
	stars := strings.Repeat("*", 80)
	fmt.Fprintf(w, "cd %s\n", shellquote.Join(caseDir))
	fmt.Fprintln(w, shellquote.Join(command))
	fmt.Fprintln(w, stars)

	if err := rb.executor.Run(context.Background(), caseDir, w, command); err != nil {
		log.WithError(err).Warnf("rebuild of %s failed", test)
	}

	fmt.Fprintln(w, stars)
	fmt.Fprintln(w)
}
