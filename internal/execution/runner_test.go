package execution

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	dirs     []string
	commands []string
	output   string
	err      error
}

func (e *recordingExecutor) Run(ctx context.Context, dir string, out io.Writer, name string, args ...string) error {
	e.dirs = append(e.dirs, dir)
	e.commands = append(e.commands, name)
	io.WriteString(out, e.output)
	return e.err
}

func TestRebuilder_Rebuild(t *testing.T) {
	root := t.TempDir()
	test := "SMS.f10_f10.ICLM45.hobart_nag.C.20140101"
	require.NoError(t, os.Mkdir(filepath.Join(root, test), 0755))
	stars := strings.Repeat("*", 80)

	t.Run("captures build output between stars", func(t *testing.T) {
		exec := &recordingExecutor{output: "make: *** [clm] Error 2\n"}
		var out bytes.Buffer

		NewRebuilder(exec, root).Rebuild(&out, test)

		assert.Equal(t, []string{filepath.Join(root, test)}, exec.dirs)
		assert.Equal(t, []string{"./" + test + ".test_build"}, exec.commands)
		assert.Equal(t,
			"cd "+filepath.Join(root, test)+"\n"+
				"./"+test+".test_build\n"+
				stars+"\n"+
				"make: *** [clm] Error 2\n"+
				stars+"\n\n",
			out.String())
	})

	t.Run("failing build still closes the block", func(t *testing.T) {
		exec := &recordingExecutor{err: errors.New("exit status 1")}
		var out bytes.Buffer

		NewRebuilder(exec, root).Rebuild(&out, test)

		assert.True(t, strings.HasSuffix(out.String(), stars+"\n\n"))
	})

	t.Run("missing case directory is skipped", func(t *testing.T) {
		exec := &recordingExecutor{}
		var out bytes.Buffer

		NewRebuilder(exec, root).Rebuild(&out, "ERS.missing.C.1")

		assert.Empty(t, exec.commands)
		assert.Empty(t, out.String())
	})
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "build.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\npwd\necho oops >&2\nexit 3\n"), 0755))

	var out bytes.Buffer
	err := NewRunner().Run(context.Background(), dir, &out, "./build.sh")

	assert.Error(t, err)
	assert.Contains(t, out.String(), "oops")
}
