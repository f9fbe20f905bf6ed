package execution

import (
	"context"
	"io"
)

// Executor runs an external command in dir with stdout and stderr sent to out
type Executor interface {
	Run(ctx context.Context, dir string, out io.Writer, name string, args ...string) error
}
