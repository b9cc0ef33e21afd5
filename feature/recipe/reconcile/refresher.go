package reconcile

import (
	"context"
	"os"
	"path/filepath"

	"recipe-manager/core/gitcmd"
)

// ExecRefresher refreshes a recipe's sources by running the build tool in
// download-only mode (makepkg -od --noprepare -A by convention). The stale
// source tree is removed first so version-controlled checkouts start clean.
type ExecRefresher struct {
	Command []string
	Env     []string
}

// NewExecRefresher builds a refresher from a command line. An empty command
// falls back to the makepkg download-only invocation.
func NewExecRefresher(command []string, env []string) *ExecRefresher {
	if len(command) == 0 {
		command = []string{"makepkg", "-od", "--noprepare", "-A"}
	}
	return &ExecRefresher{Command: command, Env: env}
}

func (e *ExecRefresher) Refresh(ctx context.Context, dir string) error {
	if err := os.RemoveAll(filepath.Join(dir, "src")); err != nil {
		return err
	}
	r := gitcmd.Runner{Dir: dir, Env: e.Env}
	return r.Run(ctx, e.Command[0], e.Command[1:]...)
}
