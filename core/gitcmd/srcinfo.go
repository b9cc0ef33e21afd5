package gitcmd

import (
	"context"
	"path/filepath"
)

// MetadataGenerator produces the canonical derived-metadata document for a
// recipe tree. The document is written verbatim into the mirror.
type MetadataGenerator interface {
	Generate(ctx context.Context, dir string) ([]byte, error)
}

// ExecGenerator runs an external command (makepkg --printsrcinfo by
// convention) inside the recipe tree and captures its stdout as the
// metadata document.
type ExecGenerator struct {
	Command []string
	Env     []string
}

// NewExecGenerator builds a generator from a command line. An empty command
// falls back to makepkg --printsrcinfo.
func NewExecGenerator(command []string, env []string) *ExecGenerator {
	if len(command) == 0 {
		command = []string{"makepkg", "--printsrcinfo"}
	}
	return &ExecGenerator{Command: command, Env: env}
}

func (g *ExecGenerator) Generate(ctx context.Context, dir string) ([]byte, error) {
	r := Runner{Dir: filepath.Clean(dir), Env: g.Env}
	out, err := r.Output(ctx, g.Command[0], g.Command[1:]...)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
