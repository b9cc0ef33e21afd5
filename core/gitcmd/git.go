package gitcmd

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Clone clones url into dest. The runner's directory is the parent under
// which the clone is created.
func (r Runner) Clone(ctx context.Context, url, dest string) error {
	return r.Run(ctx, "git", "clone", url, dest)
}

// ResetHard discards all local modifications in the working tree.
func (r Runner) ResetHard(ctx context.Context) error {
	return r.Run(ctx, "git", "reset", "--hard")
}

// Pull fast-forwards the working tree to the remote head.
func (r Runner) Pull(ctx context.Context) error {
	return r.Run(ctx, "git", "pull")
}

// Push publishes local commits to the remote.
func (r Runner) Push(ctx context.Context) error {
	return r.Run(ctx, "git", "push")
}

// LsFiles returns the tracked paths in the working tree.
func (r Runner) LsFiles(ctx context.Context) ([]string, error) {
	out, err := r.Output(ctx, "git", "ls-files")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Diff returns the unified diff of the working tree against the last commit.
func (r Runner) Diff(ctx context.Context) (string, error) {
	return r.Output(ctx, "git", "diff")
}

// DiffIndexQuietHead reports whether the index matches HEAD. It returns
// true when there are no staged changes to commit.
func (r Runner) DiffIndexQuietHead(ctx context.Context) (bool, error) {
	err := r.Run(ctx, "git", "diff-index", "--quiet", "HEAD")
	if err == nil {
		return true, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() == 1 {
		return false, nil
	}
	return false, err
}

// AddAll stages every change under the working tree.
func (r Runner) AddAll(ctx context.Context) error {
	return r.Run(ctx, "git", "add", ".")
}

// AddFiles stages the given paths. On failure there may be a partial add
// (some files ignored), so the paths are unstaged again before the error
// propagates.
func (r Runner) AddFiles(ctx context.Context, files []string, force bool) error {
	if len(files) == 0 {
		return nil
	}
	args := []string{"add"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, "--")
	args = append(args, files...)
	if err := r.Run(ctx, "git", args...); err != nil {
		resetArgs := append([]string{"reset", "--"}, files...)
		_ = r.Run(ctx, "git", resetArgs...)
		return err
	}
	return nil
}

// RmCached removes the given paths from the index without touching the
// working tree.
func (r Runner) RmCached(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"rm", "--cached", "--"}, files...)
	return r.Run(ctx, "git", args...)
}

// Commit records the staged changes with the given message.
func (r Runner) Commit(ctx context.Context, msg string) error {
	return r.Run(ctx, "git", "commit", "-m", msg)
}

// StatusShort returns the porcelain short status of the working tree.
func (r Runner) StatusShort(ctx context.Context) ([]string, error) {
	out, err := r.Output(ctx, "git", "status", "-s", ".")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CommitIfChanged commits with msg only when the working tree has tracked
// changes. Untracked entries (status "??") do not count as changes.
func (r Runner) CommitIfChanged(ctx context.Context, msg string) (bool, error) {
	status, err := r.StatusShort(ctx)
	if err != nil {
		return false, err
	}
	changed := false
	for _, line := range status {
		if fields := strings.Fields(line); len(fields) > 0 && fields[0] != "??" {
			changed = true
			break
		}
	}
	if !changed {
		return false, nil
	}
	if err := r.Commit(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

func splitLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
