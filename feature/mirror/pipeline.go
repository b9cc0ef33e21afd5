package mirror

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"recipe-manager/core/database"
	"recipe-manager/core/gitcmd"
	"recipe-manager/core/logger"
	"recipe-manager/core/storage"
	"recipe-manager/feature/recipe"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PublishError is the single reported failure of one package's publish
// phase. External tool failures inside the pipeline are caught once at the
// SyncAndPublish boundary and wrapped here with the step that failed, so a
// batch orchestrator can report and move on.
type PublishError struct {
	Package string
	Step    string
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing %s failed at %s: %v", e.Package, e.Step, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Pipeline synchronizes a package's mirror clone with its recipe tree and
// conditionally commits and pushes the result. One pipeline instance serves
// a whole batch, but each SyncAndPublish call owns its package's working
// tree and mirror clone exclusively for the duration of the run.
type Pipeline struct {
	recipes recipe.Config
	mirrors Config
	gen     gitcmd.MetadataGenerator
	journal *database.Journal
	archive *storage.Archive
	log     *zap.Logger
	env     []string
}

// NewPipeline wires a publish pipeline. journal and archive are optional;
// a nil journal skips run recording and a nil archive skips artifact
// upload.
func NewPipeline(recipes recipe.Config, mirrors Config, gen gitcmd.MetadataGenerator,
	journal *database.Journal, archive *storage.Archive, log *zap.Logger, env []string) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		recipes: recipes,
		mirrors: mirrors,
		gen:     gen,
		journal: journal,
		archive: archive,
		log:     log,
		env:     env,
	}
}

// SyncAndPublish runs the full mirror sync for one package. Failures from
// the external tools are captured here, recorded in the journal and
// returned as a *PublishError; they never panic or poison another
// package's run.
func (p *Pipeline) SyncAndPublish(ctx context.Context, pkgbase string) error {
	runID := uuid.NewString()
	log := logger.WithRun(logger.WithPackage(p.log, pkgbase), runID)

	state, outcome, err := p.sync(ctx, pkgbase, log)

	rec := &database.Record{
		RunID:   runID,
		Package: pkgbase,
		Version: state.Version,
		Outcome: outcome,
	}
	if state.Release != nil {
		rec.Release = state.Release.String()
	}
	if err != nil {
		rec.Outcome = database.OutcomeFailed
		rec.Error = err.Error()
	}
	if p.journal != nil {
		if jerr := p.journal.Log(ctx, rec); jerr != nil {
			log.Warn("failed to record publish run", zap.Error(jerr))
		}
	}
	if err != nil {
		return err
	}
	log.Info("mirror sync finished", zap.String("outcome", outcome))
	return nil
}

func (p *Pipeline) sync(ctx context.Context, pkgbase string, log *zap.Logger) (recipe.VersionState, string, error) {
	recipeDir := filepath.Join(p.recipes.Root, pkgbase)
	mirrorDir := filepath.Join(p.mirrors.Root, pkgbase)
	recipeRun := gitcmd.Runner{Dir: recipeDir, Env: p.env}
	mirrorRun := gitcmd.Runner{Dir: mirrorDir, Env: p.env}

	state, err := recipe.ReadVersionState(filepath.Join(recipeDir, p.recipes.File))
	if err != nil {
		return state, "", &PublishError{Package: pkgbase, Step: "read recipe", Err: err}
	}

	// 1. Make the mirror clone reflect the true remote state.
	if _, err := os.Stat(mirrorDir); os.IsNotExist(err) {
		log.Info("cloning mirror repo", zap.String("dir", mirrorDir))
		if err := os.MkdirAll(p.mirrors.Root, 0o755); err != nil {
			return state, "", &PublishError{Package: pkgbase, Step: "prepare mirror root", Err: err}
		}
		parent := gitcmd.Runner{Dir: p.mirrors.Root, Env: p.env}
		url := fmt.Sprintf(p.mirrors.RemoteTemplate, pkgbase)
		if err := parent.Clone(ctx, url, pkgbase); err != nil {
			return state, "", &PublishError{Package: pkgbase, Step: "clone", Err: err}
		}
	} else {
		if err := mirrorRun.ResetHard(ctx); err != nil {
			return state, "", &PublishError{Package: pkgbase, Step: "reset", Err: err}
		}
		if err := mirrorRun.Pull(ctx); err != nil {
			return state, "", &PublishError{Package: pkgbase, Step: "pull", Err: err}
		}
	}

	// 2. Drop the currently tracked mirror files. The generated metadata
	// document stays: it is owned by step 5, and a spurious deletion here
	// would qualify every diff for publication. Individual removal failures
	// only warn; the copy below re-creates what matters.
	log.Info("removing old files from mirror", zap.String("dir", mirrorDir))
	oldFiles, err := mirrorRun.LsFiles(ctx)
	if err != nil {
		return state, "", &PublishError{Package: pkgbase, Step: "list mirror files", Err: err}
	}
	for _, f := range oldFiles {
		if f == p.mirrors.MetadataFile {
			continue
		}
		if err := os.Remove(filepath.Join(mirrorDir, f)); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove mirror file", zap.String("file", f), zap.Error(err))
		}
	}

	// 3. Copy the recipe's tracked files, minus the special set.
	log.Info("copying recipe files to mirror")
	files, err := recipeRun.LsFiles(ctx)
	if err != nil {
		return state, "", &PublishError{Package: pkgbase, Step: "list recipe files", Err: err}
	}
	special := p.recipes.SpecialSet()
	var copied []string
	for _, f := range files {
		if _, skip := special[f]; skip {
			continue
		}
		if err := copyFile(filepath.Join(recipeDir, f), filepath.Join(mirrorDir, f)); err != nil {
			return state, "", &PublishError{Package: pkgbase, Step: "copy", Err: err}
		}
		copied = append(copied, f)
	}

	// 4. Classify the resulting diff; pure bookkeeping is not published.
	diffText, err := mirrorRun.Diff(ctx)
	if err != nil {
		return state, "", &PublishError{Package: pkgbase, Step: "diff", Err: err}
	}
	if !AllowPublish(recipe.Class(pkgbase), ParseDiff(diffText)) {
		log.Info("diff is bookkeeping only, not publishing")
		return state, database.OutcomeSuppressed, nil
	}

	// 5. Regenerate metadata, stage, and publish if anything changed.
	doc, err := p.gen.Generate(ctx, mirrorDir)
	if err != nil {
		return state, "", &PublishError{Package: pkgbase, Step: "generate metadata", Err: err}
	}
	if err := os.WriteFile(filepath.Join(mirrorDir, p.mirrors.MetadataFile), doc, 0o644); err != nil {
		return state, "", &PublishError{Package: pkgbase, Step: "write metadata", Err: err}
	}
	if err := mirrorRun.AddAll(ctx); err != nil {
		return state, "", &PublishError{Package: pkgbase, Step: "stage", Err: err}
	}
	clean, err := mirrorRun.DiffIndexQuietHead(ctx)
	if err != nil {
		return state, "", &PublishError{Package: pkgbase, Step: "diff-index", Err: err}
	}
	if clean {
		log.Info("mirror already up to date")
		return state, database.OutcomeUnchanged, nil
	}

	msg := fmt.Sprintf("%s updated to %s", p.mirrors.CommitTag, recipe.FormatVersion(state))
	if err := mirrorRun.Commit(ctx, msg); err != nil {
		return state, "", &PublishError{Package: pkgbase, Step: "commit", Err: err}
	}
	if err := mirrorRun.Push(ctx); err != nil {
		return state, "", &PublishError{Package: pkgbase, Step: "push", Err: err}
	}
	log.Info("mirror published", zap.String("version", recipe.FormatVersion(state)))

	// 6. Best-effort artifact archive of the published file set.
	if p.archive != nil {
		archived := append(append([]string{}, copied...), p.mirrors.MetadataFile)
		if err := p.archive.Store(ctx, pkgbase, recipe.FormatVersion(state), mirrorDir, archived); err != nil {
			log.Warn("failed to archive published files", zap.Error(err))
		}
	}

	return state, database.OutcomePublished, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
