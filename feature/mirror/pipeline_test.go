package mirror

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"recipe-manager/core/database"
	"recipe-manager/feature/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticGenerator stands in for the external metadata tool.
type staticGenerator struct {
	doc string
}

func (g *staticGenerator) Generate(ctx context.Context, dir string) ([]byte, error) {
	return []byte(g.doc), nil
}

type fixture struct {
	recipes recipe.Config
	mirrors Config
	env     []string
	remote  string
	pkg     string
}

func gitEnv() []string {
	return append(os.Environ(),
		"GIT_AUTHOR_NAME=test",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test",
		"GIT_COMMITTER_EMAIL=test@example.com",
	)
}

func runGit(t *testing.T, env []string, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return string(out)
}

// setupFixture builds a recipe checkout and a bare remote already holding
// one published commit of the package.
func setupFixture(t *testing.T, pkg, remoteRecipe, localRecipe string) *fixture {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	root := t.TempDir()
	env := gitEnv()
	f := &fixture{
		recipes: recipe.Config{Root: filepath.Join(root, "recipes"), File: "PKGBUILD", SpecialFiles: "lilac.yaml"},
		mirrors: Config{
			Root:           filepath.Join(root, "mirror"),
			RemoteTemplate: filepath.Join(root, "remote", "%s.git"),
			CommitTag:      "[bot]",
			MetadataFile:   ".SRCINFO",
		},
		env: env,
		pkg: pkg,
	}
	f.remote = filepath.Join(root, "remote", pkg+".git")

	// Seed the remote with the previously published state.
	seed := filepath.Join(root, "seed")
	require.NoError(t, os.MkdirAll(seed, 0o755))
	runGit(t, env, seed, "init", "-b", "master")
	require.NoError(t, os.WriteFile(filepath.Join(seed, "PKGBUILD"), []byte(remoteRecipe), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(seed, ".SRCINFO"), []byte("old metadata\n"), 0o644))
	runGit(t, env, seed, "add", ".")
	runGit(t, env, seed, "commit", "-m", "initial import")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "remote"), 0o755))
	runGit(t, env, root, "clone", "--bare", seed, f.remote)

	// Local recipe checkout with the state to publish.
	recipeDir := filepath.Join(f.recipes.Root, pkg)
	require.NoError(t, os.MkdirAll(recipeDir, 0o755))
	runGit(t, env, recipeDir, "init", "-b", "master")
	require.NoError(t, os.WriteFile(filepath.Join(recipeDir, "PKGBUILD"), []byte(localRecipe), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(recipeDir, "lilac.yaml"), []byte("update_on: []\n"), 0o644))
	runGit(t, env, recipeDir, "add", ".")
	runGit(t, env, recipeDir, "commit", "-m", "local state")

	return f
}

func (f *fixture) pipeline(t *testing.T) (*Pipeline, *database.Journal) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	journal, err := database.NewJournal(db)
	require.NoError(t, err)

	gen := &staticGenerator{doc: "new metadata\n"}
	return NewPipeline(f.recipes, f.mirrors, gen, journal, nil, nil, f.env), journal
}

func remoteCommitCount(t *testing.T, f *fixture) string {
	t.Helper()
	return strings.TrimSpace(runGit(t, f.env, f.remote, "rev-list", "--count", "HEAD"))
}

func lastOutcome(t *testing.T, journal *database.Journal, pkg string) database.Record {
	t.Helper()
	recs, err := journal.History(context.Background(), pkg, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	return recs[0]
}

func TestSyncAndPublishVersionChange(t *testing.T) {
	f := setupFixture(t, "tinygo",
		"pkgver=1.0\npkgrel=1\ndepends=('llvm')\n",
		"pkgver=2.0\npkgrel=1\ndepends=('llvm')\n")
	p, journal := f.pipeline(t)

	err := p.SyncAndPublish(context.Background(), f.pkg)
	require.NoError(t, err)

	assert.Equal(t, "2", remoteCommitCount(t, f))
	assert.Equal(t, database.OutcomePublished, lastOutcome(t, journal, f.pkg).Outcome)

	// Published tree carries regenerated metadata but never the special files.
	tree := runGit(t, f.env, f.remote, "ls-tree", "--name-only", "HEAD")
	assert.Contains(t, tree, ".SRCINFO")
	assert.Contains(t, tree, "PKGBUILD")
	assert.NotContains(t, tree, "lilac.yaml")
	blob := runGit(t, f.env, f.remote, "show", "HEAD:.SRCINFO")
	assert.Equal(t, "new metadata\n", blob)

	msg := runGit(t, f.env, f.remote, "log", "-1", "--format=%s")
	assert.Equal(t, "[bot] updated to 2.0-1\n", msg)
}

func TestSyncAndPublishReleaseOnlySuppressed(t *testing.T) {
	f := setupFixture(t, "tinygo",
		"pkgver=1.0\npkgrel=1\ndepends=('llvm')\n",
		"pkgver=1.0\npkgrel=2\ndepends=('llvm')\n")
	p, journal := f.pipeline(t)

	err := p.SyncAndPublish(context.Background(), f.pkg)
	require.NoError(t, err)

	assert.Equal(t, "1", remoteCommitCount(t, f))
	assert.Equal(t, database.OutcomeSuppressed, lastOutcome(t, journal, f.pkg).Outcome)
}

func TestSyncAndPublishVcsVersionChurnSuppressed(t *testing.T) {
	f := setupFixture(t, "tinygo-git",
		"pkgver=1.0\npkgrel=1\ndepends=('llvm')\n",
		"pkgver=1.1\npkgrel=2\ndepends=('llvm')\n")
	p, journal := f.pipeline(t)

	err := p.SyncAndPublish(context.Background(), f.pkg)
	require.NoError(t, err)

	assert.Equal(t, "1", remoteCommitCount(t, f))
	assert.Equal(t, database.OutcomeSuppressed, lastOutcome(t, journal, f.pkg).Outcome)
}

func TestSyncAndPublishVcsDependencyChangePublished(t *testing.T) {
	f := setupFixture(t, "tinygo-git",
		"pkgver=1.0\npkgrel=1\ndepends=('llvm')\n",
		"pkgver=1.0\npkgrel=1\ndepends=('llvm' 'go')\n")
	p, journal := f.pipeline(t)

	err := p.SyncAndPublish(context.Background(), f.pkg)
	require.NoError(t, err)

	assert.Equal(t, "2", remoteCommitCount(t, f))
	assert.Equal(t, database.OutcomePublished, lastOutcome(t, journal, f.pkg).Outcome)
}

func TestSyncAndPublishSecondRunIsNoop(t *testing.T) {
	f := setupFixture(t, "tinygo",
		"pkgver=1.0\npkgrel=1\ndepends=('llvm')\n",
		"pkgver=2.0\npkgrel=1\ndepends=('llvm')\n")
	p, journal := f.pipeline(t)

	require.NoError(t, p.SyncAndPublish(context.Background(), f.pkg))
	require.NoError(t, p.SyncAndPublish(context.Background(), f.pkg))

	// The second run copies an identical tree, so the empty diff never
	// reaches the publish steps and no further commit is made.
	assert.Equal(t, "2", remoteCommitCount(t, f))
	assert.Equal(t, database.OutcomeSuppressed, lastOutcome(t, journal, f.pkg).Outcome)
}

func TestSyncAndPublishCloneFailure(t *testing.T) {
	f := setupFixture(t, "tinygo",
		"pkgver=1.0\npkgrel=1\n",
		"pkgver=2.0\npkgrel=1\n")
	f.mirrors.RemoteTemplate = filepath.Join(t.TempDir(), "missing", "%s.git")
	p, journal := f.pipeline(t)

	err := p.SyncAndPublish(context.Background(), f.pkg)
	require.Error(t, err)

	var perr *PublishError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "tinygo", perr.Package)
	assert.Equal(t, "clone", perr.Step)

	rec := lastOutcome(t, journal, f.pkg)
	assert.Equal(t, database.OutcomeFailed, rec.Outcome)
	assert.NotEmpty(t, rec.Error)
}
