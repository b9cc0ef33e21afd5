package recipe

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelease(t *testing.T) {
	t.Run("Integer", func(t *testing.T) {
		rel, err := ParseRelease("3")
		require.NoError(t, err)
		assert.Equal(t, ReleaseNumber{Major: 3}, rel)
		assert.Equal(t, "3", rel.String())
	})

	t.Run("Sub Release", func(t *testing.T) {
		rel, err := ParseRelease("3.2")
		require.NoError(t, err)
		assert.Equal(t, ReleaseNumber{Major: 3, Sub: "2"}, rel)
		assert.Equal(t, "3.2", rel.String())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseRelease("abc")
		assert.ErrorIs(t, err, ErrMalformedRecipe)
	})
}

func TestNextRelease(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3", "4"},
		{"3.2", "4"}, // sub-release fraction is discarded
		{"0", "1"},
	}
	for _, tc := range cases {
		rel, err := ParseRelease(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, rel.Next().String(), "next of %s", tc.in)
	}
}

func TestReadVersionState(t *testing.T) {
	t.Run("Full Recipe", func(t *testing.T) {
		path := writeRecipe(t, "pkgname=foo\nepoch=1\npkgver=2.31\npkgrel='3'\nsource=()\n")

		state, err := ReadVersionState(path)
		require.NoError(t, err)
		assert.Equal(t, "2.31", state.Version)
		assert.Equal(t, "1", state.Epoch)
		require.NotNil(t, state.Release)
		assert.Equal(t, "3", state.Release.String())
	})

	t.Run("Version Not Quote Stripped", func(t *testing.T) {
		path := writeRecipe(t, "pkgver=\"1.0\"\n")

		state, err := ReadVersionState(path)
		require.NoError(t, err)
		assert.Equal(t, `"1.0"`, state.Version)
	})

	t.Run("First Assignment Wins", func(t *testing.T) {
		path := writeRecipe(t, "pkgrel=1\npkgrel=9\npkgver=a\npkgver=b\n")

		state, err := ReadVersionState(path)
		require.NoError(t, err)
		assert.Equal(t, "a", state.Version)
		assert.Equal(t, "1", state.Release.String())
	})

	t.Run("Missing File Is Not An Error", func(t *testing.T) {
		state, err := ReadVersionState(filepath.Join(t.TempDir(), "PKGBUILD"))
		assert.NoError(t, err)
		assert.Equal(t, "", state.Version)
		assert.Nil(t, state.Release)
	})
}

func TestSetRelease(t *testing.T) {
	t.Run("Explicit Value", func(t *testing.T) {
		path := writeRecipe(t, "pkgver=1.0\npkgrel='2'\n")

		rel := ReleaseNumber{Major: 5}
		err := SetRelease(path, &rel)
		assert.NoError(t, err)
		assert.Equal(t, "pkgver=1.0\npkgrel=5\n", readFile(t, path))
	})

	t.Run("Nil Bumps Current", func(t *testing.T) {
		path := writeRecipe(t, "pkgrel=3.2\n")

		err := SetRelease(path, nil)
		assert.NoError(t, err)
		assert.Equal(t, "pkgrel=4\n", readFile(t, path))
	})

	t.Run("Missing Release Is Fatal", func(t *testing.T) {
		path := writeRecipe(t, "pkgver=1.0\n")

		err := SetRelease(path, nil)
		assert.ErrorIs(t, err, ErrMalformedRecipe)
	})
}

func TestUpdateVersion(t *testing.T) {
	t.Run("New Version Resets Release", func(t *testing.T) {
		path := writeRecipe(t, "pkgver=1.0\npkgrel=7\n")

		err := UpdateVersion(path, "1.1")
		assert.NoError(t, err)
		assert.Equal(t, "pkgver=1.1\npkgrel=1\n", readFile(t, path))
	})

	t.Run("Same Version Bumps Release", func(t *testing.T) {
		path := writeRecipe(t, "pkgver=1.0\npkgrel=7\n")

		err := UpdateVersion(path, "1.0")
		assert.NoError(t, err)
		assert.Equal(t, "pkgver=1.0\npkgrel=8\n", readFile(t, path))
	})
}

func TestFormatVersion(t *testing.T) {
	rel := ReleaseNumber{Major: 2}
	assert.Equal(t, "1.0-2", FormatVersion(VersionState{Version: "1.0", Release: &rel}))
	assert.Equal(t, "3:1.0-2", FormatVersion(VersionState{Epoch: "3", Version: "1.0", Release: &rel}))
	assert.Equal(t, "1.0", FormatVersion(VersionState{Version: "1.0"}))
	assert.Equal(t, "1.0-2", FormatVersion(VersionState{Epoch: "0", Version: "1.0", Release: &rel}))
}

func TestClass(t *testing.T) {
	assert.Equal(t, ClassVersionControlled, Class("linux-mainline-git"))
	assert.Equal(t, ClassVersionControlled, Class("python-foo-hg"))
	assert.Equal(t, ClassVersionControlled, Class("bar-svn"))
	assert.Equal(t, ClassVersionControlled, Class("baz-bzr"))
	assert.Equal(t, ClassFixed, Class("python-requests"))
	assert.Equal(t, ClassFixed, Class("gitea")) // suffix match, not substring
}
