package mirror

import (
	"testing"

	"recipe-manager/feature/recipe"

	"github.com/stretchr/testify/assert"
)

const releaseOnlyDiff = `diff --git a/PKGBUILD b/PKGBUILD
index 1111111..2222222 100644
--- a/PKGBUILD
+++ b/PKGBUILD
@@ -2,2 +2,2 @@
 pkgver=1.0
-pkgrel=1
+pkgrel=2
`

const versionAndReleaseDiff = `--- a/PKGBUILD
+++ b/PKGBUILD
@@ -1,2 +1,2 @@
-pkgver=r100.abcdef
-pkgrel=1
+pkgver=r101.fedcba
+pkgrel=1
`

const dependsDiff = `--- a/PKGBUILD
+++ b/PKGBUILD
@@ -3,1 +3,2 @@
 pkgrel=1
+makedepends=('foo')
`

func TestParseDiff(t *testing.T) {
	lines := ParseDiff(releaseOnlyDiff)

	var added, removed, headers int
	for _, l := range lines {
		switch l.Type {
		case LineAdded:
			added++
			assert.Equal(t, "pkgrel=2", l.Content)
		case LineRemoved:
			removed++
			assert.Equal(t, "pkgrel=1", l.Content)
		case LineHeader:
			headers++
		}
	}
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, headers)

	assert.Nil(t, ParseDiff(""))
}

func TestAllowPublish(t *testing.T) {
	t.Run("Fixed Suppresses Release Churn", func(t *testing.T) {
		allow := AllowPublish(recipe.ClassFixed, ParseDiff(releaseOnlyDiff))
		assert.False(t, allow)
	})

	t.Run("Fixed Publishes Version Bump", func(t *testing.T) {
		allow := AllowPublish(recipe.ClassFixed, ParseDiff(versionAndReleaseDiff))
		assert.True(t, allow)
	})

	t.Run("Fixed Publishes Dependency Change", func(t *testing.T) {
		allow := AllowPublish(recipe.ClassFixed, ParseDiff(dependsDiff))
		assert.True(t, allow)
	})

	t.Run("VCS Suppresses Version And Release Churn", func(t *testing.T) {
		allow := AllowPublish(recipe.ClassVersionControlled, ParseDiff(versionAndReleaseDiff))
		assert.False(t, allow)
	})

	t.Run("VCS Publishes Unrelated Change", func(t *testing.T) {
		allow := AllowPublish(recipe.ClassVersionControlled, ParseDiff(dependsDiff))
		assert.True(t, allow)
	})

	t.Run("Empty Diff Never Publishes", func(t *testing.T) {
		assert.False(t, AllowPublish(recipe.ClassFixed, nil))
		assert.False(t, AllowPublish(recipe.ClassVersionControlled, nil))
	})
}
