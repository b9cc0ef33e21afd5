package recipe

import "strings"

// Config holds configuration for the recipe tree.
type Config struct {
	// Root is the directory containing one subdirectory per package.
	Root string `mapstructure:"root" default:"."`
	// File is the recipe file name inside each package directory.
	File string `mapstructure:"file" default:"PKGBUILD"`
	// SpecialFiles is a comma-separated list of recipe-local files that are
	// never published to the mirror regardless of tracking.
	SpecialFiles string `mapstructure:"special_files" default:"lilac.py,lilac.yaml"`
}

// SpecialSet returns the special files as a lookup set.
func (c Config) SpecialSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, name := range strings.Split(c.SpecialFiles, ",") {
		if name = strings.TrimSpace(name); name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}
