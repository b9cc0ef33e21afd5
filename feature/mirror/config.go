package mirror

import "strings"

// Config holds configuration for the mirror repositories.
type Config struct {
	// Root is the directory holding one mirror clone per package.
	Root string `mapstructure:"root" default:"./mirror"`
	// RemoteTemplate is the printf template for a package's mirror remote.
	RemoteTemplate string `mapstructure:"remote_template" default:"aur@aur.archlinux.org:%s.git"`
	// CommitTag prefixes every automated commit message.
	CommitTag string `mapstructure:"commit_tag" default:"[recipe-manager]"`
	// MetadataFile is the name of the generated metadata document.
	MetadataFile string `mapstructure:"metadata_file" default:".SRCINFO"`
	// MetadataCommand is the space-separated command generating the
	// metadata document from a recipe tree.
	MetadataCommand string `mapstructure:"metadata_command" default:"makepkg --printsrcinfo"`
}

// MetadataArgv returns the metadata command as an argv slice.
func (c Config) MetadataArgv() []string {
	return strings.Fields(c.MetadataCommand)
}
