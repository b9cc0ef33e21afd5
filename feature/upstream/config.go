package upstream

// Config holds configuration for the upstream registry.
type Config struct {
	// SnapshotURL is the printf template for a package's snapshot tarball.
	SnapshotURL string `mapstructure:"snapshot_url" default:"https://aur.archlinux.org/cgit/aur.git/snapshot/%s.tar.gz"`
	// RPCURL is the registry's info endpoint.
	RPCURL string `mapstructure:"rpc_url" default:"https://aur.archlinux.org/rpc/"`
	// UserAgent identifies the bot to the registry.
	UserAgent string `mapstructure:"user_agent" default:"recipe-manager/0.1 (package auto-build bot)"`
	// TimeoutSeconds is the HTTP request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
