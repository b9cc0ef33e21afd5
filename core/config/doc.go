// Package config provides configuration management for the Recipe Manager.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Repo: Local recipe checkout layout (root, recipe file name, special files)
//   - Mirror: Publish mirror layout (root, remote template, commit tag)
//   - Upstream: Snapshot and RPC endpoints for the upstream package service
//   - Database: Publish journal connection details (SQLite or MySQL)
//   - Storage: S3/MinIO credentials and bucket settings for the artifact archive
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Mirror.Root)
package config
