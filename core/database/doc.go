// Package database handles the publish journal storage.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// configure SQLite or MySQL connections based on the application's
// configuration.
//
// # Connect
//
// The generic Connect function establishes a connection to the database.
// SQLite is the default driver so the journal works out of the box with a
// local file; MySQL is available for shared deployments.
//
// # Journal
//
// The Journal records the outcome of every publish attempt (published,
// suppressed, unchanged, failed) together with the run ID and the package
// version, so past runs can be audited.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	journal, err := database.NewJournal(db)
//	if err != nil {
//	    log.Fatal("Journal migration failed", err)
//	}
package database
