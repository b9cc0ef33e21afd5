// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and is shared by every command and pipeline component of recipe-manager.
//
// # Correlation
//
// Batch runs process many packages sequentially, so correlation fields matter.
// The WithPackage helper attaches the pkgbase being processed and WithRun
// attaches the pipeline run ID, ensuring that all logs related to a single
// package update or publish can be filtered out of a long batch log.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("publishing")
//
//	// While processing one package:
//	l := logger.WithPackage(log, "python-requests")
//	l.Error("publish failed", zap.Error(err))
package logger
