// Package config provides configuration management for the variant generator.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of every
// section and are registered by reflection so AutomaticEnv picks them up.
//
// # Configuration Structure
//
//   - Server: HTTP server settings (port, API key, reconcile cache TTL)
//   - Database: MySQL connection of the variant ledger
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Variant: name prefix, root directory and quality parameters
//
// Nested keys map to upper-case environment variables joined with "_", e.g.
// VARIANT_NAME_PREFIX or STORAGE_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Variant.NamePrefix)
package config
