// Package config loads the application configuration.
//
// Values come from the environment (optionally seeded by a .env file via
// godotenv) and are decoded with Viper. Defaults live in `default:"..."`
// struct tags and are registered reflectively, so every nested key can be
// overridden with an upper-cased, underscore-joined variable such as
// SOURCE_STORE_NAME or CATALOG_HANDLES_FILE.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, report archiving
//   - Storage: MinIO/S3 bucket for handle lists and run reports
//   - Log: level and format
//   - Database: run journal connection (mysql or sqlite)
//   - Source, Target: Shopify store credentials
//   - Catalog: handle list location, attribute owner types, cache TTL, journal toggle
package config
