// Package config loads and validates the application configuration from
// environment variables and an optional config file. Environment variables
// use the LUGAT_ prefix with underscores separating nested keys
// (LUGAT_SERVER_PORT, LUGAT_DATABASE_URL) and take precedence over file
// values.
package config
