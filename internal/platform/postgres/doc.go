// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces, using database/sql over the pgx stdlib driver. The schema
// lives in the migrations directory and is applied with goose at startup.
package postgres
