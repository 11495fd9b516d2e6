// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver. It also owns the embedded goose migrations that
// create the users and tasks tables.
package postgres
