package postgres

import "embed"

// MigrationsDir is the directory inside Migrations holding the goose SQL files.
const MigrationsDir = "migrations"

// Migrations holds the schema migrations applied by goose at startup or via
// the server's -migrate flag.
//
//go:embed migrations/*.sql
var Migrations embed.FS
