// Package store defines the persistence contracts for users and tasks.
// Implementations live in internal/platform/postgres; services depend only
// on these interfaces and on the error values declared here.
package store
