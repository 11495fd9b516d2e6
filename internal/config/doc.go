// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. Values are
// exposed as typed structs so components never read the environment directly.
package config
