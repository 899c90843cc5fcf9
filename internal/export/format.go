// Package export writes a models.Dataset out as JSON, as a TypeScript module,
// or into PostgreSQL.
package export

import "strings"

// Format is an output format.
type Format string

const (
	FormatJSON       Format = "json"
	FormatTypeScript Format = "ts"
	FormatPostgres   Format = "postgres"
)

// NormalizeFormat maps a user supplied format name onto a Format.
// Unrecognised names, including the empty string, select JSON.
func NormalizeFormat(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ts", "typescript":
		return FormatTypeScript
	case "pg", "postgres", "postgresql":
		return FormatPostgres
	default:
		return FormatJSON
	}
}

// DefaultPath returns the output file used when none is given.
// Postgres output has no file.
func DefaultPath(format Format) string {
	switch format {
	case FormatTypeScript:
		return "data.ts"
	case FormatJSON:
		return "data.json"
	default:
		return ""
	}
}
