// Package sqlutil provides SQL utility functions.
package sqlutil

import "strings"

// QuoteIdentifier quotes a SQL identifier (table name, column name, etc.)
// with double quotes and escapes any double quotes within the identifier.
func QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `"` + escaped + `"`
}

// QuoteQualified quotes a qualifier.name pair, quoting each part separately.
// An empty qualifier yields just the quoted name.
func QuoteQualified(qualifier, name string) string {
	if qualifier == "" {
		return QuoteIdentifier(name)
	}
	return QuoteIdentifier(qualifier) + "." + QuoteIdentifier(name)
}

// QuoteString quotes a SQL string literal with single quotes and escapes
// any single quotes within the string by doubling them.
func QuoteString(s string) string {
	escaped := strings.ReplaceAll(s, "'", "''")
	return "'" + escaped + "'"
}
