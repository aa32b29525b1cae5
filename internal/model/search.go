package model

import "strings"

// searchSep separates fields inside a search key so a term can't match across
// two of them
const searchSep = "\x1f"

// SearchKey is the lowercased form searches run against. Lowercasing happens
// here and not in SQL because SQLite's LOWER only folds ASCII
func SearchKey(fields ...string) string {
	return strings.ToLower(strings.Join(fields, searchSep))
}

// SearchTerm normalizes a user supplied term the same way as SearchKey
func SearchTerm(q string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(q), searchSep, ""))
}
