package postgres

import "strings"

// EscapeLike neutralizes LIKE/ILIKE wildcards in user-supplied match
// fragments, so `50%` matches the literal text and not every row.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
