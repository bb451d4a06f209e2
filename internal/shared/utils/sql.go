package utils

import (
	"strings"
)

// JoinWithAnd joins a slice of SQL predicates with AND
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of SQL predicates with OR, parenthesised so the
// result can be ANDed with other clauses.
func JoinWithOr(clauses []string) string {
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE/ILIKE pattern matching term literally
// anywhere in the value.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
