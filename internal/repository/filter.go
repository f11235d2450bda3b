package repository

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates conjunctive SQL predicates with positional
// placeholders. Predicates are added only for filters that were provided, so
// an empty builder yields no WHERE clause at all rather than a degenerate
// empty conjunction.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// add appends a predicate. expr must contain a single %d verb for the
// placeholder ordinal, e.g. "status = $%d".
func (b *whereBuilder) add(expr string, arg interface{}) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(expr, len(b.args)))
}

// clause returns the assembled WHERE clause including the leading keyword,
// or an empty string when no predicates were added.
func (b *whereBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// containsPattern turns a raw substring filter into a lowercased LIKE pattern
func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
