package postgres

import (
	"fmt"
	"strings"

	"github.com/phrazzld/worktracker/internal/domain"
)

// setClause accumulates "column = $n" assignments for a partial UPDATE.
type setClause struct {
	parts []string
	args  []any
}

func (c *setClause) add(column string, value any) {
	c.args = append(c.args, value)
	c.parts = append(c.parts, fmt.Sprintf("%s = $%d", column, len(c.args)))
}

func (c *setClause) empty() bool {
	return len(c.parts) == 0
}

// build returns the UPDATE statement and its arguments, with id bound last.
func (c *setClause) build(table string, id int64, returning string) (string, []any) {
	args := append(c.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(c.parts, ", "), len(args), returning)
	return query, args
}

// nullable converts an Optional into a driver value, with null mapping to NULL.
func nullable[T any](o domain.Optional[T]) any {
	if o.Null {
		return nil
	}
	return o.Value
}
