package repository

import (
	"fmt"
	"strings"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/shared/utils"

	"github.com/lib/pq"
)

const selectBookColumns = `
		SELECT b.id, b.title, b.publication_year, b.author_id, a.name,
			b.created_at, b.updated_at
		FROM books b
		JOIN authors a ON a.id = b.author_id`

var entityAlias = map[string]string{
	model.EntityBook:   "b",
	model.EntityAuthor: "a",
}

// textOrderFields are sorted by byte order so both stores agree.
var textOrderFields = map[string]bool{"title": true}

func column(entity, field string) string {
	return entityAlias[entity] + "." + pq.QuoteIdentifier(field)
}

// buildListQuery turns q into SQL using the shared filter table.
func buildListQuery(q model.BookQuery) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	bind := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, f := range q.Filters {
		col := column(f.Field.Entity, f.Field.Field)
		switch {
		case f.Field.Numeric:
			where = append(where, fmt.Sprintf("%s = %s", col, bind(f.Number)))
		case f.Field.Mode == model.MatchIExact:
			where = append(where, fmt.Sprintf("LOWER(%s) = LOWER(%s)", col, bind(f.Text)))
		default:
			where = append(where, fmt.Sprintf("%s = %s", col, bind(f.Text)))
		}
	}

	if q.Search != "" {
		p := bind(utils.ContainsPattern(q.Search))
		where = append(where, utils.JoinWithOr([]string{
			column(model.EntityBook, "title") + " ILIKE " + p,
			column(model.EntityAuthor, "name") + " ILIKE " + p,
		}))
	}

	var sb strings.Builder
	sb.WriteString(selectBookColumns)
	if len(where) > 0 {
		sb.WriteString("\n\t\tWHERE ")
		sb.WriteString(utils.JoinWithAnd(where))
	}
	sb.WriteString("\n\t\tORDER BY ")
	sb.WriteString(buildOrderBy(q.Ordering))

	return sb.String(), args
}

func buildOrderBy(ordering []model.OrderTerm) string {
	if len(ordering) == 0 {
		ordering = model.DefaultOrdering
	}
	parts := make([]string, 0, len(ordering)+1)
	for _, term := range ordering {
		dir := "ASC"
		if term.Desc {
			dir = "DESC"
		}
		expr := column(model.EntityBook, term.Field)
		if textOrderFields[term.Field] {
			expr += ` COLLATE "C"`
		}
		parts = append(parts, expr+" "+dir)
	}
	parts = append(parts, "b.id ASC")
	return strings.Join(parts, ", ")
}
