package model

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"catalog-backend/internal/shared/apperror"
)

// Entities a filter or ordering field can live on.
const (
	EntityBook   = "book"
	EntityAuthor = "author"
)

// MatchMode is how a filter value is compared with the stored field.
type MatchMode int

const (
	MatchExact  MatchMode = iota // equality
	MatchIExact                  // case-insensitive equality
)

// FilterField maps a query-string key to a stored field.
type FilterField struct {
	Key     string
	Entity  string
	Field   string
	Mode    MatchMode
	Numeric bool
}

// FilterFields is the full set of list filters, in evaluation order.
var FilterFields = []FilterField{
	{Key: "title", Entity: EntityBook, Field: "title", Mode: MatchExact},
	{Key: "author", Entity: EntityAuthor, Field: "name", Mode: MatchIExact},
	{Key: "publication_year", Entity: EntityBook, Field: "publication_year", Mode: MatchExact, Numeric: true},
}

// OrderingFields are the fields accepted by ?ordering=.
var OrderingFields = []string{"title", "publication_year"}

// DefaultOrdering applies when ?ordering= is absent or has no usable field.
var DefaultOrdering = []OrderTerm{{Field: "title"}}

// Filter is one parsed filter value.
type Filter struct {
	Field  FilterField
	Text   string
	Number int
}

// OrderTerm is one ordering field; Desc comes from a leading '-'.
type OrderTerm struct {
	Field string
	Desc  bool
}

// BookQuery is the parsed list-books request.
type BookQuery struct {
	Filters  []Filter
	Search   string
	Ordering []OrderTerm
}

// ParseBookQuery reads ?title, ?author, ?publication_year, ?search and ?ordering.
// Empty filter values are ignored. Unknown ordering fields are dropped.
func ParseBookQuery(values url.Values) (BookQuery, error) {
	q := BookQuery{
		Search: strings.TrimSpace(values.Get("search")),
	}

	for _, field := range FilterFields {
		raw := values.Get(field.Key)
		if raw == "" {
			continue
		}
		f := Filter{Field: field, Text: raw}
		if field.Numeric {
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				return BookQuery{}, apperror.Field(field.Key, apperror.CodeInvalidInput, "Enter a whole number.")
			}
			f.Number = int(n)
		}
		q.Filters = append(q.Filters, f)
	}

	q.Ordering = parseOrdering(values.Get("ordering"))
	return q, nil
}

func parseOrdering(raw string) []OrderTerm {
	var terms []OrderTerm
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		if !isOrderingField(name) {
			continue
		}
		terms = append(terms, OrderTerm{Field: name, Desc: desc})
	}
	if len(terms) == 0 {
		return DefaultOrdering
	}
	return terms
}

func isOrderingField(name string) bool {
	for _, f := range OrderingFields {
		if f == name {
			return true
		}
	}
	return false
}

// Matches evaluates filters and search against b. b.AuthorName must be set.
func (q BookQuery) Matches(b *Book) bool {
	for _, f := range q.Filters {
		if !f.matches(b) {
			return false
		}
	}
	if q.Search == "" {
		return true
	}
	term := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.AuthorName), term)
}

func (f Filter) matches(b *Book) bool {
	switch {
	case f.Field.Entity == EntityBook && f.Field.Field == "title":
		return compareText(b.Title, f.Text, f.Field.Mode)
	case f.Field.Entity == EntityBook && f.Field.Field == "publication_year":
		return b.PublicationYear == f.Number
	case f.Field.Entity == EntityAuthor && f.Field.Field == "name":
		return compareText(b.AuthorName, f.Text, f.Field.Mode)
	default:
		return false
	}
}

func compareText(stored, want string, mode MatchMode) bool {
	if mode == MatchIExact {
		return strings.EqualFold(stored, want)
	}
	return stored == want
}

// SortBooks orders books in place by the given terms, breaking ties on ID.
func SortBooks(books []*Book, ordering []OrderTerm) {
	if len(ordering) == 0 {
		ordering = DefaultOrdering
	}
	sort.SliceStable(books, func(i, j int) bool {
		a, b := books[i], books[j]
		for _, term := range ordering {
			c := compareField(a, b, term.Field)
			if c == 0 {
				continue
			}
			if term.Desc {
				return c > 0
			}
			return c < 0
		}
		return a.ID.String() < b.ID.String()
	})
}

func compareField(a, b *Book, field string) int {
	switch field {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "publication_year":
		switch {
		case a.PublicationYear < b.PublicationYear:
			return -1
		case a.PublicationYear > b.PublicationYear:
			return 1
		}
	}
	return 0
}
