package repository

import (
	"fmt"
	"strings"
)

// Pageable carries the paging and sorting parameters of a listing
// query.  Page is zero based.  Sort names an entity field; each
// repository maps it onto a real column through its own whitelist, so
// arbitrary strings can never reach the ORDER BY clause.
type Pageable struct {
	Page int
	Size int
	Sort string
	Desc bool
}

// Offset returns the row offset of the page.
func (p Pageable) Offset() int { return p.Page * p.Size }

// orderClause builds an ORDER BY fragment from the pageable's sort
// field, consulting the given field-to-column whitelist.  Unknown sort
// fields silently fall back to the default column, matching the
// original behaviour of ignoring sorts on unmapped properties.
func orderClause(p Pageable, columns map[string]string, defaultColumn string) string {
	col, ok := columns[normalizeSort(p.Sort)]
	if !ok {
		col = defaultColumn
	}
	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, dir)
}

// normalizeSort lowercases and trims a caller supplied sort field so
// whitelist keys can be written once.
func normalizeSort(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
