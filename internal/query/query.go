// Package query translates list-endpoint query strings into SQL.
//
// Reserved keys select, sort, page and limit shape the result. Every other key
// is a filter written as field=value or field[op]=value, op being one of
// eq, gt, gte, lt, lte or in. Fields and operators outside the collection's
// whitelist are rejected.
package query

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"campdirectory/internal/apperror"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
)

type Operator string

const (
	Eq  Operator = "eq"
	Gt  Operator = "gt"
	Gte Operator = "gte"
	Lt  Operator = "lt"
	Lte Operator = "lte"
	In  Operator = "in"
)

var comparisons = map[Operator]string{
	Eq:  "=",
	Gt:  ">",
	Gte: ">=",
	Lt:  "<",
	Lte: "<=",
}

var reserved = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

type condition struct {
	sql  string
	args []any
}

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

type Query struct {
	collection *Collection
	fields     []string
	order      []string
	where      []condition

	Page  int
	Limit int
}

// Parse builds a Query for c from the request query string.
func Parse(c *Collection, values url.Values) (*Query, error) {
	q := &Query{
		collection: c,
		Page:       positiveInt(values.Get("page"), DefaultPage),
		Limit:      positiveInt(values.Get("limit"), DefaultLimit),
	}
	// page*limit has to fit in an int, otherwise OFFSET wraps negative.
	if q.Page > math.MaxInt/q.Limit {
		q.Page = DefaultPage
	}

	if err := q.parseSelect(values["select"]); err != nil {
		return nil, invalid(err)
	}
	if err := q.parseSort(values.Get("sort")); err != nil {
		return nil, invalid(err)
	}
	if err := q.parseFilters(values); err != nil {
		return nil, invalid(err)
	}

	return q, nil
}

func invalid(err error) error {
	return apperror.New(apperror.Validation, "Invalid query: "+err.Error(), nil)
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func (q *Query) parseSelect(raw []string) error {
	for _, name := range splitList(raw) {
		if _, err := q.collection.field(name); err != nil {
			return err
		}
		q.fields = append(q.fields, name)
	}
	return nil
}

func (q *Query) parseSort(raw string) error {
	if raw == "" {
		raw = q.collection.DefaultSort
	}

	hasID := false
	for _, name := range splitList([]string{raw}) {
		dir := "ASC"
		if strings.HasPrefix(name, "-") {
			dir = "DESC"
			name = name[1:]
		}

		f, err := q.collection.field(name)
		if err != nil {
			return err
		}
		if f.Type == Object || f.Type == StringArray {
			return fmt.Errorf("field %q cannot be sorted", name)
		}
		if name == "id" {
			hasID = true
		}
		q.order = append(q.order, f.Column+" "+dir)
	}

	if !hasID {
		q.order = append(q.order, "id ASC")
	}
	return nil
}

func (q *Query) parseFilters(values url.Values) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		if !reserved[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		name, op, err := splitKey(key)
		if err != nil {
			return err
		}

		f, err := q.collection.field(name)
		if err != nil {
			return err
		}

		conds, err := f.conditions(name, op, values[key])
		if err != nil {
			return err
		}
		q.where = append(q.where, conds...)
	}
	return nil
}

// splitKey parses "field" or "field[op]".
func splitKey(key string) (string, Operator, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, Eq, nil
	}
	if open == 0 || !strings.HasSuffix(key, "]") {
		return "", "", fmt.Errorf("malformed filter %q", key)
	}

	op := Operator(key[open+1 : len(key)-1])
	if _, ok := comparisons[op]; !ok && op != In {
		return "", "", fmt.Errorf("unknown operator %q", op)
	}
	return key[:open], op, nil
}

func (f Field) conditions(name string, op Operator, raws []string) ([]condition, error) {
	switch {
	case f.Type == Object:
		return nil, fmt.Errorf("field %q cannot be filtered", name)
	case op == In:
		list := splitList(raws)
		if len(list) == 0 {
			return nil, fmt.Errorf("operator in on %q needs at least one value", name)
		}
		arr, err := f.coerceList(name, list)
		if err != nil {
			return nil, err
		}
		if f.Type == StringArray {
			return []condition{{sql: f.Column + " && ?", args: []any{arr}}}, nil
		}
		return []condition{{sql: f.Column + " = ANY(?)", args: []any{arr}}}, nil
	case op != Eq && (f.Type == Bool || f.Type == StringArray):
		return nil, fmt.Errorf("operator %s is not supported for field %q", op, name)
	}

	conds := make([]condition, 0, len(raws))
	for _, raw := range raws {
		v, err := f.coerce(name, raw)
		if err != nil {
			return nil, err
		}
		if f.Type == StringArray {
			conds = append(conds, condition{sql: "? = ANY(" + f.Column + ")", args: []any{v}})
			continue
		}
		conds = append(conds, condition{sql: f.Column + " " + comparisons[op] + " ?", args: []any{v}})
	}
	return conds, nil
}

// Scope restricts the query to rows where column equals value. Used for nested routes.
func (q *Query) Scope(column string, value any) *Query {
	q.where = append(q.where, condition{sql: column + " = ?", args: []any{value}})
	return q
}

// Fields returns the selected field names, empty when the client did not select.
func (q *Query) Fields() []string {
	return q.fields
}

func (q *Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

func (q *Query) whereClause() (string, []any) {
	if len(q.where) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(q.where))
	var args []any
	for _, c := range q.where {
		parts = append(parts, c.sql)
		args = append(args, c.args...)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// SelectSQL renders the page query with postgres placeholders.
func (q *Query) SelectSQL() (string, []any) {
	where, args := q.whereClause()
	stmt := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT ? OFFSET ?",
		q.collection.Columns, q.collection.Table, where, strings.Join(q.order, ", "))
	args = append(args, q.Limit, q.Offset())
	return sqlx.Rebind(sqlx.DOLLAR, stmt), args
}

// CountSQL counts the rows matching the filters, ignoring pagination.
func (q *Query) CountSQL() (string, []any) {
	where, args := q.whereClause()
	stmt := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", q.collection.Table, where)
	return sqlx.Rebind(sqlx.DOLLAR, stmt), args
}

// Pagination describes the neighbouring pages given the filtered total.
func (q *Query) Pagination(total int) Pagination {
	var p Pagination
	offset := q.Offset()
	if offset+q.Limit < total {
		p.Next = &PageRef{Page: q.Page + 1, Limit: q.Limit}
	}
	if offset > 0 {
		p.Prev = &PageRef{Page: q.Page - 1, Limit: q.Limit}
	}
	return p
}
