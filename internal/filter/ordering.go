package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// OrderingParam is the query parameter carrying sort instructions, e.g.
// ?ordering=-created_at,title. A leading '-' sorts descending.
const OrderingParam = "ordering"

// Ordering whitelists the sortable fields of a list endpoint and maps the
// client-facing names onto SQL columns. Fields outside the whitelist are
// silently ignored.
type Ordering struct {
	fields []orderField
	def    string
}

type orderField struct {
	name   string
	column string
}

// NewOrdering creates an Ordering with a default instruction (same syntax
// as the query parameter, e.g. "-created_at") used when the client sends
// no usable ordering.
func NewOrdering(def string) *Ordering {
	return &Ordering{def: def}
}

// Allow whitelists a sortable field, mapping its client-facing name onto
// a SQL column. Returns the Ordering for chaining.
func (o *Ordering) Allow(name, column string) *Ordering {
	o.fields = append(o.fields, orderField{name: name, column: column})
	return o
}

// OrderBy resolves the ordering query parameter into an ORDER BY clause
// body ("a.created_at DESC, a.title ASC"). Never returns an empty string
// as long as the default names a whitelisted field.
func (o *Ordering) OrderBy(q url.Values) string {
	if clause := o.resolve(q.Get(OrderingParam)); clause != "" {
		return clause
	}
	return o.resolve(o.def)
}

func (o *Ordering) resolve(instruction string) string {
	var parts []string
	for _, key := range strings.Split(instruction, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(key, "-") {
			dir = "DESC"
			key = strings.TrimPrefix(key, "-")
		}
		for _, f := range o.fields {
			if f.name == key {
				parts = append(parts, f.column+" "+dir)
				break
			}
		}
	}
	return strings.Join(parts, ", ")
}

// Pagination defaults. Limit is clamped to [1, MaxPageLimit].
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page is a resolved limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit/offset from the query values, applying defaults
// and clamping. Unparseable values fall back to the defaults.
func ParsePage(q url.Values) Page {
	limit := DefaultPageLimit
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			limit = n
			if limit > MaxPageLimit {
				limit = MaxPageLimit
			}
		}
	}

	offset := 0
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return Page{Limit: limit, Offset: offset}
}
