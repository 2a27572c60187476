// Package filter maps list-endpoint query parameters onto parameterized
// SQL predicates.
//
// A Set is a declarative description of the filterable surface of a list
// endpoint: which query parameters exist, which column each one targets,
// and how values are compared (exact, case-insensitive containment,
// range bounds, boolean, membership, custom predicates). Repositories
// apply a Set to the incoming query values and splice the resulting WHERE
// fragments into their list queries.
//
// Values never reach SQL unparameterized: every comparison binds through
// a positional placeholder managed by Builder. Unknown query parameters
// are ignored; invalid values for known parameters produce an
// *InvalidFilterError naming the parameter, which the service layer turns
// into a 400 with a field error.
package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvalidFilterError reports a known filter parameter with an unusable
// value. Param is the query parameter name as the client sent it.
type InvalidFilterError struct {
	Param   string
	Message string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter %q: %s", e.Param, e.Message)
}

// Builder accumulates WHERE fragments and their bound arguments.
//
// base is the number of placeholders the caller has already used in its
// query, so fragments produced here continue the $n numbering instead of
// colliding with the caller's own arguments.
type Builder struct {
	base  int
	where []string
	args  []any
}

// NewBuilder creates a Builder whose placeholders start after the
// caller's existingArgs bound arguments.
func NewBuilder(existingArgs int) *Builder {
	return &Builder{base: existingArgs}
}

// Bind registers v as a query argument and returns its placeholder ("$3").
func (b *Builder) Bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", b.base+len(b.args))
}

// Where appends a complete SQL fragment. Fragments are ANDed together.
func (b *Builder) Where(fragment string) {
	b.where = append(b.where, fragment)
}

// Fragments returns the accumulated WHERE fragments.
func (b *Builder) Fragments() []string {
	return b.where
}

// Args returns the accumulated bound arguments, in placeholder order.
func (b *Builder) Args() []any {
	return b.args
}

// Func is a custom predicate: it receives the raw query values for its
// parameter and contributes fragments/arguments to the builder.
type Func func(b *Builder, values []string) error

// Field binds one query parameter to a predicate function.
type Field struct {
	Param string
	fn    Func
}

// Set is the declarative filter surface of a list endpoint.
type Set struct {
	fields []Field
}

// NewSet builds a Set from field declarations.
func NewSet(fields ...Field) *Set {
	return &Set{fields: fields}
}

// Apply walks the declared fields, looks up their parameters in q, and
// contributes predicates for every parameter that is present with at
// least one non-blank value. Parameters q carries that no field declares
// are ignored.
func (s *Set) Apply(q url.Values, b *Builder) error {
	for _, f := range s.fields {
		raw, ok := q[f.Param]
		if !ok {
			continue
		}
		values := make([]string, 0, len(raw))
		for _, v := range raw {
			if strings.TrimSpace(v) != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		if err := f.fn(b, values); err != nil {
			return err
		}
	}
	return nil
}

// ---- field constructors ----------------------------------------------------

// Exact matches column equal to the parameter value.
func Exact(param, column string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		b.Where(fmt.Sprintf("%s = %s", column, b.Bind(values[0])))
		return nil
	}}
}

// IExact matches column equal to the value, case-insensitively.
func IExact(param, column string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		b.Where(fmt.Sprintf("lower(%s) = lower(%s)", column, b.Bind(values[0])))
		return nil
	}}
}

// IContains matches column containing the value, case-insensitively.
func IContains(param, column string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		b.Where(fmt.Sprintf("%s ILIKE %s", column, b.Bind(containsPattern(values[0]))))
		return nil
	}}
}

// Choice matches column equal to the value, rejecting values outside the
// allowed set.
func Choice(param, column string, choices ...string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		if !contains(choices, values[0]) {
			return &InvalidFilterError{Param: param, Message: fmt.Sprintf("must be one of: %s", strings.Join(choices, ", "))}
		}
		b.Where(fmt.Sprintf("%s = %s", column, b.Bind(values[0])))
		return nil
	}}
}

// MultiChoice accepts the parameter repeated (?status=a&status=b) and
// matches rows whose column equals any of the given values.
func MultiChoice(param, column string, choices ...string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		for _, v := range values {
			if !contains(choices, v) {
				return &InvalidFilterError{Param: param, Message: fmt.Sprintf("must be one of: %s", strings.Join(choices, ", "))}
			}
		}
		b.Where(fmt.Sprintf("%s = ANY(%s)", column, b.Bind(values)))
		return nil
	}}
}

// In accepts a comma-separated value list (?status_in=a,b) and matches
// rows whose column equals any of them.
func In(param, column string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		var list []string
		for _, v := range strings.Split(values[0], ",") {
			if v = strings.TrimSpace(v); v != "" {
				list = append(list, v)
			}
		}
		if len(list) == 0 {
			return &InvalidFilterError{Param: param, Message: "must be a comma-separated list"}
		}
		b.Where(fmt.Sprintf("%s = ANY(%s)", column, b.Bind(list)))
		return nil
	}}
}

// Exclude matches rows whose column does NOT equal the value.
func Exclude(param, column string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		b.Where(fmt.Sprintf("%s <> %s", column, b.Bind(values[0])))
		return nil
	}}
}

// Bool matches a boolean column against true/false values.
func Bool(param, column string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		v, err := ParseBool(values[0])
		if err != nil {
			return &InvalidFilterError{Param: param, Message: "must be true or false"}
		}
		b.Where(fmt.Sprintf("%s = %s", column, b.Bind(v)))
		return nil
	}}
}

// DateGTE matches column >= the given date (YYYY-MM-DD, UTC midnight).
func DateGTE(param, column string) Field {
	return dateBound(param, column, ">=")
}

// DateLTE matches column <= the given date.
func DateLTE(param, column string) Field {
	return dateBound(param, column, "<=")
}

func dateBound(param, column, op string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		t, err := time.Parse("2006-01-02", values[0])
		if err != nil {
			return &InvalidFilterError{Param: param, Message: "must be a date in YYYY-MM-DD format"}
		}
		b.Where(fmt.Sprintf("%s %s %s", column, op, b.Bind(t)))
		return nil
	}}
}

// NumberGTE matches column >= the given decimal value.
func NumberGTE(param, column string) Field {
	return numberBound(param, column, ">=")
}

// NumberLTE matches column <= the given decimal value.
func NumberLTE(param, column string) Field {
	return numberBound(param, column, "<=")
}

func numberBound(param, column, op string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		d, err := decimal.NewFromString(values[0])
		if err != nil {
			return &InvalidFilterError{Param: param, Message: "must be a number"}
		}
		b.Where(fmt.Sprintf("%s %s %s", column, op, b.Bind(d)))
		return nil
	}}
}

// Year matches rows whose column falls in the given calendar year.
func Year(param, column string) Field {
	return datePart(param, column, "YEAR")
}

// Month matches rows whose column falls in the given month (1-12).
func Month(param, column string) Field {
	return datePart(param, column, "MONTH")
}

func datePart(param, column, part string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		n, err := strconv.Atoi(values[0])
		if err != nil {
			return &InvalidFilterError{Param: param, Message: "must be an integer"}
		}
		b.Where(fmt.Sprintf("EXTRACT(%s FROM %s) = %s", part, column, b.Bind(n)))
		return nil
	}}
}

// Search matches the value case-insensitively against any of the given
// columns (ORed), the way a search box behaves.
func Search(param string, columns ...string) Field {
	return Field{Param: param, fn: func(b *Builder, values []string) error {
		pattern := b.Bind(containsPattern(values[0]))
		parts := make([]string, len(columns))
		for i, col := range columns {
			parts[i] = fmt.Sprintf("%s ILIKE %s", col, pattern)
		}
		b.Where("(" + strings.Join(parts, " OR ") + ")")
		return nil
	}}
}

// Custom binds a parameter to a caller-supplied predicate, for conditions
// that do not fit the declarative constructors (EXISTS subqueries etc.).
func Custom(param string, fn Func) Field {
	return Field{Param: param, fn: fn}
}

// ---- helpers ---------------------------------------------------------------

// ParseBool accepts the boolean spellings list endpoints conventionally
// take: true/false, 1/0, yes/no (case-insensitive).
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

// containsPattern builds an ILIKE %value% pattern, escaping the LIKE
// metacharacters in the user value.
func containsPattern(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(value) + "%"
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
