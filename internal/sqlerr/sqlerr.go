// Package sqlerr translates database driver errors into application errors.
//
// It parses SQLSTATE codes reported by PostgreSQL (via pgx) and converts
// them into user-facing errs values, so a unique violation on tags.name
// surfaces as "A tag with this Name already exists" instead of a raw
// constraint name.
package sqlerr

import "fmt"

// Code is a coarse classification of PostgreSQL SQLSTATE codes, covering
// the integrity-constraint class this API cares about.
type Code int

const (
	// Other is any SQLSTATE this package does not classify.
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	RestrictViolation
	ExclusionViolation
	InvalidTextRepresentation
)

// MapCode maps a PostgreSQL SQLSTATE string to a Code.
//
// SQLSTATE reference: class 23 is integrity constraint violation,
// 22P02 is invalid text representation (bad uuid/enum casts).
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "23001":
		return RestrictViolation
	case "23P01":
		return ExclusionViolation
	case "22P02":
		return InvalidTextRepresentation
	default:
		return Other
	}
}

// Severity mirrors the severity field of a PostgreSQL error response.
type Severity int

const (
	SeverityOther Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
	SeverityWarning
	SeverityNotice
)

// MapSeverity maps the severity string reported by the server.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	default:
		return SeverityOther
	}
}

// Error is the normalized form of a PostgreSQL server error. It keeps the
// original SQLSTATE plus the schema metadata needed to phrase user-facing
// messages (table, column, constraint).
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	// driverErr is the original driver error, kept for Unwrap.
	driverErr error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.TableName != "" {
		return fmt.Sprintf("sqlerr: %s (SQLSTATE %s, table %s)", e.Message, e.DatabaseCode, e.TableName)
	}
	return fmt.Sprintf("sqlerr: %s (SQLSTATE %s)", e.Message, e.DatabaseCode)
}

// Unwrap exposes the underlying driver error to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.driverErr
}
