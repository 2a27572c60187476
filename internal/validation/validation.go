// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules (required fields,
// length limits, value choices) declared in struct tags, runs custom
// cross-field checks, and extracts failures into field-level errors the
// client can act on.
package validation
