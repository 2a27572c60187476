// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// List queries compose their WHERE clauses from the filter package, so
// the filterable surface of each endpoint is declared next to the SQL
// that serves it.
package repository
