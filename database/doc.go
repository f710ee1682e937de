// Package database provides connection management for MySQL, PostgreSQL and
// SQLite through Bun, query logging hooks, driver error classification and
// schema migrations for registered models.
package database
