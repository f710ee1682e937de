// Package repository provides a generic repository abstraction built on Bun
// and the user repository with nested preference writes.
package repository
