// Package model declares the Bun models for users and their preferences and
// registers them with the database model registry.
package model
