// Package types holds small value types shared by the repository and the
// session scripts.
package types
