// Package storage declares persistence contracts for groups and documents.
//
// Web modules depend on these interfaces; the sqlite subpackage provides the
// only production implementation.
package storage
