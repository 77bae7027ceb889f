// Package sqlite provides the group and document store backed by SQLite.
package sqlite
