// Package id generates opaque identifiers for stored entities.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a lowercase, unpadded base32 encoding of a random v4 UUID.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(value[:])), nil
}

// Generator produces identifiers. Stores accept one so tests can pin ids.
type Generator func() (string, error)

// Sequence returns a Generator that yields the given ids in order and then
// fails. It exists for deterministic tests.
func Sequence(ids ...string) Generator {
	next := 0
	return func() (string, error) {
		if next >= len(ids) {
			return "", fmt.Errorf("id sequence exhausted")
		}
		value := ids[next]
		next++
		return value, nil
	}
}
