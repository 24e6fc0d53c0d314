// Package storage provides the persistence abstraction for session records.
//
// The store is a flat key/value namespace with last-write-wins semantics:
// every save rewrites the full serialized value for its key. Callers are
// expected to tolerate a missing value by substituting a default.
package storage

import "errors"

// ErrNotFound is returned when no value exists for the requested key.
var ErrNotFound = errors.New("record not found")

// Repository defines the interface for serialized record storage.
type Repository interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(key string) ([]byte, error)
	// Save stores value under key, replacing any previous value.
	Save(key string, value []byte) error
	// Delete removes the value stored under key. Deleting a missing key
	// returns ErrNotFound.
	Delete(key string) error
	// List returns all keys with a value, in unspecified order.
	List() ([]string, error)
}
