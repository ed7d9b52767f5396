// Package docstore persists JSON documents grouped in collections and keyed
// by id. Drivers: Firebase Realtime Database, a SQL documents table (gorm)
// and an in-memory map used by tests and local runs.
package docstore

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound   = errors.New("docstore: document not found")
	ErrInvalidKey = errors.New("docstore: invalid key")
	// ErrAbort can be returned by an UpdateFunc to leave the document untouched.
	ErrAbort = errors.New("docstore: update aborted")
)

type Document struct {
	Key  string
	Data []byte
}

// UpdateFunc receives the current document (nil when missing) and returns the
// new one. It may be called more than once by optimistic drivers and must not
// have side effects.
type UpdateFunc func(current []byte) ([]byte, error)

type Store interface {
	Get(ctx context.Context, collection, key string) ([]byte, error)
	// List returns every document of the collection sorted by key.
	List(ctx context.Context, collection string) ([]Document, error)
	Set(ctx context.Context, collection, key string, data []byte) error
	Delete(ctx context.Context, collection, key string) error
	// Update is an atomic read-modify-write of one document. A nil result
	// from fn deletes the document.
	Update(ctx context.Context, collection, key string, fn UpdateFunc) ([]byte, error)
}

// ValidateKey applies Realtime Database path rules to every driver so data
// stays portable between them.
func ValidateKey(key string) error {
	if key == "" || strings.ContainsAny(key, ".$#[]/") {
		return ErrInvalidKey
	}
	return nil
}
