// Package session implements server-side sliding-window sessions.
//
// A session is a single expiring key in the backing store. The store's
// native TTL is the sole authority for liveness: a session exists if and
// only if its key does, and every validated request slides the TTL
// forward by the full configured duration.
package session

import (
	"context"
	"time"
)

// Subject is the authenticated principal stored inside a session record.
// It is a minimal immutable snapshot; profile fields are re-fetched from
// the user store when needed.
type Subject struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Store is an expiring key-value store holding serialized session records.
// Keys are session IDs; implementations own the key namespace.
type Store interface {
	// Set writes the record with the given TTL, overwriting any previous
	// value and TTL.
	Set(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error

	// Get returns the record, or (nil, nil) if the key does not exist
	// or has expired.
	Get(ctx context.Context, sessionID string) ([]byte, error)

	// Refresh re-arms the TTL on an existing key without touching its
	// value. Returns false if the key does not exist; a missing key is
	// not an error and must never be created by Refresh.
	Refresh(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, sessionID string) error
}
