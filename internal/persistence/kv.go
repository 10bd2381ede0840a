// Package persistence serializes the entity store to a durable key-value
// byte store: one JSON blob per collection under a fixed key. Reading a key
// that does not exist yields an empty collection, never an error.
package persistence

import "context"

// Storage keys. Each collection is an independently keyed blob.
const (
	KeySessions  = "eventflow_sessions"
	KeyAttendees = "eventflow_attendees"
	KeySpeakers  = "eventflow_speakers"
	KeyRooms     = "eventflow_rooms"
	KeyFavorites = "eventflow_favorites"
)

// Keys lists every storage key in write order.
func Keys() []string {
	return []string{KeySessions, KeyAttendees, KeySpeakers, KeyRooms, KeyFavorites}
}

// KV is the durable byte store the codec writes through. Apply must commit
// all entries in a single transaction so a snapshot is never half-written.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Apply(ctx context.Context, entries map[string][]byte) error
	Close() error
}
