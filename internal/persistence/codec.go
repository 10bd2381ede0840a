package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/eventflow/internal/store"
)

// DecodeError reports a blob that could not be decoded into its collection.
// The source left incompatible shapes undefined; the codec rejects them with
// the offending key so operators can inspect or clear it.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("persistence: decoding %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Codec encodes and decodes the entity store snapshot against a KV store.
type Codec struct {
	kv KV
}

// NewCodec wraps the provided KV store.
func NewCodec(kv KV) *Codec {
	return &Codec{kv: kv}
}

// Load reads every collection. Missing keys yield empty collections.
func (c *Codec) Load(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot

	if err := c.loadKey(ctx, KeySessions, &snap.Sessions); err != nil {
		return store.Snapshot{}, err
	}
	if err := c.loadKey(ctx, KeyAttendees, &snap.Attendees); err != nil {
		return store.Snapshot{}, err
	}
	if err := c.loadKey(ctx, KeySpeakers, &snap.Speakers); err != nil {
		return store.Snapshot{}, err
	}
	if err := c.loadKey(ctx, KeyRooms, &snap.Rooms); err != nil {
		return store.Snapshot{}, err
	}
	if err := c.loadKey(ctx, KeyFavorites, &snap.Favorites); err != nil {
		return store.Snapshot{}, err
	}

	return snap, nil
}

func (c *Codec) loadKey(ctx context.Context, key string, target any) error {
	raw, found, err := c.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("persistence: reading %q: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return &DecodeError{Key: key, Err: err}
	}
	return nil
}

// Save writes every collection in a single transaction. Collections are
// normalised to empty (non-null) JSON arrays so a round trip of an empty
// store yields empty collections rather than nulls.
func (c *Codec) Save(ctx context.Context, snap store.Snapshot) error {
	entries := make(map[string][]byte, 5)

	var err error
	if entries[KeySessions], err = encode(emptyIfNil(snap.Sessions)); err != nil {
		return fmt.Errorf("persistence: encoding %q: %w", KeySessions, err)
	}
	if entries[KeyAttendees], err = encode(emptyIfNil(snap.Attendees)); err != nil {
		return fmt.Errorf("persistence: encoding %q: %w", KeyAttendees, err)
	}
	if entries[KeySpeakers], err = encode(emptyIfNil(snap.Speakers)); err != nil {
		return fmt.Errorf("persistence: encoding %q: %w", KeySpeakers, err)
	}
	if entries[KeyRooms], err = encode(emptyIfNil(snap.Rooms)); err != nil {
		return fmt.Errorf("persistence: encoding %q: %w", KeyRooms, err)
	}
	if entries[KeyFavorites], err = encode(emptyIfNil(snap.Favorites)); err != nil {
		return fmt.Errorf("persistence: encoding %q: %w", KeyFavorites, err)
	}

	if err := c.kv.Apply(ctx, entries); err != nil {
		return fmt.Errorf("persistence: writing snapshot: %w", err)
	}
	return nil
}

func encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

func emptyIfNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
