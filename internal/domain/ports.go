package domain

import "context"

// SnapshotStore abstracts the durable store: a key-ordered table holding one
// row per timer, replaced wholesale on every persistence write.
type SnapshotStore interface {
	// ReadAll returns the stored set ordered by display position. An empty
	// set with a nil error means the store holds nothing.
	ReadAll(ctx context.Context) (TimerSet, error)

	// ReplaceAll overwrites the stored set with the given one, deriving each
	// row's display position from its sequence index.
	ReplaceAll(ctx context.Context, timers TimerSet) error
}

// BroadcastChannel abstracts the publish/subscribe substrate. Delivery is
// at-least-once and unordered, and includes the publisher itself.
type BroadcastChannel interface {
	Publish(ctx context.Context, snapshot SetSnapshot) error

	// Subscribe blocks, invoking handler for every decodable inbound
	// snapshot until ctx is cancelled. Undecodable payloads are dropped.
	Subscribe(ctx context.Context, handler func(SetSnapshot)) error

	// Connected reports the current channel connectivity status.
	Connected() bool
}

// FallbackCache is a best-effort, synchronous local mirror of the latest
// known state, readable without network access. Write failures are swallowed.
type FallbackCache interface {
	Write(snapshot SetSnapshot)
	Read() (SetSnapshot, bool)
}
