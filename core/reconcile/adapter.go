package reconcile

import "context"

// Adapter defines model-specific reconciliation logic for one entity type.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g. "resident").
	Name() string

	// Key validates an incoming item and returns its entity key.
	// A non-nil error rejects the item without touching the store.
	Key(item Item) (string, error)

	// Lookup loads the local record for key. found is false when none exists.
	Lookup(ctx context.Context, key string) (local Local, found bool, err error)

	// Compare decides between ActionUpdate and ActionSkip for an item whose key
	// already exists locally, with a human-readable reason.
	Compare(item Item, local Local) (ActionType, string)

	// Insert creates a local record from the item.
	Insert(ctx context.Context, key string, item Item) error

	// Update overwrites the local record for key with the item.
	Update(ctx context.Context, key string, item Item) error
}
