// Package session holds all per-session mutable state: the most recent
// search results, the in-flight order draft, the pending-order snapshot,
// the cart, and the signed-in identity. Keeping this out of process memory
// is what lets the assistant serve concurrent sessions and lets a checkout
// survive the full-page redirect to the payment provider.
package session

import (
	"context"

	"letsgo-store/internal/model"
)

// Store defines per-session state access. Every method takes the session
// id issued by the session middleware cookie.
type Store interface {
	// SaveSearchResults replaces the session's result cache. An empty
	// slice still replaces it: a search with no hits invalidates earlier
	// ordinal references.
	SaveSearchResults(ctx context.Context, sessionID string, results []model.SearchResult) error

	// SearchResults returns the cached results, nil when none were stored.
	SearchResults(ctx context.Context, sessionID string) ([]model.SearchResult, error)

	// SaveDraft stores the session's single order draft, overwriting any
	// previous one.
	SaveDraft(ctx context.Context, sessionID string, draft *model.OrderDraft) error

	// Draft returns the pending draft, nil when there is none.
	Draft(ctx context.Context, sessionID string) (*model.OrderDraft, error)

	// ClearDraft removes the pending draft.
	ClearDraft(ctx context.Context, sessionID string) error

	// SavePendingOrder writes the redirect-surviving checkout snapshot,
	// overwriting any prior snapshot. The slot has no expiry: an abandoned
	// checkout stays resumable until the next attempt replaces it.
	SavePendingOrder(ctx context.Context, sessionID string, pending *model.PendingOrder) error

	// PendingOrder returns the live snapshot, nil when there is none.
	PendingOrder(ctx context.Context, sessionID string) (*model.PendingOrder, error)

	// ClearPendingOrder deletes the snapshot. Called only after a
	// successful reconciliation.
	ClearPendingOrder(ctx context.Context, sessionID string) error

	// SaveCart replaces the session cart.
	SaveCart(ctx context.Context, sessionID string, items []model.CartItem) error

	// Cart returns the session cart, nil when empty.
	Cart(ctx context.Context, sessionID string) ([]model.CartItem, error)

	// ClearCart empties the session cart.
	ClearCart(ctx context.Context, sessionID string) error

	// SaveIdentity attaches a signed-in identity to the session.
	SaveIdentity(ctx context.Context, sessionID string, identity *model.Identity) error

	// Identity returns the session identity, nil when anonymous.
	Identity(ctx context.Context, sessionID string) (*model.Identity, error)

	// ClearIdentity signs the session out.
	ClearIdentity(ctx context.Context, sessionID string) error
}
