package session

import (
	"context"
	"sync"

	"letsgo-store/internal/model"
)

// MemoryStore is an in-process Store used by tests and single-node
// development runs. Snapshot overwrite/delete semantics match the Redis
// implementation.
type MemoryStore struct {
	mu       sync.RWMutex
	results  map[string][]model.SearchResult
	drafts   map[string]*model.OrderDraft
	pending  map[string]*model.PendingOrder
	carts    map[string][]model.CartItem
	identity map[string]*model.Identity
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		results:  make(map[string][]model.SearchResult),
		drafts:   make(map[string]*model.OrderDraft),
		pending:  make(map[string]*model.PendingOrder),
		carts:    make(map[string][]model.CartItem),
		identity: make(map[string]*model.Identity),
	}
}

func (s *MemoryStore) SaveSearchResults(ctx context.Context, sessionID string, results []model.SearchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if results == nil {
		results = []model.SearchResult{}
	}
	s.results[sessionID] = results
	return nil
}

func (s *MemoryStore) SearchResults(ctx context.Context, sessionID string) ([]model.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results, ok := s.results[sessionID]
	if !ok {
		return nil, nil
	}
	return results, nil
}

func (s *MemoryStore) SaveDraft(ctx context.Context, sessionID string, draft *model.OrderDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *draft
	s.drafts[sessionID] = &copied
	return nil
}

func (s *MemoryStore) Draft(ctx context.Context, sessionID string) (*model.OrderDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *draft
	return &copied, nil
}

func (s *MemoryStore) ClearDraft(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

func (s *MemoryStore) SavePendingOrder(ctx context.Context, sessionID string, pending *model.PendingOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *pending
	s.pending[sessionID] = &copied
	return nil
}

func (s *MemoryStore) PendingOrder(ctx context.Context, sessionID string) (*model.PendingOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending, ok := s.pending[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *pending
	return &copied, nil
}

func (s *MemoryStore) ClearPendingOrder(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, sessionID)
	return nil
}

func (s *MemoryStore) SaveCart(ctx context.Context, sessionID string, items []model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if items == nil {
		items = []model.CartItem{}
	}
	s.carts[sessionID] = items
	return nil
}

func (s *MemoryStore) Cart(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	return items, nil
}

func (s *MemoryStore) ClearCart(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func (s *MemoryStore) SaveIdentity(ctx context.Context, sessionID string, identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *identity
	s.identity[sessionID] = &copied
	return nil
}

func (s *MemoryStore) Identity(ctx context.Context, sessionID string) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identity[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *identity
	return &copied, nil
}

func (s *MemoryStore) ClearIdentity(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.identity, sessionID)
	return nil
}
