package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"letsgo-store/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Key prefixes. One value per session per concern; the pending-order slot is
// the single well-known key the reconciliation flow reads after the redirect.
const (
	keySearchResults = "chat:results:"
	keyDraft         = "chat:draft:"
	keyPendingOrder  = "payment:pending:"
	keyCart          = "cart:"
	keyIdentity      = "identity:"
)

// Conversational state can expire; the pending-order snapshot must not,
// because there is no timeout on an abandoned checkout.
const conversationTTL = 12 * time.Hour

// redisStore implements Store on Redis with JSON-serialised values.
type redisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed session store and verifies
// connectivity.
func NewRedisStore(ctx context.Context, client *redis.Client, logger zerolog.Logger) (Store, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &redisStore{
		client: client,
		logger: logger.With().Str("store", "session").Logger(),
	}, nil
}

func (s *redisStore) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal session value: %w", err)
	}
	if err := s.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write session value")
		return fmt.Errorf("failed to write session value: %w", err)
	}
	return nil
}

func (s *redisStore) getJSON(ctx context.Context, key string, target interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to read session value")
		return false, fmt.Errorf("failed to read session value: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("failed to unmarshal session value: %w", err)
	}
	return true, nil
}

func (s *redisStore) del(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete session value")
		return fmt.Errorf("failed to delete session value: %w", err)
	}
	return nil
}

func (s *redisStore) SaveSearchResults(ctx context.Context, sessionID string, results []model.SearchResult) error {
	if results == nil {
		results = []model.SearchResult{}
	}
	return s.setJSON(ctx, keySearchResults+sessionID, results, conversationTTL)
}

func (s *redisStore) SearchResults(ctx context.Context, sessionID string) ([]model.SearchResult, error) {
	var results []model.SearchResult
	found, err := s.getJSON(ctx, keySearchResults+sessionID, &results)
	if err != nil || !found {
		return nil, err
	}
	return results, nil
}

func (s *redisStore) SaveDraft(ctx context.Context, sessionID string, draft *model.OrderDraft) error {
	return s.setJSON(ctx, keyDraft+sessionID, draft, conversationTTL)
}

func (s *redisStore) Draft(ctx context.Context, sessionID string) (*model.OrderDraft, error) {
	var draft model.OrderDraft
	found, err := s.getJSON(ctx, keyDraft+sessionID, &draft)
	if err != nil || !found {
		return nil, err
	}
	return &draft, nil
}

func (s *redisStore) ClearDraft(ctx context.Context, sessionID string) error {
	return s.del(ctx, keyDraft+sessionID)
}

func (s *redisStore) SavePendingOrder(ctx context.Context, sessionID string, pending *model.PendingOrder) error {
	return s.setJSON(ctx, keyPendingOrder+sessionID, pending, 0)
}

func (s *redisStore) PendingOrder(ctx context.Context, sessionID string) (*model.PendingOrder, error) {
	var pending model.PendingOrder
	found, err := s.getJSON(ctx, keyPendingOrder+sessionID, &pending)
	if err != nil || !found {
		return nil, err
	}
	return &pending, nil
}

func (s *redisStore) ClearPendingOrder(ctx context.Context, sessionID string) error {
	return s.del(ctx, keyPendingOrder+sessionID)
}

func (s *redisStore) SaveCart(ctx context.Context, sessionID string, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	return s.setJSON(ctx, keyCart+sessionID, items, 0)
}

func (s *redisStore) Cart(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	var items []model.CartItem
	found, err := s.getJSON(ctx, keyCart+sessionID, &items)
	if err != nil || !found {
		return nil, err
	}
	return items, nil
}

func (s *redisStore) ClearCart(ctx context.Context, sessionID string) error {
	return s.del(ctx, keyCart+sessionID)
}

func (s *redisStore) SaveIdentity(ctx context.Context, sessionID string, identity *model.Identity) error {
	return s.setJSON(ctx, keyIdentity+sessionID, identity, 0)
}

func (s *redisStore) Identity(ctx context.Context, sessionID string) (*model.Identity, error) {
	var identity model.Identity
	found, err := s.getJSON(ctx, keyIdentity+sessionID, &identity)
	if err != nil || !found {
		return nil, err
	}
	return &identity, nil
}

func (s *redisStore) ClearIdentity(ctx context.Context, sessionID string) error {
	return s.del(ctx, keyIdentity+sessionID)
}
