// Package assistant implements the chat-driven order pipeline: intent
// parsing, the per-session order draft state machine, and resolution of
// ordinal references against the session's last search results.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"letsgo-store/internal/model"
	"letsgo-store/internal/payment"
	"letsgo-store/internal/repository"
	"letsgo-store/internal/session"

	"github.com/rs/zerolog"
)

// Conversational replies. Kept verbatim from the storefront.
const (
	msgSearchFirst = "먼저 상품을 검색해주세요"
	msgWhichItem   = "몇 번 상품을 주문할지 알려주세요. 예: 1번 상품 2개 주문"
	msgNoResults   = "검색 결과가 없습니다."
	msgFallback    = "원하시는 상품을 검색하거나, 예: '1번 상품 2개 주문'처럼 입력해 주세요."
	msgOrderError  = "주문 처리 중 오류가 발생했습니다."
)

const searchLimit = 6

// Service handles one assistant turn per incoming message.
type Service interface {
	Chat(ctx context.Context, sessionID, message string) (*model.ChatReply, error)
}

type service struct {
	parser   Parser
	resolver *resolver
	products repository.ProductRepository
	sessions session.Store
	gateway  payment.Gateway
	logger   zerolog.Logger
}

// NewService creates the assistant service.
func NewService(
	parser Parser,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	sessions session.Store,
	gateway payment.Gateway,
	logger zerolog.Logger,
) Service {
	return &service{
		parser:   parser,
		resolver: newResolver(products, customers, logger),
		products: products,
		sessions: sessions,
		gateway:  gateway,
		logger:   logger.With().Str("service", "assistant").Logger(),
	}
}

// Chat runs one turn of the conversation. A pending draft consumes the
// message as a continuation unless the message carries a fresh search or
// order intent, which discards the draft entirely.
func (s *service) Chat(ctx context.Context, sessionID, message string) (*model.ChatReply, error) {
	draft, err := s.sessions.Draft(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	parsed := s.parser.Parse(message, draft != nil)

	if draft != nil {
		if parsed.Intent == IntentContinuation {
			return s.continueDraft(ctx, sessionID, draft, parsed)
		}
		// A fresh intent supersedes the draft; none of its fields may
		// leak into the new request.
		if err := s.sessions.ClearDraft(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("failed to discard draft: %w", err)
		}
	}

	switch parsed.Intent {
	case IntentOrder:
		return s.startOrder(ctx, sessionID, parsed)
	case IntentSearch:
		return s.search(ctx, sessionID, parsed.Keyword)
	default:
		return &model.ChatReply{Text: msgFallback}, nil
	}
}

// startOrder begins a new draft from a fresh order intent. The ordinal must
// resolve against the session's cached results before a draft exists at all.
func (s *service) startOrder(ctx context.Context, sessionID string, parsed ParseResult) (*model.ChatReply, error) {
	results, err := s.sessions.SearchResults(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load search results: %w", err)
	}
	if len(results) == 0 {
		return &model.ChatReply{Text: msgSearchFirst}, nil
	}
	if parsed.Ordinal == 0 {
		return &model.ChatReply{Text: msgWhichItem}, nil
	}

	draft := &model.OrderDraft{
		ProductOrdinal: parsed.Ordinal,
		Quantity:       parsed.Quantity,
		CustomerEmail:  parsed.Email,
		CustomerName:   parsed.Name,
	}

	return s.resolveDraft(ctx, sessionID, draft, results)
}

// continueDraft merges newly supplied fields into the pending draft and
// retries resolution.
func (s *service) continueDraft(ctx context.Context, sessionID string, draft *model.OrderDraft, parsed ParseResult) (*model.ChatReply, error) {
	merged := *draft
	if parsed.Email != "" {
		merged.CustomerEmail = parsed.Email
	}
	if parsed.Name != "" {
		merged.CustomerName = parsed.Name
	}

	results, err := s.sessions.SearchResults(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load search results: %w", err)
	}

	return s.resolveDraft(ctx, sessionID, &merged, results)
}

// resolveDraft attempts resolution and applies the draft lifecycle: a
// missing email or name keeps the draft alive with its merged fields, any
// other failure abandons it, and success clears it regardless of how the
// payment later turns out.
func (s *service) resolveDraft(ctx context.Context, sessionID string, draft *model.OrderDraft, results []model.SearchResult) (*model.ChatReply, error) {
	identity, err := s.sessions.Identity(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	payload, err := s.resolver.resolveOrder(ctx, resolveRequest{
		Results:  results,
		Identity: identity,
		Ordinal:  draft.ProductOrdinal,
		Quantity: draft.Quantity,
		Email:    draft.CustomerEmail,
		Name:     draft.CustomerName,
	})
	if err != nil {
		switch model.ErrorCode(err) {
		case model.ErrCodeMissingEmail, model.ErrCodeMissingName:
			if saveErr := s.sessions.SaveDraft(ctx, sessionID, draft); saveErr != nil {
				return nil, fmt.Errorf("failed to save draft: %w", saveErr)
			}
			return &model.ChatReply{Text: err.Error()}, nil
		}

		if clearErr := s.sessions.ClearDraft(ctx, sessionID); clearErr != nil {
			s.logger.Error().Err(clearErr).Msg("failed to clear abandoned draft")
		}

		var de *model.DomainError
		if errors.As(err, &de) {
			return &model.ChatReply{Text: de.Message}, nil
		}
		s.logger.Error().Err(err).Msg("order resolution failed")
		return &model.ChatReply{Text: msgOrderError}, nil
	}

	if err := s.sessions.ClearDraft(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear completed draft")
	}

	orderName := fmt.Sprintf("%s %d개", payload.ProductName, payload.Quantity)
	checkout, err := s.gateway.InitiateCheckout(ctx, sessionID, payment.CheckoutParams{
		Amount:        payload.TotalPrice,
		OrderName:     orderName,
		CustomerID:    payload.CustomerID,
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		Items: []model.PendingOrderItem{
			{
				ID:       payload.ProductID,
				Name:     payload.ProductName,
				Price:    payload.ProductPrice,
				Quantity: payload.Quantity,
			},
		},
	})
	if err != nil {
		// The draft stays cleared: a failed gateway invocation does not
		// resurrect it.
		s.logger.Error().Err(err).Str("product_id", payload.ProductID).Msg("checkout invocation failed")
		return &model.ChatReply{Text: model.ErrPaymentFailed.Message}, nil
	}

	return &model.ChatReply{
		Text:     fmt.Sprintf("%s %d개 결제를 진행합니다.", payload.ProductName, payload.Quantity),
		Checkout: checkout,
	}, nil
}

// search runs a catalogue search and replaces the session's result cache,
// including with an empty list: stale ordinal references must not survive
// a new search.
func (s *service) search(ctx context.Context, sessionID, keyword string) (*model.ChatReply, error) {
	products, err := s.products.Search(ctx, keyword, searchLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("keyword", keyword).Msg("product search failed")
		products = nil
	}

	results := make([]model.SearchResult, 0, len(products))
	for _, p := range products {
		results = append(results, p.ToSearchResult())
	}

	if err := s.sessions.SaveSearchResults(ctx, sessionID, results); err != nil {
		return nil, fmt.Errorf("failed to cache search results: %w", err)
	}

	if len(results) == 0 {
		return &model.ChatReply{Text: msgNoResults}, nil
	}

	text := fmt.Sprintf("상품 검색 결과 %d개입니다.", len(results))
	if keyword != "" {
		text = fmt.Sprintf("\"%s\" 검색 결과 %d개입니다.", keyword, len(results))
	}

	return &model.ChatReply{Text: text, Products: results}, nil
}
