package assistant

import (
	"context"
	"strings"

	"letsgo-store/internal/model"
	"letsgo-store/internal/repository"

	"github.com/rs/zerolog"
)

// resolver turns a draft's slots into a finalised order payload. Every
// failure it returns is a typed DomainError the state machine recovers
// from; infrastructure errors come back wrapped and abandon the draft.
type resolver struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	logger    zerolog.Logger
}

func newResolver(products repository.ProductRepository, customers repository.CustomerRepository, logger zerolog.Logger) *resolver {
	return &resolver{
		products:  products,
		customers: customers,
		logger:    logger.With().Str("service", "resolver").Logger(),
	}
}

// resolveRequest carries everything one resolution attempt needs: the
// session's cached search results and identity plus the draft's slots.
// Ordinal is 1-based against Results; when zero, ProductID is treated as a
// direct identifier.
type resolveRequest struct {
	Results   []model.SearchResult
	Identity  *model.Identity
	Ordinal   int
	ProductID string
	Quantity  int
	Email     string
	Name      string
}

func (r *resolver) resolveOrder(ctx context.Context, req resolveRequest) (*model.OrderPayload, error) {
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	// 1. Product: ordinal against the result cache, or a direct id.
	productID := req.ProductID
	if req.Ordinal > 0 {
		if req.Ordinal > len(req.Results) {
			r.logger.Debug().
				Int("ordinal", req.Ordinal).
				Int("results", len(req.Results)).
				Msg("ordinal outside cached results")
			return nil, model.ErrProductNotFound
		}
		productID = req.Results[req.Ordinal-1].ID
	}

	product, err := r.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	// 2. Effective email: explicit argument, else session identity.
	email := strings.TrimSpace(req.Email)
	if email == "" && req.Identity != nil {
		email = req.Identity.Email
	}
	if email == "" {
		return nil, model.ErrMissingEmail
	}

	authenticated := req.Identity != nil && req.Identity.Email == email

	// 3. Effective name: stored customer name, explicit argument, then the
	// identity's display name or the email local part for authenticated
	// sessions ordering under their own email.
	customer, err := r.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, model.ErrCustomerLookup
	}

	var name string
	switch {
	case customer != nil && strings.TrimSpace(customer.Name) != "":
		name = strings.TrimSpace(customer.Name)
	case strings.TrimSpace(req.Name) != "":
		name = strings.TrimSpace(req.Name)
	case authenticated:
		name = strings.TrimSpace(req.Identity.Name)
		if name == "" {
			name = emailLocalPart(email)
		}
	}
	if name == "" {
		return nil, model.ErrMissingName
	}

	// 4. First order from an authenticated session creates the customer
	// record, keyed by the identity id so retries are idempotent.
	var customerID string
	if customer != nil {
		customerID = customer.ID
	} else if authenticated && req.Identity.ID != "" {
		if err := r.customers.Upsert(ctx, &model.Customer{
			ID:    req.Identity.ID,
			Name:  name,
			Email: email,
		}); err != nil {
			return nil, model.ErrCustomerSave
		}
		customerID = req.Identity.ID
	}

	// 5. Stock validation happens against the freshly loaded row, not the
	// cached search result.
	if product.Stock < quantity {
		return nil, model.NewInsufficientStockError(product.Stock)
	}

	// 6. Finalised payload.
	return &model.OrderPayload{
		CustomerID:    customerID,
		CustomerName:  name,
		CustomerEmail: email,
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductPrice:  product.Price,
		Quantity:      quantity,
		TotalPrice:    product.Price * float64(quantity),
		Status:        "pending",
	}, nil
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "고객"
}
