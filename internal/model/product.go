package model

import "time"

// Product represents a furniture product in the catalogue.
type Product struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Image     *string   `json:"image,omitempty" db:"image"`
	Stock     int       `json:"stock" db:"stock"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SearchResult is the slice of a product the assistant keeps around for
// ordinal references ("1번", "첫 번째"). Lifetime: until the next search
// in the same session.
type SearchResult struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image *string `json:"image,omitempty"`
	Stock int     `json:"stock"`
}

// ToSearchResult projects a product onto the fields the assistant caches.
func (p Product) ToSearchResult() SearchResult {
	return SearchResult{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: p.Image,
		Stock: p.Stock,
	}
}
