// Package models defines the core domain entities for the gamebank application.
// These models represent the two tradable stocks, the players around the table,
// debt records between players (or the bank), and the append-only trade log.
// All models include built-in validation to ensure data integrity throughout the application.
//
// Terminology (matching the board-game variant's own naming):
//   - Kind: one of the two fixed stock categories, property or education.
//   - Holding: integer count of stock units a player owns for a given kind.
package models

import (
	"errors"
	"time"
)

// StockKind identifies one of the two tradable stock categories.
type StockKind string

const (
	KindProperty  StockKind = "property"
	KindEducation StockKind = "education"
)

// Kinds returns the closed set of stock kinds in liquidation-priority order:
// property is always sold first during a cash-out.
func Kinds() []StockKind {
	return []StockKind{KindProperty, KindEducation}
}

// Valid reports whether k is one of the two known kinds.
func (k StockKind) Valid() bool {
	return k == KindProperty || k == KindEducation
}

const (
	// InitialStockPrice is the seed price for both stocks at the start of a game.
	InitialStockPrice = 100.0

	// MinStockPrice is the floor every price mutation is clamped to.
	MinStockPrice = 0.01
)

// PricePoint is a single sample in a stock's price history.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// Stock represents one tradable stock category. History is append-only and is
// seeded with the initial price at construction; its last entry always equals
// the current price.
type Stock struct {
	ID      StockKind    `json:"id"`
	Name    string       `json:"name"`
	Price   float64      `json:"price"`
	History []PricePoint `json:"history"`
}

// NewStock constructs a stock at the initial price with a seeded history sample.
func NewStock(kind StockKind, name string, now time.Time) *Stock {
	return &Stock{
		ID:      kind,
		Name:    name,
		Price:   InitialStockPrice,
		History: []PricePoint{{Timestamp: now, Price: InitialStockPrice}},
	}
}

// Validate checks that all stock fields are valid.
func (s *Stock) Validate() error {
	if !s.ID.Valid() {
		return errors.New("stock kind must be property or education")
	}
	if s.Name == "" {
		return errors.New("stock name must not be empty")
	}
	if s.Price < MinStockPrice {
		return errors.New("stock price must not be below the minimum price")
	}
	if len(s.History) == 0 {
		return errors.New("stock history must contain at least the seed sample")
	}
	if s.History[len(s.History)-1].Price != s.Price {
		return errors.New("last history sample must equal the current price")
	}
	for i := 1; i < len(s.History); i++ {
		if s.History[i].Timestamp.Before(s.History[i-1].Timestamp) {
			return errors.New("history timestamps must be non-decreasing")
		}
	}
	return nil
}
