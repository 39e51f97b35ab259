package models

import (
	"errors"
	"time"
)

// AssumedCostBasis is the flat per-unit cost basis used for unrealized
// profit. A simplification: actual purchase prices per lot are ignored.
const AssumedCostBasis = 100.0

// TradeDirection is the side of a trade record.
type TradeDirection string

const (
	DirectionBuy  TradeDirection = "buy"
	DirectionSell TradeDirection = "sell"
)

// TradeRecord is one append-only entry in the trade log. The price is a
// snapshot of the stock's price at execution time, not a live reference.
// Records are never mutated or deleted after creation; realized-profit
// matching operates over working copies.
type TradeRecord struct {
	ID        string         `json:"id"`
	PlayerID  string         `json:"player_id"`
	Kind      StockKind      `json:"stock_type"`
	Direction TradeDirection `json:"type"`
	Quantity  int            `json:"quantity"`
	Price     float64        `json:"price"`
	Timestamp time.Time      `json:"timestamp"`
}

// Validate checks that all trade record fields are valid.
func (t *TradeRecord) Validate() error {
	if t.ID == "" {
		return errors.New("trade ID must not be empty")
	}
	if t.PlayerID == "" {
		return errors.New("trade player ID must not be empty")
	}
	if !t.Kind.Valid() {
		return errors.New("trade kind must be property or education")
	}
	if t.Direction != DirectionBuy && t.Direction != DirectionSell {
		return errors.New("trade direction must be 'buy' or 'sell'")
	}
	if t.Quantity <= 0 {
		return errors.New("trade quantity must be positive")
	}
	if t.Price <= 0 {
		return errors.New("trade price must be positive")
	}
	return nil
}
