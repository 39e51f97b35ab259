package models

import "time"

// OperationKind tags an undo record with the operation it reverses. Only
// stock price mutations are undoable today; the tag leaves room for more
// operation kinds without a schema change.
type OperationKind string

// OpStockPrice marks a stock price mutation.
const OpStockPrice OperationKind = "stock_price"

// UndoRecord captures a single price mutation for one-step undo. The stack is
// linear and consumed last-pushed-first; there is no redo.
type UndoRecord struct {
	Timestamp time.Time     `json:"timestamp"`
	Op        OperationKind `json:"type"`
	Kind      StockKind     `json:"stock_type"`
	OldPrice  float64       `json:"old_price"`
	NewPrice  float64       `json:"new_price"`
}

// GameState is the complete state tree owned by the store: both stocks with
// their histories, the player roster, the debt ledger, the append-only trade
// log, and the price-change undo stack.
type GameState struct {
	Stocks       map[StockKind]*Stock `json:"stocks"`
	Players      []Player             `json:"players"`
	Debts        []DebtRecord         `json:"debts"`
	TradeRecords []TradeRecord        `json:"trade_records"`
	Undo         []UndoRecord         `json:"history"`
}

// NewGameState builds the initial state: both stocks seeded at the initial
// price and the default five-player roster.
func NewGameState(now time.Time, newID func() string) GameState {
	return GameState{
		Stocks: map[StockKind]*Stock{
			KindProperty:  NewStock(KindProperty, "Property", now),
			KindEducation: NewStock(KindEducation, "Education", now),
		},
		Players:      DefaultRoster(newID),
		Debts:        []DebtRecord{},
		TradeRecords: []TradeRecord{},
		Undo:         []UndoRecord{},
	}
}
