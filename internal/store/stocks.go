package store

import (
	"math"

	"github.com/yichenq/gamebank/internal/models"
)

// SetPrice sets a stock's price, floor-clamped to the minimum positive price.
// The change is appended to the stock's history and pushed onto the undo
// stack. Returns false without mutating state for unknown kinds or
// non-finite prices.
func (s *Store) SetPrice(kind models.StockKind, newPrice float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPriceLocked(kind, newPrice)
}

// AdjustPriceByPercent moves a stock's price by a percentage, rounding the
// result to a whole currency unit. Rounding keeps prices "round" during
// gameplay; fractional prices only arise from direct sets.
func (s *Store) AdjustPriceByPercent(kind models.StockKind, percent float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return false
	}
	stock, ok := s.state.Stocks[kind]
	if !ok {
		return false
	}
	return s.setPriceLocked(kind, math.Round(stock.Price*(1+percent/100)))
}

// UndoLastPriceChange pops the most recent undo record and re-applies its old
// price as a fresh history append, so the undo itself stays visible in the
// price history. Returns false when the undo stack is empty. Exactly one
// level deep: a second undo in a row fails.
func (s *Store) UndoLastPriceChange() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.state.Undo)
	if n == 0 {
		return false
	}

	// Pop only once the record is known to be applicable, so a record
	// referencing an unknown kind (hand-edited snapshot) is not consumed.
	rec := s.state.Undo[n-1]
	stock, ok := s.state.Stocks[rec.Kind]
	if !ok {
		return false
	}
	s.state.Undo = s.state.Undo[:n-1]

	s.applyPriceLocked(stock, rec.OldPrice)
	return true
}

func (s *Store) setPriceLocked(kind models.StockKind, newPrice float64) bool {
	if math.IsNaN(newPrice) || math.IsInf(newPrice, 0) {
		return false
	}
	stock, ok := s.state.Stocks[kind]
	if !ok {
		return false
	}

	oldPrice := stock.Price
	final := s.applyPriceLocked(stock, newPrice)

	// Depth-1 undo stack: each mutation replaces whatever was undoable before.
	s.state.Undo = append(s.state.Undo[:0], models.UndoRecord{
		Timestamp: s.now(),
		Op:        models.OpStockPrice,
		Kind:      kind,
		OldPrice:  oldPrice,
		NewPrice:  final,
	})
	return true
}

// applyPriceLocked clamps, sets, and appends the history sample without
// touching the undo stack. Shared by setPrice and undo.
func (s *Store) applyPriceLocked(stock *models.Stock, price float64) float64 {
	final := math.Max(models.MinStockPrice, price)
	stock.Price = final
	stock.History = append(stock.History, models.PricePoint{Timestamp: s.now(), Price: final})
	return final
}
