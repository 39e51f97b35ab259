package store

import (
	"math"
	"sort"

	"github.com/yichenq/gamebank/internal/models"
)

// AdjustHolding changes a player's unit count for a kind by delta (positive
// buys, negative sells), floor-clamped at zero. Every non-zero delta appends
// a trade record at the stock's current price; the record keeps the requested
// magnitude even when the zero clamp reduces the applied change.
func (s *Store) AdjustHolding(playerID string, kind models.StockKind, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustHoldingLocked(playerID, kind, delta)
}

// SellForCash sells quantity units at the current price and credits the
// rounded proceeds to the player's cash. Returns the proceeds, or zero when
// the holding is insufficient (the caller is expected to pre-validate, but
// the store double-checks).
func (s *Store) SellForCash(playerID string, kind models.StockKind, quantity int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerLocked(playerID)
	stock, ok := s.state.Stocks[kind]
	if p == nil || !ok || quantity <= 0 || p.Holding(kind) < quantity {
		return 0
	}

	proceeds := models.Round2(float64(quantity) * stock.Price)
	s.adjustHoldingLocked(playerID, kind, -quantity)
	s.creditCashLocked(p, proceeds)
	return proceeds
}

// CashOut liquidates holdings to raise at least target cash, property first.
// Units to sell per kind are computed with a ceiling so the raised amount
// never falls short; the overshoot (at most one unit of the last kind sold)
// is credited in full. Fails without touching state when the portfolio value
// is below the target.
func (s *Store) CashOut(playerID string, target float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerLocked(playerID)
	if p == nil || math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		return false
	}

	rounded := models.Round2(target)
	if s.totalAssetValueLocked(playerID) < rounded {
		return false
	}

	remaining := rounded
	var raised float64
	sells := make(map[models.StockKind]int, len(models.Kinds()))
	for _, kind := range models.Kinds() {
		if remaining <= 0 {
			break
		}
		stock, ok := s.state.Stocks[kind]
		if !ok || p.Holding(kind) <= 0 {
			continue
		}
		needed := int(math.Ceil(remaining / stock.Price))
		toSell := needed
		if held := p.Holding(kind); toSell > held {
			toSell = held
		}
		remaining -= float64(toSell) * stock.Price
		raised += float64(toSell) * stock.Price
		sells[kind] = toSell
	}

	for _, kind := range models.Kinds() {
		if sells[kind] > 0 {
			s.adjustHoldingLocked(playerID, kind, -sells[kind])
		}
	}
	s.creditCashLocked(p, models.Round2(raised))
	return true
}

// TradeByAmount converts a target cash amount into whole units at the
// current price (ordinary rounding, unlike CashOut's ceiling) and trades
// them. Sells credit the nominal target amount as cash; buys do not debit
// cash at all. That asymmetry mirrors the table's physical-cash flow and is
// intentional. The returned difference is the rounding gain (+) or loss (−)
// between the nominal amount and the unit value traded; it is reported, not
// ledgered.
func (s *Store) TradeByAmount(playerID string, kind models.StockKind, direction models.TradeDirection, target float64) (units int, diff float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerLocked(playerID)
	stock, found := s.state.Stocks[kind]
	if p == nil || !found || math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		return 0, 0, false
	}

	switch direction {
	case models.DirectionSell:
		held := p.Holding(kind)
		if held <= 0 || target > float64(held)*stock.Price {
			return 0, 0, false
		}
		units = int(math.Round(target / stock.Price))
		if units > held {
			units = held
		}
		diff = models.Round2(target - float64(units)*stock.Price)
		if units > 0 {
			s.adjustHoldingLocked(playerID, kind, -units)
		}
		s.creditCashLocked(p, target)
		return units, diff, true

	case models.DirectionBuy:
		units = int(math.Round(target / stock.Price))
		if units <= 0 {
			return 0, 0, false
		}
		diff = models.Round2(target - float64(units)*stock.Price)
		s.adjustHoldingLocked(playerID, kind, units)
		return units, diff, true
	}
	return 0, 0, false
}

// CalculateRealizedProfit reconstructs realized profit from the trade log:
// per kind, sell trades are FIFO-matched against a time-ordered queue of buy
// trades. Sells beyond recorded buys contribute revenue with no offsetting
// cost (initial non-traded holdings sell as pure profit). Pure and
// deterministic; recomputed in full on every call.
func (s *Store) CalculateRealizedProfit(playerID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, kind := range models.Kinds() {
		var buys []models.TradeRecord
		var sells []models.TradeRecord
		for _, rec := range s.state.TradeRecords {
			if rec.PlayerID != playerID || rec.Kind != kind {
				continue
			}
			switch rec.Direction {
			case models.DirectionBuy:
				buys = append(buys, rec)
			case models.DirectionSell:
				sells = append(sells, rec)
			}
		}

		sort.SliceStable(buys, func(i, j int) bool {
			return buys[i].Timestamp.Before(buys[j].Timestamp)
		})

		var revenue, cost float64
		for _, sell := range sells {
			remaining := sell.Quantity
			revenue += float64(sell.Quantity) * sell.Price

			for remaining > 0 && len(buys) > 0 {
				matched := remaining
				if buys[0].Quantity < matched {
					matched = buys[0].Quantity
				}
				cost += float64(matched) * buys[0].Price
				buys[0].Quantity -= matched
				remaining -= matched
				if buys[0].Quantity == 0 {
					buys = buys[1:]
				}
			}
		}
		total += revenue - cost
	}
	return models.Round2(total)
}

// TradeRecordsFor returns the player's trade records in log order.
func (s *Store) TradeRecordsFor(playerID string) []models.TradeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.TradeRecord
	for _, rec := range s.state.TradeRecords {
		if rec.PlayerID == playerID {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Store) adjustHoldingLocked(playerID string, kind models.StockKind, delta int) bool {
	p := s.playerLocked(playerID)
	stock, ok := s.state.Stocks[kind]
	if p == nil || !ok {
		return false
	}

	if p.Holdings == nil {
		p.Holdings = make(map[models.StockKind]int)
	}
	next := p.Holdings[kind] + delta
	if next < 0 {
		next = 0
	}
	p.Holdings[kind] = next

	if delta != 0 {
		direction := models.DirectionBuy
		if delta < 0 {
			direction = models.DirectionSell
		}
		quantity := delta
		if quantity < 0 {
			quantity = -quantity
		}
		s.state.TradeRecords = append(s.state.TradeRecords, models.TradeRecord{
			ID:        s.newID(),
			PlayerID:  playerID,
			Kind:      kind,
			Direction: direction,
			Quantity:  quantity,
			Price:     stock.Price,
			Timestamp: s.now(),
		})
	}
	return true
}

func (s *Store) creditCashLocked(p *models.Player, amount float64) {
	next := p.Cash + amount
	if next < 0 {
		next = 0
	}
	p.Cash = next
}
