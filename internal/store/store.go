// Package store owns the single in-memory game state tree and every command
// and query over it: stock prices and their histories, player portfolios and
// cash, the debt ledger, trade-record accounting, and the derived financial
// computations. All commands are synchronous and mutate the tree atomically
// under one lock; a query issued after a command observes that command's
// effects.
//
// Validation failures are silent no-ops returning a false/zero sentinel,
// never an error: the store serves a locally-trusted single-user tool and
// callers are expected to surface failures themselves.
//
// State is persisted as a versioned JSON snapshot; see snapshot.go for the
// format and the load-time migration rules.
package store

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yichenq/gamebank/internal/models"
)

// UnknownPlayerName is the placeholder returned for lookups against player
// IDs that no longer exist. Debt and trade records are not cascade-deleted
// when a player is removed, so dangling references are expected.
const UnknownPlayerName = "Unknown"

// Store is the state engine. It is constructed once per session and guards
// the whole state tree with a single lock: commands read several fields
// (current price, holdings) and must never observe a torn state in between.
type Store struct {
	mu    sync.RWMutex
	state models.GameState

	filePath string

	// Injected for deterministic tests.
	now   func() time.Time
	newID func() string
}

// New creates a store with a fresh initial game state. If filePath is empty,
// snapshots go to an OS-appropriate tmp location.
func New(filePath string) *Store {
	return NewWith(filePath, time.Now, func() string { return uuid.New().String() })
}

// NewWith creates a store with injectable clock and ID generation.
func NewWith(filePath string, now func() time.Time, newID func() string) *Store {
	if filePath == "" {
		filePath = filepath.Join(os.TempDir(), "gamebank", "state.json")
	}
	return &Store{
		state:    models.NewGameState(now(), newID),
		filePath: filePath,
		now:      now,
		newID:    newID,
	}
}

// FullReset replaces the entire state tree with the initial state: both
// stocks back at the initial price with reseeded histories, the default
// roster, and empty debt, trade, and undo logs.
func (s *Store) FullReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.NewGameState(s.now(), s.newID)
}

// StartNewGame resets stocks, histories, debts, trade records, and the undo
// stack AND replaces the roster with the default five, in one atomic
// operation. A strict superset of ResetToDefaultRoster.
func (s *Store) StartNewGame() {
	s.FullReset()
}

// ResetToDefaultRoster replaces the player list with the fixed five-player
// default (fresh IDs, zero balances). Stocks, debts, and trade records are
// untouched.
func (s *Store) ResetToDefaultRoster() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Players = models.DefaultRoster(s.newID)
}

// Stocks returns the current stocks keyed by kind. The returned structs are
// copies; histories share backing arrays that the store only appends to.
func (s *Store) Stocks() map[models.StockKind]models.Stock {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[models.StockKind]models.Stock, len(s.state.Stocks))
	for kind, stock := range s.state.Stocks {
		out[kind] = *stock
	}
	return out
}

// Stock returns one stock by kind.
func (s *Store) Stock(kind models.StockKind) (models.Stock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stock, ok := s.state.Stocks[kind]
	if !ok {
		return models.Stock{}, false
	}
	return *stock, true
}

// Players returns the roster in storage order.
func (s *Store) Players() []models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Player, len(s.state.Players))
	copy(out, s.state.Players)
	return out
}

// Player returns one player by ID.
func (s *Store) Player(id string) (models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.playerLocked(id)
	if p == nil {
		return models.Player{}, false
	}
	return *p, true
}

// PlayerName resolves a player or creditor ID to a display name. Removed
// players resolve to the UnknownPlayerName placeholder; the bank sentinel
// resolves to "Bank".
func (s *Store) PlayerName(id string) string {
	if id == models.BankCreditorID {
		return "Bank"
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if p := s.playerLocked(id); p != nil {
		return p.Name
	}
	return UnknownPlayerName
}

// TotalAssetValue is the sum over both kinds of holding times current price.
// Cash is not included. Unknown players value at zero.
func (s *Store) TotalAssetValue(playerID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalAssetValueLocked(playerID)
}

// UnrealizedProfit is the paper gain/loss on currently-held units versus the
// flat assumed cost basis. This deliberately ignores per-lot purchase prices;
// realized profit from completed sales is CalculateRealizedProfit.
func (s *Store) UnrealizedProfit(playerID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.playerLocked(playerID)
	if p == nil {
		return 0
	}

	var profit float64
	for _, kind := range models.Kinds() {
		stock, ok := s.state.Stocks[kind]
		if !ok {
			continue
		}
		profit += float64(p.Holding(kind)) * (stock.Price - models.AssumedCostBasis)
	}
	return models.Round2(profit)
}

func (s *Store) totalAssetValueLocked(playerID string) float64 {
	p := s.playerLocked(playerID)
	if p == nil {
		return 0
	}

	var total float64
	for _, kind := range models.Kinds() {
		stock, ok := s.state.Stocks[kind]
		if !ok {
			continue
		}
		total += float64(p.Holding(kind)) * stock.Price
	}
	return total
}

func (s *Store) playerLocked(id string) *models.Player {
	for i := range s.state.Players {
		if s.state.Players[i].ID == id {
			return &s.state.Players[i]
		}
	}
	return nil
}
