package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yichenq/gamebank/internal/models"
)

// SnapshotVersion is the current snapshot schema version. Version 1 predates
// the insurance feature; version 2 added per-player insurance fields.
const SnapshotVersion = 2

const (
	snapshotFilePerm = os.FileMode(0o644)
	snapshotDirPerm  = os.FileMode(0o755)
)

// snapshotFile is the on-disk structure for JSON persistence.
type snapshotFile struct {
	Version      int                                    `json:"version"`
	SavedAt      time.Time                              `json:"saved_at"`
	Stocks       map[models.StockKind]*models.Stock     `json:"stocks"`
	Players      []snapshotPlayer                       `json:"players"`
	Debts        []models.DebtRecord                    `json:"debts"`
	TradeRecords []models.TradeRecord                   `json:"trade_records"`
	Undo         []models.UndoRecord                    `json:"history"`
}

// snapshotPlayer carries insurance fields as pointers so a missing field in
// an old snapshot is distinguishable from a legitimate zero and can be
// backfilled with the default.
type snapshotPlayer struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Color            string                   `json:"color"`
	Cash             float64                  `json:"cash"`
	Holdings         map[models.StockKind]int `json:"stocks"`
	InsuranceFee     *float64                 `json:"insurance_fee,omitempty"`
	InsuranceEnabled *bool                    `json:"insurance_enabled,omitempty"`
}

// Save persists the full state tree to the snapshot file. The write is
// atomic: data goes to a temp file first, then renames over the target.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, snapshotDirPerm); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data := snapshotFile{
		Version:      SnapshotVersion,
		SavedAt:      s.now(),
		Stocks:       s.state.Stocks,
		Players:      encodePlayers(s.state.Players),
		Debts:        s.state.Debts,
		TradeRecords: s.state.TradeRecords,
		Undo:         s.state.Undo,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tempPath := s.filePath + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, snapshotFilePerm); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tempPath, s.filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename snapshot: %w", err)
	}
	return nil
}

// Load restores the state tree from the snapshot file, migrating older
// schema versions before the state becomes visible to any command. A missing
// file leaves the fresh initial state in place.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clean up any stale temp file from a previous crash.
	tempPath := s.filePath + ".tmp"
	if _, err := os.Stat(tempPath); err == nil {
		_ = os.Remove(tempPath)
	}

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return nil
	}

	jsonData, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var data snapshotFile
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	state := models.GameState{
		Stocks:       data.Stocks,
		Players:      decodePlayers(data.Players),
		Debts:        data.Debts,
		TradeRecords: data.TradeRecords,
		Undo:         data.Undo,
	}

	if data.Version < SnapshotVersion {
		// The pre-insurance roster shape is not worth patching field by
		// field; replace it with the default roster outright.
		state.Players = models.DefaultRoster(s.newID)
	}

	s.restoreLocked(state)
	return nil
}

// restoreLocked installs a loaded state, re-seeding anything a hand-edited
// or truncated snapshot left nil.
func (s *Store) restoreLocked(state models.GameState) {
	now := s.now()
	if state.Stocks == nil {
		state.Stocks = make(map[models.StockKind]*models.Stock, 2)
	}
	if state.Stocks[models.KindProperty] == nil {
		state.Stocks[models.KindProperty] = models.NewStock(models.KindProperty, "Property", now)
	}
	if state.Stocks[models.KindEducation] == nil {
		state.Stocks[models.KindEducation] = models.NewStock(models.KindEducation, "Education", now)
	}
	if state.Players == nil {
		state.Players = models.DefaultRoster(s.newID)
	}
	if state.Debts == nil {
		state.Debts = []models.DebtRecord{}
	}
	if state.TradeRecords == nil {
		state.TradeRecords = []models.TradeRecord{}
	}
	if state.Undo == nil {
		state.Undo = []models.UndoRecord{}
	}
	s.state = state
}

func encodePlayers(players []models.Player) []snapshotPlayer {
	out := make([]snapshotPlayer, 0, len(players))
	for _, p := range players {
		fee := p.InsuranceFee
		enabled := p.InsuranceEnabled
		out = append(out, snapshotPlayer{
			ID:               p.ID,
			Name:             p.Name,
			Color:            p.Color,
			Cash:             p.Cash,
			Holdings:         p.Holdings,
			InsuranceFee:     &fee,
			InsuranceEnabled: &enabled,
		})
	}
	return out
}

// decodePlayers backfills insurance fields absent from older player records
// with their defaults.
func decodePlayers(players []snapshotPlayer) []models.Player {
	if players == nil {
		return nil
	}
	out := make([]models.Player, 0, len(players))
	for _, sp := range players {
		p := models.Player{
			ID:               sp.ID,
			Name:             sp.Name,
			Color:            sp.Color,
			Cash:             sp.Cash,
			Holdings:         sp.Holdings,
			InsuranceFee:     models.DefaultInsuranceFee,
			InsuranceEnabled: false,
		}
		if sp.InsuranceFee != nil {
			p.InsuranceFee = *sp.InsuranceFee
		}
		if sp.InsuranceEnabled != nil {
			p.InsuranceEnabled = *sp.InsuranceEnabled
		}
		if p.Holdings == nil {
			p.Holdings = map[models.StockKind]int{
				models.KindProperty:  0,
				models.KindEducation: 0,
			}
		}
		out = append(out, p)
	}
	return out
}
