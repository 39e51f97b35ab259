package store

import (
	"math"

	"github.com/yichenq/gamebank/internal/models"
)

// AddPlayer appends a player with a fresh ID, seeding cash and holdings from
// the supplied value (typically zero). The input's ID field is ignored.
// Returns the stored player, or false when the resulting player is invalid.
func (s *Store) AddPlayer(p models.Player) (models.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.newID()
	if p.Holdings == nil {
		p.Holdings = map[models.StockKind]int{
			models.KindProperty:  0,
			models.KindEducation: 0,
		}
	}
	if err := p.Validate(); err != nil {
		return models.Player{}, false
	}
	s.state.Players = append(s.state.Players, p)
	return p, true
}

// RenamePlayer sets a player's display name. Empty names are rejected.
func (s *Store) RenamePlayer(id, name string) bool {
	if name == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerLocked(id)
	if p == nil {
		return false
	}
	p.Name = name
	return true
}

// RecolorPlayer sets a player's color tag. The color is presentational and
// opaque to the store.
func (s *Store) RecolorPlayer(id, color string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerLocked(id)
	if p == nil {
		return false
	}
	p.Color = color
	return true
}

// AdjustCash changes a player's cash balance by delta, floor-clamped at zero.
func (s *Store) AdjustCash(id string, delta float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerLocked(id)
	if p == nil || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return false
	}
	s.creditCashLocked(p, delta)
	return true
}

// RemovePlayer removes a player unconditionally. Debt and trade records
// referencing the removed ID are left in place; lookups against them resolve
// to the unknown-player placeholder.
func (s *Store) RemovePlayer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Players {
		if s.state.Players[i].ID == id {
			s.state.Players = append(s.state.Players[:i], s.state.Players[i+1:]...)
			return true
		}
	}
	return false
}

// AdjustInsuranceFee changes a player's insurance fee by delta, floor-clamped
// at zero.
func (s *Store) AdjustInsuranceFee(id string, delta float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerLocked(id)
	if p == nil || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return false
	}
	next := p.InsuranceFee + delta
	if next < 0 {
		next = 0
	}
	p.InsuranceFee = next
	return true
}

// ToggleInsurance flips a player's insurance-enabled flag. The fee is
// untouched.
func (s *Store) ToggleInsurance(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerLocked(id)
	if p == nil {
		return false
	}
	p.InsuranceEnabled = !p.InsuranceEnabled
	return true
}

// IncreaseAllInsuranceFees raises every player's insurance fee by the fixed
// step. Used at the start of each insurance round.
func (s *Store) IncreaseAllInsuranceFees() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Players {
		s.state.Players[i].InsuranceFee += models.InsuranceFeeStep
	}
}
