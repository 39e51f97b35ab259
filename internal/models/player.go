package models

import "errors"

const (
	// DefaultInsuranceFee is the insurance fee every player starts with.
	DefaultInsuranceFee = 1500.0

	// InsuranceFeeStep is the increment applied by the table-wide fee raise.
	InsuranceFeeStep = 1500.0
)

// Player is one participant at the table. Cash, holdings, and the insurance
// fee are clamped at zero on decrement and never go negative.
type Player struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Color            string            `json:"color"`
	Cash             float64           `json:"cash"`
	Holdings         map[StockKind]int `json:"stocks"`
	InsuranceFee     float64           `json:"insurance_fee"`
	InsuranceEnabled bool              `json:"insurance_enabled"`
}

// Holding returns the player's unit count for a kind, zero when untracked.
func (p *Player) Holding(kind StockKind) int {
	if p.Holdings == nil {
		return 0
	}
	return p.Holdings[kind]
}

// Validate checks that all player fields are valid.
func (p *Player) Validate() error {
	if p.ID == "" {
		return errors.New("player ID must not be empty")
	}
	if p.Name == "" {
		return errors.New("player name must not be empty")
	}
	if p.Cash < 0 {
		return errors.New("player cash must not be negative")
	}
	for kind, units := range p.Holdings {
		if !kind.Valid() {
			return errors.New("player holdings must only reference known stock kinds")
		}
		if units < 0 {
			return errors.New("player holdings must not be negative")
		}
	}
	if p.InsuranceFee < 0 {
		return errors.New("player insurance fee must not be negative")
	}
	return nil
}

// defaultRosterEntry pairs the fixed name and color of one default player.
type defaultRosterEntry struct {
	name  string
	color string
}

var defaultRoster = []defaultRosterEntry{
	{"Lin Juerui", "#FF6B6B"},
	{"Han Jiangtao", "#4ECDC4"},
	{"Wu Yuanqi", "#45B7D1"},
	{"Fu Wenwei", "#96CEB4"},
	{"Ou Zheyou", "#FFEAA7"},
}

// DefaultRoster builds the fixed five-player default roster with fresh IDs
// from newID: zero cash, zero holdings, starting insurance fee, insurance off.
func DefaultRoster(newID func() string) []Player {
	players := make([]Player, 0, len(defaultRoster))
	for _, entry := range defaultRoster {
		players = append(players, Player{
			ID:               newID(),
			Name:             entry.name,
			Color:            entry.color,
			Cash:             0,
			Holdings:         map[StockKind]int{KindProperty: 0, KindEducation: 0},
			InsuranceFee:     DefaultInsuranceFee,
			InsuranceEnabled: false,
		})
	}
	return players
}
