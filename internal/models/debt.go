package models

import (
	"errors"
	"time"
)

// BankCreditorID is the sentinel creditor identifier for debts owed to the
// bank. The bank is never materialized as a Player.
const BankCreditorID = "bank"

// DebtRecord is a directed debt from a debtor player to a creditor (another
// player or the bank). A record whose remaining amount reaches zero is deleted
// from the ledger, never archived.
type DebtRecord struct {
	ID              string    `json:"id"`
	DebtorID        string    `json:"debtor_id"`
	CreditorID      string    `json:"creditor_id"`
	OriginalAmount  float64   `json:"original_amount"`
	RemainingAmount float64   `json:"remaining_amount"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate checks that all debt record fields are valid.
func (d *DebtRecord) Validate() error {
	if d.ID == "" {
		return errors.New("debt ID must not be empty")
	}
	if d.DebtorID == "" {
		return errors.New("debtor ID must not be empty")
	}
	if d.CreditorID == "" {
		return errors.New("creditor ID must not be empty")
	}
	if d.DebtorID == d.CreditorID {
		return errors.New("debtor and creditor must differ")
	}
	if d.OriginalAmount <= 0 {
		return errors.New("original amount must be positive")
	}
	if d.RemainingAmount <= 0 || d.RemainingAmount > d.OriginalAmount {
		return errors.New("remaining amount must be in (0, original]")
	}
	if d.UpdatedAt.Before(d.CreatedAt) {
		return errors.New("updated at must not precede created at")
	}
	return nil
}
