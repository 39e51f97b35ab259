package store

import (
	"math"

	"github.com/yichenq/gamebank/internal/models"
)

// AddDebt creates a new debt record with remaining equal to the original
// amount. The creditor may be a player ID or the bank sentinel. Fails for
// non-positive amounts or when debtor and creditor are the same party.
func (s *Store) AddDebt(debtorID, creditorID string, amount float64) (models.DebtRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if debtorID == "" || creditorID == "" || debtorID == creditorID {
		return models.DebtRecord{}, false
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return models.DebtRecord{}, false
	}

	now := s.now()
	rec := models.DebtRecord{
		ID:              s.newID(),
		DebtorID:        debtorID,
		CreditorID:      creditorID,
		OriginalAmount:  amount,
		RemainingAmount: amount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.state.Debts = append(s.state.Debts, rec)
	return rec, true
}

// Repay pays amount off a debt. Over-repayment clamps to zero and behaves
// like exact repayment: a debt whose remaining amount reaches zero is
// deleted, not archived. Unknown IDs and non-positive amounts are no-ops.
func (s *Store) Repay(debtID string, amount float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if math.IsNaN(amount) || amount <= 0 {
		return false
	}
	return s.repayLocked(debtID, amount)
}

// RepayFull repays the entire remaining amount, removing the record.
func (s *Store) RepayFull(debtID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Debts {
		if s.state.Debts[i].ID == debtID {
			return s.repayLocked(debtID, s.state.Debts[i].RemainingAmount)
		}
	}
	return false
}

// RemoveDebt deletes a record unconditionally, regardless of its remaining
// balance. A destructive override, distinct from repayment.
func (s *Store) RemoveDebt(debtID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteDebtLocked(debtID)
}

// Debts returns the full debt ledger in insertion order.
func (s *Store) Debts() []models.DebtRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DebtRecord, len(s.state.Debts))
	copy(out, s.state.Debts)
	return out
}

// DebtsFor returns the records where the player is debtor and those where
// the player is creditor, each in insertion order.
func (s *Store) DebtsFor(playerID string) (asDebtor, asCreditor []models.DebtRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.state.Debts {
		switch playerID {
		case d.DebtorID:
			asDebtor = append(asDebtor, d)
		case d.CreditorID:
			asCreditor = append(asCreditor, d)
		}
	}
	return asDebtor, asCreditor
}

func (s *Store) repayLocked(debtID string, amount float64) bool {
	for i := range s.state.Debts {
		if s.state.Debts[i].ID != debtID {
			continue
		}

		remaining := s.state.Debts[i].RemainingAmount - amount
		if remaining <= 0 {
			return s.deleteDebtLocked(debtID)
		}
		s.state.Debts[i].RemainingAmount = remaining
		s.state.Debts[i].UpdatedAt = s.now()
		return true
	}
	return false
}

func (s *Store) deleteDebtLocked(debtID string) bool {
	for i := range s.state.Debts {
		if s.state.Debts[i].ID == debtID {
			s.state.Debts = append(s.state.Debts[:i], s.state.Debts[i+1:]...)
			return true
		}
	}
	return false
}
