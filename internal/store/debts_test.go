package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yichenq/gamebank/internal/models"
)

func TestAddDebt(t *testing.T) {
	s := newTestStore(t)

	rec, ok := s.AddDebt("p1", "p2", 500)
	require.True(t, ok)
	assert.Equal(t, 500.0, rec.OriginalAmount)
	assert.Equal(t, 500.0, rec.RemainingAmount)
	require.NoError(t, rec.Validate())

	bankRec, ok := s.AddDebt("p1", models.BankCreditorID, 200)
	require.True(t, ok)
	assert.Equal(t, models.BankCreditorID, bankRec.CreditorID)

	assert.Len(t, s.Debts(), 2)
}

func TestAddDebtValidation(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name     string
		debtor   string
		creditor string
		amount   float64
	}{
		{"zero amount", "p1", "p2", 0},
		{"negative amount", "p1", "p2", -100},
		{"self debt", "p1", "p1", 100},
		{"empty debtor", "", "p2", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := s.AddDebt(tt.debtor, tt.creditor, tt.amount)
			assert.False(t, ok)
		})
	}
	assert.Empty(t, s.Debts())
}

func TestRepayPartial(t *testing.T) {
	s := newTestStore(t)

	rec, _ := s.AddDebt("p1", "p2", 500)
	require.True(t, s.Repay(rec.ID, 200))

	debts := s.Debts()
	require.Len(t, debts, 1)
	assert.Equal(t, 300.0, debts[0].RemainingAmount)
	assert.Equal(t, 500.0, debts[0].OriginalAmount)
	assert.True(t, debts[0].UpdatedAt.After(rec.UpdatedAt))
}

func TestRepayExactDeletesRecord(t *testing.T) {
	s := newTestStore(t)

	rec, _ := s.AddDebt("p1", "p2", 500)
	require.True(t, s.Repay(rec.ID, 500))
	assert.Empty(t, s.Debts(), "a fully repaid debt is deleted, not archived")
}

func TestRepayOverpaymentClamps(t *testing.T) {
	s := newTestStore(t)

	rec, _ := s.AddDebt("p1", "p2", 500)
	require.True(t, s.Repay(rec.ID, 9999))
	assert.Empty(t, s.Debts())
}

func TestRepayFull(t *testing.T) {
	s := newTestStore(t)

	rec, _ := s.AddDebt("p1", models.BankCreditorID, 500)
	require.True(t, s.RepayFull(rec.ID))
	assert.Empty(t, s.Debts())

	assert.False(t, s.RepayFull(rec.ID), "repaying a removed debt fails")
}

func TestRepayInvalidInput(t *testing.T) {
	s := newTestStore(t)

	rec, _ := s.AddDebt("p1", "p2", 500)
	assert.False(t, s.Repay(rec.ID, 0))
	assert.False(t, s.Repay(rec.ID, -50))
	assert.False(t, s.Repay("no-such-debt", 100))

	debts := s.Debts()
	require.Len(t, debts, 1)
	assert.Equal(t, 500.0, debts[0].RemainingAmount)
}

func TestRemoveDebtIgnoresBalance(t *testing.T) {
	s := newTestStore(t)

	rec, _ := s.AddDebt("p1", "p2", 500)
	require.True(t, s.RemoveDebt(rec.ID))
	assert.Empty(t, s.Debts())
	assert.False(t, s.RemoveDebt(rec.ID))
}

func TestDebtsFor(t *testing.T) {
	s := newTestStore(t)

	a, _ := s.AddDebt("p1", "p2", 100)
	b, _ := s.AddDebt("p2", "p1", 200)
	c, _ := s.AddDebt("p1", models.BankCreditorID, 300)
	_, _ = s.AddDebt("p3", "p4", 400)

	asDebtor, asCreditor := s.DebtsFor("p1")
	require.Len(t, asDebtor, 2)
	assert.Equal(t, a.ID, asDebtor[0].ID)
	assert.Equal(t, c.ID, asDebtor[1].ID)
	require.Len(t, asCreditor, 1)
	assert.Equal(t, b.ID, asCreditor[0].ID)
}

func TestDebtLifecycle(t *testing.T) {
	s := newTestStore(t)

	rec, ok := s.AddDebt("p1", "p2", 500)
	require.True(t, ok)
	require.True(t, s.Repay(rec.ID, 500))

	for _, d := range s.Debts() {
		assert.NotEqual(t, rec.ID, d.ID)
	}
}
