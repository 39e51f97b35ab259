package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yichenq/gamebank/internal/models"
)

func TestAdjustHoldingClampsAtZero(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 5))
	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, -100))

	got, _ := s.Player(p.ID)
	assert.Zero(t, got.Holding(models.KindProperty))
}

func TestAdjustHoldingClampedSellRecordsRequestedMagnitude(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 5))
	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, -100))

	// The clamp only limits the applied delta; the record keeps the
	// requested 100, which flows into realized-profit revenue as-is.
	records := s.TradeRecordsFor(p.ID)
	require.Len(t, records, 2)
	assert.Equal(t, models.DirectionSell, records[1].Direction)
	assert.Equal(t, 100, records[1].Quantity)
	assert.Equal(t, models.InitialStockPrice, records[1].Price)
}

func TestAdjustHoldingRecordsTradesAtCurrentPrice(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.SetPrice(models.KindEducation, 130))
	require.True(t, s.AdjustHolding(p.ID, models.KindEducation, 4))
	require.True(t, s.SetPrice(models.KindEducation, 150))
	require.True(t, s.AdjustHolding(p.ID, models.KindEducation, -2))

	records := s.TradeRecordsFor(p.ID)
	require.Len(t, records, 2)

	assert.Equal(t, models.DirectionBuy, records[0].Direction)
	assert.Equal(t, 4, records[0].Quantity)
	assert.Equal(t, 130.0, records[0].Price, "trade price is the price at call time")

	assert.Equal(t, models.DirectionSell, records[1].Direction)
	assert.Equal(t, 2, records[1].Quantity)
	assert.Equal(t, 150.0, records[1].Price)
}

func TestAdjustHoldingZeroDeltaRecordsNothing(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 0))
	assert.Empty(t, s.TradeRecordsFor(p.ID))
}

func TestAdjustHoldingUnknownPlayer(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.AdjustHolding("no-such-player", models.KindProperty, 3))
}

func TestSellForCash(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 10))
	require.True(t, s.SetPrice(models.KindProperty, 110.5))

	proceeds := s.SellForCash(p.ID, models.KindProperty, 4)
	assert.Equal(t, 442.0, proceeds)

	got, _ := s.Player(p.ID)
	assert.Equal(t, 6, got.Holding(models.KindProperty))
	assert.Equal(t, 442.0, got.Cash)
}

func TestSellForCashInsufficientHoldingIsNoop(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 3))
	before := s.TradeRecordsFor(p.ID)

	assert.Zero(t, s.SellForCash(p.ID, models.KindProperty, 4))
	assert.Zero(t, s.SellForCash(p.ID, models.KindProperty, 0))
	assert.Zero(t, s.SellForCash("no-such-player", models.KindProperty, 1))

	got, _ := s.Player(p.ID)
	assert.Equal(t, 3, got.Holding(models.KindProperty))
	assert.Zero(t, got.Cash)
	assert.Len(t, s.TradeRecordsFor(p.ID), len(before))
}

func TestCashOutCeilingOvershoot(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	// Property 100 × 3 units = 300 of value; a 250 target sells all three
	// units (ceil(250/100) = 3) and credits 300, not 250.
	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 3))

	require.True(t, s.CashOut(p.ID, 250))

	got, _ := s.Player(p.ID)
	assert.Zero(t, got.Holding(models.KindProperty))
	assert.Equal(t, 300.0, got.Cash)
}

func TestCashOutPropertyFirstThenEducation(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 2))
	require.True(t, s.AdjustHolding(p.ID, models.KindEducation, 5))

	// Target 350 at 100/100: both property units go first (200), then
	// ceil(150/100) = 2 education units. Raised 400.
	require.True(t, s.CashOut(p.ID, 350))

	got, _ := s.Player(p.ID)
	assert.Zero(t, got.Holding(models.KindProperty))
	assert.Equal(t, 3, got.Holding(models.KindEducation))
	assert.Equal(t, 400.0, got.Cash)
}

func TestCashOutInsufficientValueLeavesStateUnchanged(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 3))
	recordsBefore := len(s.TradeRecordsFor(p.ID))

	assert.False(t, s.CashOut(p.ID, 301))
	assert.False(t, s.CashOut(p.ID, 0))
	assert.False(t, s.CashOut(p.ID, -10))
	assert.False(t, s.CashOut("no-such-player", 100))

	got, _ := s.Player(p.ID)
	assert.Equal(t, 3, got.Holding(models.KindProperty))
	assert.Zero(t, got.Cash)
	assert.Len(t, s.TradeRecordsFor(p.ID), recordsBefore)
}

func TestCashOutExactTarget(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 3))
	require.True(t, s.CashOut(p.ID, 300))

	got, _ := s.Player(p.ID)
	assert.Equal(t, 300.0, got.Cash)
}

func TestTradeByAmountSellCreditsNominalAmount(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 10))
	require.True(t, s.SetPrice(models.KindProperty, 103))

	// 250/103 rounds to 2 units (value 206); the nominal 250 is credited and
	// the 44 rounding gain is reported, not ledgered.
	units, diff, ok := s.TradeByAmount(p.ID, models.KindProperty, models.DirectionSell, 250)
	require.True(t, ok)
	assert.Equal(t, 2, units)
	assert.Equal(t, 44.0, diff)

	got, _ := s.Player(p.ID)
	assert.Equal(t, 8, got.Holding(models.KindProperty))
	assert.Equal(t, 250.0, got.Cash)
}

func TestTradeByAmountSellValidatesHoldingValue(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 2))

	_, _, ok := s.TradeByAmount(p.ID, models.KindProperty, models.DirectionSell, 201)
	assert.False(t, ok, "sell target above holding value must fail")

	_, _, ok = s.TradeByAmount(p.ID, models.KindEducation, models.DirectionSell, 50)
	assert.False(t, ok, "sell with no holding must fail")
}

func TestTradeByAmountBuyDoesNotDebitCash(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustCash(p.ID, 1000))

	units, diff, ok := s.TradeByAmount(p.ID, models.KindEducation, models.DirectionBuy, 250)
	require.True(t, ok)
	assert.Equal(t, 3, units) // round(250/100)
	assert.Equal(t, -50.0, diff)

	got, _ := s.Player(p.ID)
	assert.Equal(t, 3, got.Holding(models.KindEducation))
	assert.Equal(t, 1000.0, got.Cash, "buys must not debit cash")
}

func TestTradeByAmountBuyTooSmallFails(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	_, _, ok := s.TradeByAmount(p.ID, models.KindProperty, models.DirectionBuy, 40)
	assert.False(t, ok, "round(40/100) = 0 units")
}

func TestCalculateRealizedProfitFIFO(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	// buy 10@100, buy 10@120, sell 15@150:
	// cost = 10×100 + 5×120 = 1600, revenue = 15×150 = 2250, profit = 650.
	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 10))
	require.True(t, s.SetPrice(models.KindProperty, 120))
	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 10))
	require.True(t, s.SetPrice(models.KindProperty, 150))
	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, -15))

	assert.Equal(t, 650.0, s.CalculateRealizedProfit(p.ID))

	// Pure function of the trade log: repeated calls agree.
	assert.Equal(t, 650.0, s.CalculateRealizedProfit(p.ID))
}

func TestCalculateRealizedProfitUnmatchedSells(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	// Sells beyond recorded buys contribute revenue with no offsetting cost,
	// e.g. units handed out at setup and sold without a recorded buy.
	require.True(t, s.SetPrice(models.KindEducation, 200))
	require.True(t, s.AdjustHolding(p.ID, models.KindEducation, -3))

	assert.Equal(t, 600.0, s.CalculateRealizedProfit(p.ID))
}

func TestCalculateRealizedProfitPerKindIndependence(t *testing.T) {
	s := newTestStore(t)
	p := firstPlayer(t, s)

	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, 2))
	require.True(t, s.SetPrice(models.KindProperty, 150))
	require.True(t, s.AdjustHolding(p.ID, models.KindProperty, -2)) // +100

	require.True(t, s.AdjustHolding(p.ID, models.KindEducation, 2))
	require.True(t, s.SetPrice(models.KindEducation, 60))
	require.True(t, s.AdjustHolding(p.ID, models.KindEducation, -2)) // −80

	assert.Equal(t, 20.0, s.CalculateRealizedProfit(p.ID))
}

func TestCalculateRealizedProfitNoTrades(t *testing.T) {
	s := newTestStore(t)
	assert.Zero(t, s.CalculateRealizedProfit("no-such-player"))
}
