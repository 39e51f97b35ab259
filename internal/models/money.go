package models

import "github.com/shopspring/decimal"

// Round2 rounds a currency amount to 2 decimal places. Decimal arithmetic
// avoids the float drift of round(x*100)/100 on amounts like 1.005.
func Round2(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}
