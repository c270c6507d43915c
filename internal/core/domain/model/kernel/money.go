package kernel

import "math"

// RoundMoney rounds a monetary amount to two decimals using round-half-up,
// so 1.005 becomes 1.01. Every pricing computation in the engine passes
// through this function before an amount is persisted or compared, which
// keeps order totals, discounts and payouts consistent to the cent.
//
// Amounts in this domain are never negative; behavior for negative input
// is unspecified.
func RoundMoney(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}
