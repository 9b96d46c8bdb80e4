package velocity

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// Normalize converts a raw purchase (native quantity plus unit metadata) into the
// product's canonical consumption unit, so different pack sizes of the same
// product contribute comparably: "Eggs 12ct" x2 and "Eggs 18ct" x1 both reduce to
// egg-count. If the unit metadata is missing the purchase counts as a single
// normalized unit (a purchase event, not a measured quantity). That degrades
// precision but never fails; there are no error conditions here.
func Normalize(quantity decimal.Decimal, unitType string, unitQuantity decimal.Decimal) decimal.Decimal {
	if unitType == "" || unitQuantity.LessThanOrEqual(decimal.Zero) {
		return one
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		// Invalid quantities are rejected at the write boundary; degrade rather than fail.
		return one
	}
	return quantity.Mul(unitQuantity)
}
