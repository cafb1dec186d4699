package core

import (
	"github.com/shopspring/decimal"
)

const monetaryPrecision int32 = 4 // 4 decimal places for permit values (0.0001 precision)

// BidExceeds returns true if the bid price strictly exceeds the reference
// price. Uses decimal arithmetic with monetaryPrecision to avoid
// floating-point errors. Both the listing floor and the current leading bid
// are exclusive bounds, so equality is never enough.
func BidExceeds(bidPrice, reference float64) bool {
	bidPriceDecimal := decimal.NewFromFloat(bidPrice).Round(monetaryPrecision)
	referenceDecimal := decimal.NewFromFloat(reference).Round(monetaryPrecision)

	return bidPriceDecimal.GreaterThan(referenceDecimal)
}
