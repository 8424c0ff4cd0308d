package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// WeightEpsilon is the tolerance applied when comparing summed weights
// against the fully-allocated target of 1.
var WeightEpsilon = decimal.New(1, -9)

// AllocationEntry is one target position, keyed by normalized ticker.
// Weight is a fraction of total capital in (0, 1].
type AllocationEntry struct {
	Ticker string
	Weight decimal.Decimal
}

// PositionDocument is the per-user persisted record in the remote document
// store. Other fields of the user's document are preserved on write (merge
// semantics), so only positions live here.
type PositionDocument struct {
	Positions map[string]AllocationEntry
}

func NormalizeTicker(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// SumWeights totals the given entries. Used both for the store's running
// total and for re-deriving the total after a trusted snapshot load.
func SumWeights(entries map[string]AllocationEntry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Weight)
	}
	return total
}

// IsFullyAllocated reports whether total is 1 within WeightEpsilon.
func IsFullyAllocated(total decimal.Decimal) bool {
	return total.Sub(decimal.NewFromInt(1)).Abs().LessThanOrEqual(WeightEpsilon)
}

func CopyEntries(entries map[string]AllocationEntry) map[string]AllocationEntry {
	out := make(map[string]AllocationEntry, len(entries))
	for ticker, entry := range entries {
		out[ticker] = entry
	}
	return out
}
