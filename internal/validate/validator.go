// Package validate implements the T1 post-extraction cross-checks: an
// item-sum-vs-total tolerance flag, and recording the receipt's own stated
// item count on the record.
package validate

import (
	"github.com/shopspring/decimal"

	"github.com/facturaIA/receipt-extraction-core/internal/model"
)

// Validator holds the loose tolerance used by the item-sum-vs-total check.
// Discounts of 5-30% are normal on Philippine retail receipts, so the
// tolerance is deliberately loose: it flags gross parsing errors only, not
// ordinary promos.
type Validator struct {
	tolerance decimal.Decimal
}

// NewValidator returns a Validator with the standard 1.5x tolerance.
func NewValidator() *Validator {
	return &Validator{tolerance: decimal.NewFromFloat(1.5)}
}

// Validate runs the item-sum check and records statedCount on the record.
// The stated-count cap itself is already applied inside the item
// extractor; this only records the value that governed it.
func (v *Validator) Validate(r model.Record, statedCount *int) model.Record {
	r.StatedItemCount = statedCount

	if r.TotalAmount == nil {
		return r
	}
	sum := decimal.Zero
	for _, it := range r.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	if sum.GreaterThan(r.TotalAmount.Mul(v.tolerance)) {
		warning := "item_sum_exceeds_total"
		r.ExtractionWarning = &warning
	}
	return r
}
