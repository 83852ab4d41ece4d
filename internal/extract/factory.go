package extract

import (
	"github.com/facturaIA/receipt-extraction-core/internal/model"
)

// ItemExtractor turns a receipt's raw lines into its item list. Each
// receipt type has exactly one, selected once per extraction — there is no
// dynamic-dispatch hot path or per-type singleton cache to maintain (§9).
type ItemExtractor func(lines []string) []model.Item

// Factory returns the item extractor for a receipt type, falling back to
// Generic for any type it does not recognize.
func Factory(rt model.ReceiptType) ItemExtractor {
	switch rt {
	case model.PharmacyColumn:
		return Pharmacy
	case model.Supermarket:
		return Supermarket
	case model.FastFood:
		return FastFood
	case model.DepartmentStore:
		return DepartmentStore
	case model.InlinePrice:
		return InlinePrice
	default:
		return Generic
	}
}
