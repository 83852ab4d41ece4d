package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/facturaIA/receipt-extraction-core/internal/lineclass"
	"github.com/facturaIA/receipt-extraction-core/internal/model"
	"github.com/facturaIA/receipt-extraction-core/internal/patterns"
)

// zone computes [zoneStart, zoneEnd) per §4.M2 step 1. zoneEnd is the first
// zone-end keyword line, or len(lines) if none. zoneStart is the line after
// a layout-specific start marker (pharmacy: PA#..., supermarket: a lone
// PHP line), or 0 without one. For pharmacy, when preserved content lines
// precede the marker, zoneStart is walked backwards over up to 6 of them.
func zone(lines []string, rt model.ReceiptType) (start, end int) {
	end = len(lines)
	for i, l := range lines {
		if patterns.ZoneEnd.MatchString(strings.TrimSpace(l)) {
			end = i
			break
		}
	}

	switch rt {
	case model.PharmacyColumn:
		for i, l := range lines {
			if patterns.PaModeA.MatchString(strings.TrimSpace(l)) ||
				patterns.PaModeB.MatchString(strings.TrimSpace(l)) ||
				patterns.PaModeC.MatchString(strings.TrimSpace(l)) {
				start = i + 1
				back := i
				for k := 0; k < 6 && back > 0; k++ {
					back--
					if !isPreservedContent(lines[back]) {
						back++
						break
					}
				}
				if back == i {
					back = start
				}
				return back, end
			}
		}
	case model.Supermarket:
		for i, l := range lines {
			if strings.TrimSpace(strings.ToUpper(l)) == "PHP" {
				return i + 1, end
			}
		}
	}
	return 0, end
}

func isPreservedContent(l string) bool {
	trimmed := strings.TrimSpace(l)
	if len(trimmed) < 3 {
		return false
	}
	if lineclass.IsSeparator(trimmed) {
		return false
	}
	if patterns.MercuryJunk.MatchString(trimmed) {
		return false
	}
	if patterns.PaymentMethod.MatchString(trimmed) {
		return false
	}
	if patterns.MetadataJunk.MatchString(trimmed) {
		return false
	}
	return true
}

// skipPrices collects the numeric values adjacent to a definitive financial
// keyword (§4.M2 step 2), excluding any value that also appears as a taxed
// price anywhere on the receipt.
func skipPrices(lines []string) map[string]bool {
	skip := make(map[string]bool)
	taxed := make(map[string]bool)

	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if patterns.TaxedPrice.MatchString(trimmed) {
			if amt, ok := lineclass.PriceOf(trimmed); ok {
				taxed[amt.StringFixed(2)] = true
			}
		}
	}

	for i, l := range lines {
		if !patterns.DefinitiveFinancial.MatchString(strings.TrimSpace(l)) {
			continue
		}
		if amt, ok := priceNear(lines, i); ok {
			skip[amt.StringFixed(2)] = true
		}
	}

	for k := range taxed {
		delete(skip, k)
	}
	return skip
}

// priceNear looks for a price on the keyword line itself (split-line
// amount after the label) or on the next line.
func priceNear(lines []string, i int) (decimal.Decimal, bool) {
	if amt, ok := lineclass.PriceOf(lines[i]); ok {
		return amt, ok
	}
	if m := patterns.TotalPatternsInline; len(m) > 0 {
		for _, re := range m {
			if sub := re.FindStringSubmatch(lines[i]); sub != nil {
				if amt, err := decimal.NewFromString(strings.ReplaceAll(sub[1], ",", "")); err == nil {
					return amt, true
				}
			}
		}
	}
	if i+1 < len(lines) {
		if amt, ok := lineclass.PriceOf(lines[i+1]); ok {
			return amt, true
		}
	}
	return decimal.Decimal{}, false
}

func isSkipped(skip map[string]bool, amt decimal.Decimal) bool {
	return skip[amt.StringFixed(2)]
}
