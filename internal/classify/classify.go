// Package classify implements the receipt-type classifier of §4.M1: three
// passes, chain signal, layout marker, then structural fingerprinting. The
// first two answer with High confidence, the fingerprint pass with Medium
// or Low.
package classify

import (
	"strings"

	"github.com/facturaIA/receipt-extraction-core/internal/model"
	"github.com/facturaIA/receipt-extraction-core/internal/patterns"
)

// signature pairs a receipt type with the chain names and layout markers
// that route to it, grounded on the chain/vendor dictionary in
// original_source/src/receipt_classifier.py's _SIGNATURES.
type signature struct {
	receiptType model.ReceiptType
	chains      []string
	markers     []string
}

var signatures = []signature{
	{
		receiptType: model.PharmacyColumn,
		chains: []string{
			"MERCURY DRUG", "ROSE PHARMACY", "GENERIKA", "WATSONS",
			"SOUTH STAR DRUG", "THE GENERICS PHARMACY", "FARMACIA", "BOTICA",
		},
		markers: []string{
			"PA#", "LESS: BP DISC", "LESS: SC DISC", "PHILLOGIX",
			"VAT REG TIN: 000-388",
		},
	},
	{
		receiptType: model.Supermarket,
		chains: []string{
			"SM SUPERMARKET", "SM SAVEMORE", "PUREGOLD", "S&R MEMBERSHIP",
			"SHOPWISE", "ROBINSONS SUPERMARKET", "WALTER MART",
			"PRICE SMART", "LANDERS SUPERSTORE",
		},
		markers: []string{
			"ITEMS PURCHAS", "VINCOR NIXDORF", "MEMBER NANE", "MEMBER NAME",
		},
	},
	{
		receiptType: model.FastFood,
		chains: []string{
			"JOLLIBEE", "MCDONALD'S", "CHOWKING", "MANG INASAL", "GREENWICH",
			"RED RIBBON", "BURGER KING", "PIZZA HUT", "KFC", "SUBWAY",
			"WENDY'S", "POPEYES", "SHAKEYS", "KENNY ROGER'S",
		},
		markers: []string{
			"ORDER#", "TABLE#", "DINE IN", "TAKE OUT", "DRIVE THRU", "CASHIER:",
		},
	},
	{
		receiptType: model.DepartmentStore,
		chains: []string{
			"SM DEPARTMENT", "NATIONAL BOOKSTORE", "LANDMARK", "RUSTAN'S",
			"METRO GAISANO", "ROBINSONS DEPARTMENT", "KULTURA",
		},
		markers: []string{
			"ITEM CODE:", "DESCRIPTION QTY PRICE",
		},
	},
}

// Classify returns the layout family and the classifier's confidence in it,
// per §4.M1's three-pass ordering.
func Classify(lines []string) (model.ReceiptType, model.Confidence) {
	upper := make([]string, len(lines))
	for i, l := range lines {
		upper[i] = strings.ToUpper(l)
	}

	// Pass 1: chain signal.
	for _, sig := range signatures {
		for _, chain := range sig.chains {
			for _, l := range upper {
				if strings.Contains(l, chain) {
					return sig.receiptType, model.High
				}
			}
		}
	}

	// Pass 2: layout marker. "** N item(s) **" and a lone "PHP" header are
	// structural, not literal substrings — checked via patterns instead.
	for _, sig := range signatures {
		for _, marker := range sig.markers {
			for _, l := range upper {
				if strings.Contains(l, marker) {
					return sig.receiptType, model.High
				}
			}
		}
	}
	for _, l := range lines {
		if patterns.ItemCountLine.MatchString(l) {
			return model.Supermarket, model.High
		}
		if strings.TrimSpace(strings.ToUpper(l)) == "PHP" {
			return model.Supermarket, model.High
		}
	}

	// Pass 3: structural fingerprinting.
	total := len(lines)
	if total == 0 {
		return model.Generic, model.Low
	}
	standalone, inline := 0, 0
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		isStandalone := patterns.PriceOnly.MatchString(trimmed)
		if isStandalone {
			standalone++
			continue
		}
		if patterns.PriceInline.MatchString(trimmed) {
			inline++
		}
	}
	standaloneRatio := float64(standalone) / float64(total)
	inlineRatio := float64(inline) / float64(total)

	if standaloneRatio >= 0.12 {
		return model.PharmacyColumn, model.Medium
	}
	if inlineRatio >= 0.18 {
		return model.InlinePrice, model.Medium
	}
	return model.Generic, model.Low
}
