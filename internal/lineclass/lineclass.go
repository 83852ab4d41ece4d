// Package lineclass implements the per-line predicates (L2) that every
// item extractor builds on: is_name, is_barcode, is_price, is_taxed_price,
// is_qty_line, and the narrow OCR price repair described in §4.L2.
package lineclass

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/facturaIA/receipt-extraction-core/internal/patterns"
)

// IsBarcode reports whether s is a bare 6-14 digit SKU.
func IsBarcode(s string) bool {
	return patterns.Barcode.MatchString(strings.TrimSpace(s))
}

// IsTaxedPrice reports whether s is a price with a taxability suffix.
func IsTaxedPrice(s string) bool {
	return patterns.TaxedPrice.MatchString(strings.TrimSpace(s))
}

// IsQtyLine reports whether s matches "N @ P" / "N x P".
func IsQtyLine(s string) bool {
	return patterns.QtyLine.MatchString(strings.TrimSpace(s))
}

// IsSeparator reports whether s is a dashed/starred/equals rule line.
func IsSeparator(s string) bool {
	return patterns.Separator.MatchString(strings.TrimSpace(s))
}

// ParseQtyLine parses "3 @ 36.00" into (qty, unit_price).
func ParseQtyLine(s string) (qty int, unitPrice decimal.Decimal, ok bool) {
	m := patterns.QtyLine.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, decimal.Decimal{}, false
	}
	q, err := strconv.Atoi(m[1])
	if err != nil || q <= 0 {
		return 0, decimal.Decimal{}, false
	}
	up, err := parseAmount(m[2])
	if err != nil {
		return 0, decimal.Decimal{}, false
	}
	return q, up, true
}

// repairDigits applies the narrow OCR price repair from §4.L2: O→0, I→1,
// L→1, and a trailing misread "1" (thermal print T) becomes "T" only after
// a NNN.NN shaped prefix. This is applied to price-shaped strings only,
// never to preserved product names.
func repairDigits(s string) string {
	r := []rune(s)
	for i, c := range r {
		switch c {
		case 'O', 'o':
			r[i] = '0'
		case 'I', 'i', 'L', 'l':
			r[i] = '1'
		}
	}
	s = string(r)
	if len(s) > 0 && s[len(s)-1] == '1' {
		prefix := s[:len(s)-1]
		dot := strings.LastIndexByte(prefix, '.')
		if dot >= 0 && len(prefix)-dot == 3 &&
			(patterns.PriceOnly.MatchString(prefix) || looksLikeBarePrice(prefix)) {
			s = prefix + "T"
		}
	}
	return s
}

func looksLikeBarePrice(s string) bool {
	var dot bool
	digits := 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
			if dot {
				if digits > 2 {
					return false
				}
			}
		case c == '.':
			if dot {
				return false
			}
			dot = true
		case c == ',':
		default:
			return false
		}
	}
	return dot && digits > 0
}

// PriceOf returns the numeric value of a price-only line, rejecting
// QTY_AT_PRICE matches first, per §4.L2.
func PriceOf(s string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(s)
	if patterns.QtyAtPrice.MatchString(trimmed) {
		return decimal.Decimal{}, false
	}
	repaired := repairDigits(trimmed)
	m := patterns.PriceOnly.FindStringSubmatch(repaired)
	if m == nil {
		return decimal.Decimal{}, false
	}
	amt, err := parseAmount(m[1])
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amt, true
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

// IsName is the central predicate of §4.L2: true if s should be treated as
// an item-name candidate line. pharmacyRescue enables the pharmacy-only
// product-rescue clause (measurement unit / product code override of a
// financial-keyword match, gated by the bottom-25%-of-receipt heuristic).
func IsName(s string, lineIndex, totalLines int, pharmacyRescue bool) bool {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 2 {
		return false
	}
	if _, ok := PriceOf(trimmed); ok {
		return false
	}
	if IsBarcode(trimmed) {
		return false
	}
	if len(trimmed) <= 8 && patterns.AddressFragment.MatchString(trimmed) {
		return false
	}
	if IsQtyLine(trimmed) {
		return false
	}
	if patterns.PaModeA.MatchString(trimmed) || patterns.PaModeB.MatchString(trimmed) || patterns.PaModeC.MatchString(trimmed) {
		return false
	}
	if IsSeparator(trimmed) {
		return false
	}
	if isPureDigits(trimmed) {
		return false
	}
	if patterns.FinancialLine.MatchString(trimmed) {
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
	if patterns.VatTaxDiscPercent.MatchString(trimmed) {
		return false
	}

	normalized := patterns.Normalize(trimmed)
	if patterns.SkipItem.MatchString(normalized) {
		if pharmacyRescue && (patterns.ProductUnits.MatchString(trimmed) || patterns.ProductCode.MatchString(trimmed)) {
			if totalLines > 0 && float64(lineIndex)/float64(totalLines) <= 0.75 {
				return true
			}
		}
		return false
	}
	return true
}

func isPureDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
