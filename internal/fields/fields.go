// Package fields implements the layout-agnostic field extractors of §4.L3:
// store_name, invoice_number, date, time, total, vat, tin, and the
// stated-item-count probes. Every extractor in internal/extract shares
// these — per §8 invariant 10, they never depend on which item extractor
// is running.
package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/facturaIA/receipt-extraction-core/internal/lineclass"
	"github.com/facturaIA/receipt-extraction-core/internal/patterns"
)

// StoreName returns the first line, within the first 8, that is at least 3
// chars, not all digits, not a separator, and not price-shaped.
func StoreName(lines []string) (string, bool) {
	limit := len(lines)
	if limit > 8 {
		limit = 8
	}
	for _, l := range lines[:limit] {
		s := strings.TrimSpace(l)
		if len(s) < 3 {
			continue
		}
		if isPureDigits(s) {
			continue
		}
		if lineclass.IsSeparator(s) {
			continue
		}
		if _, ok := lineclass.PriceOf(s); ok {
			continue
		}
		return s, true
	}
	return "", false
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

// InvoiceNumber runs the two-pass scan of §4.L3: non-TXN patterns first,
// TXN/TRANSACTION/CONTROL patterns last.
func InvoiceNumber(lines []string) (string, bool) {
	for _, re := range patterns.InvoicePatternsPrimary {
		for _, l := range lines {
			if m := re.FindStringSubmatch(l); m != nil && len(m[1]) >= 4 {
				return m[1], true
			}
		}
	}
	for _, re := range patterns.InvoicePatternsTxn {
		for _, l := range lines {
			if m := re.FindStringSubmatch(l); m != nil && len(m[1]) >= 4 {
				return m[1], true
			}
		}
	}
	return "", false
}

// Date runs the four rounds of §4.L3 plus the TXN-embedded recovery
// (round 5), rejecting range-start matches (followed by '-').
func Date(lines []string) (string, bool) {
	isShort := func(l string) bool { return len(strings.TrimSpace(l)) <= 25 }
	hasContext := func(l string) bool { return patterns.DateContextLabel.MatchString(l) }

	// Round 1: standalone/short lines, 4-digit then 2-digit year patterns.
	var round1 []*regexp.Regexp
	round1 = append(round1, patterns.DateNumeric4...)
	round1 = append(round1, patterns.DateWritten4...)
	round1 = append(round1, patterns.DateNumeric2...)
	round1 = append(round1, patterns.DateWritten2...)
	for _, re := range round1 {
		for _, l := range lines {
			if !isShort(l) {
				continue
			}
			if v, ok := matchDate(re, l); ok {
				return v, true
			}
		}
	}

	// Round 2: any line, same pattern groups.
	for _, re := range round1 {
		for _, l := range lines {
			if v, ok := matchDate(re, l); ok {
				return v, true
			}
		}
	}

	// Round 3: context-labelled or short lines, month-year-only / ordinal.
	var round3 []*regexp.Regexp
	round3 = append(round3, patterns.DateMonthYearOnly...)
	round3 = append(round3, patterns.DateOrdinal...)
	for _, re := range round3 {
		for _, l := range lines {
			if !hasContext(l) && !isShort(l) {
				continue
			}
			if v, ok := matchDate(re, l); ok {
				return v, true
			}
		}
	}

	// Round 4: context-labelled only, bare day/month.
	for _, re := range patterns.DateBareDayMonth {
		for _, l := range lines {
			if !hasContext(l) {
				continue
			}
			if v, ok := matchDate(re, l); ok {
				return v, true
			}
		}
	}

	// Round 5: TXN-embedded date recovery (Mercury Drug).
	for _, l := range lines {
		if v, ok := txnDate(l); ok {
			return v, true
		}
	}

	return "", false
}

func matchDate(re *regexp.Regexp, line string) (string, bool) {
	loc := re.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	if loc[1] < len(line) && line[loc[1]] == '-' {
		return "", false
	}
	if loc[0] > 0 {
		prev := line[loc[0]-1]
		if prev >= '0' && prev <= '9' {
			return "", false
		}
	}
	return line[loc[0]:loc[1]], true
}

// txnDate recovers MM-DD-YY from a TXN# line under the three OCR merge
// spacing variants of §4.L3.
func txnDate(line string) (string, bool) {
	if !strings.Contains(strings.ToUpper(line), "TXN") {
		return "", false
	}
	if m := patterns.TxnDateSquashed.FindStringSubmatch(line); m != nil {
		if v, ok := validMMDDYY(m[1], m[2], m[3][len(m[3])-2:]); ok {
			return v, true
		}
	}
	for _, m := range patterns.TxnDateRunIn.FindAllStringSubmatch(line, -1) {
		if v, ok := validMMDDYY(m[1], m[2], m[3]); ok {
			return v, true
		}
	}
	return "", false
}

func validMMDDYY(mm, dd, yy string) (string, bool) {
	m, err1 := strconv.Atoi(mm)
	d, err2 := strconv.Atoi(dd)
	y, err3 := strconv.Atoi(yy)
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 || y < 20 {
		return "", false
	}
	return mm + "-" + dd + "-" + yy, true
}

// Time returns the first TIME_PATTERNS match not preceded by a digit.
func Time(lines []string) (string, bool) {
	for _, re := range patterns.TimePatterns {
		for _, l := range lines {
			loc := re.FindStringSubmatchIndex(l)
			if loc == nil {
				continue
			}
			start := loc[2]
			if start > 0 && l[start-1] >= '0' && l[start-1] <= '9' {
				continue
			}
			return l[loc[2]:loc[3]], true
		}
	}
	return "", false
}

// subtotalLabel marks a subtotal line, including the spaced and hyphenated
// "SUB TOTAL"/"SUB-TOTAL" forms that the plain TOTAL pattern would match.
var subtotalLabel = regexp.MustCompile(`(?i)\bSUB[\s\-]*TOTAL`)

// Total runs the inline-then-split logic of §4.L3. SUBTOTAL is never used.
func Total(lines []string) (decimal.Decimal, bool) {
	masked := make([]string, len(lines))
	for i, l := range lines {
		if !subtotalLabel.MatchString(l) {
			masked[i] = l
		}
	}
	return inlineThenSplit(masked, patterns.TotalPatternsInline, patterns.TotalKeywordPriority)
}

// Vat runs the same inline-then-split logic for VAT.
func Vat(lines []string) (decimal.Decimal, bool) {
	return inlineThenSplit(lines, patterns.VatPatternsInline, patterns.VatKeywordPriority)
}

func inlineThenSplit(lines []string, inline, splitKw []*regexp.Regexp) (decimal.Decimal, bool) {
	for _, re := range inline {
		for _, l := range lines {
			if m := re.FindStringSubmatch(l); m != nil {
				if amt, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "")); err == nil {
					return amt, true
				}
			}
		}
	}
	for i, l := range lines {
		for _, kw := range splitKw {
			if kw.MatchString(strings.TrimSpace(l)) && i+1 < len(lines) {
				if amt, ok := lineclass.PriceOf(lines[i+1]); ok {
					return amt, true
				}
			}
		}
	}
	return decimal.Decimal{}, false
}

// Tin returns the first TIN_PATTERNS match.
func Tin(lines []string) (string, bool) {
	for _, re := range patterns.TinPatterns {
		for _, l := range lines {
			if m := re.FindStringSubmatch(l); m != nil {
				return m[1], true
			}
		}
	}
	return "", false
}

// StatedItemCount runs the three probes of §4.L3, in order: "** N item(s)
// **", the split "**"/"N item(s)"/"**" form, then "ITEMS PURCHASED: N".
// onlyFirstForm restricts supermarket receipts to the first probe only —
// on SM receipts "ITEMS PURCHASED" is a summed quantity, not a line count.
func StatedItemCount(lines []string, onlyFirstForm bool) (int, bool) {
	for _, l := range lines {
		if m := patterns.ItemCountLine.FindStringSubmatch(l); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	if onlyFirstForm {
		return 0, false
	}
	for i, l := range lines {
		if patterns.Separator.MatchString(strings.TrimSpace(l)) && i+1 < len(lines) {
			if m := patterns.ItemCountLineSplit.FindStringSubmatch(strings.TrimSpace(lines[i+1])); m != nil {
				if i+2 < len(lines) && patterns.Separator.MatchString(strings.TrimSpace(lines[i+2])) {
					digits := strings.TrimSpace(lines[i+1])
					n, err := strconv.Atoi(extractDigits(digits))
					if err == nil {
						return n, true
					}
				}
			}
		}
	}
	for _, l := range lines {
		if m := patterns.ItemsPurchased.FindStringSubmatch(l); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func extractDigits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
