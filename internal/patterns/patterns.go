// Package patterns holds every compiled regex the extraction pipeline uses.
// All regexes are built once here, at package init, and are read-only from
// then on — no pass ever compiles a pattern per call.
package patterns

import (
	"regexp"
	"strings"
)

// Structural / layout-agnostic patterns.
var (
	Separator = regexp.MustCompile(`^[\-\*\=\.\s]+$|^\*\*.*\*\*$`)

	PriceOnly = regexp.MustCompile(`^\s*[₱P]?\s*(\d[\d,]*\.\d{1,2})\s*[TXZVvy]?\s*$`)

	PriceInline = regexp.MustCompile(`^(.+?)\s{2,}[₱P]?\s*(\d[\d,]*\.\d{2})[TXZ]?\s*$`)

	Barcode = regexp.MustCompile(`^\d{6,14}$`)

	QtyLine = regexp.MustCompile(`^(\d{1,4})\s*[@xX×]\s*(\d[\d,]*\.\d{2})$`)

	TaxedPrice = regexp.MustCompile(`^\s*[₱P]?\s*(\d[\d,]*\.\d{2})\s*[TXZ]\s*$`)

	QtyAtPrice = regexp.MustCompile(`^\d+\s*@\s*\d[\d,]*\.\d{2}$`)

	ItemCountLine = regexp.MustCompile(`(?i)\*+\s*(\d+)\s*item(?:s|\(s\))?\s*\*+`)
)

// Date patterns, grouped and ordered per §4.L1: 4-digit-year numeric/written,
// 2-digit-year numeric/written, month-year-only, ordinal day/month,
// bare day/month.
var (
	DateNumeric4 = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})\b`),
		regexp.MustCompile(`\b(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})\b`),
	}
	DateWritten4 = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})\b`),
		regexp.MustCompile(`(?i)\b(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\.?,?\s+(\d{4})\b`),
	}
	DateNumeric2 = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})[/\-](\d{2})\b`),
	}
	DateWritten2 = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{2})\b`),
	}
	DateMonthYearOnly = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\.?\s+(\d{4})\b`),
	}
	DateOrdinal = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\s+(?:of\s+)?(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\b`),
	}
	DateBareDayMonth = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})\b`),
	}

	// DateContextLabel flags a line that names what the date on it is for
	// (used to gate the lower-confidence rounds 3 and 4).
	DateContextLabel = regexp.MustCompile(`(?i)\b(date|dated|issued|on|as\s+of|for)\b`)

	// TxnDate recovers a MM-DD-YY embedded in a TXN# line under the three
	// OCR merge spacing variants in §4.L3.
	TxnDateSeparated = regexp.MustCompile(`TXN#?\s*\d+\D*?(\d{2})-(\d{2})-(\d{2})`)
	TxnDateRunIn     = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{2})`)
	TxnDateSquashed  = regexp.MustCompile(`TXN#?\d+[-](\d{2})(\d{2})\d{0,2}[\-](2\d)\d{2}:`)
)

// Time patterns, most specific first.
var TimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}:\d{2}:\d{2}\s*[AP]M?)`),
	regexp.MustCompile(`(\d{1,2}:\d{2}\s*[AP]M)`),
	regexp.MustCompile(`(\d{1,2}:\d{2}\s*[AP])\b`),
}

// Invoice number patterns. The last two (TXN / TRANSACTION/CONTROL) are
// lowest priority and are only tried in pass 2 by the field extractor.
var (
	InvoicePatternsPrimary = []*regexp.Regexp{
		regexp.MustCompile(`(?i)SALES\s*INVOICE\s*#?\s*(\d{6,})`),
		regexp.MustCompile(`(?i)INVOICE\s*#\s*([A-Za-z0-9]{4,})`),
		regexp.MustCompile(`(?i)\bOR\s*/\s*SI\s*#\s*([A-Za-z0-9\-]{4,})`),
		regexp.MustCompile(`(?i)\bO\.?R\.?\s*/\s*S\.?I\.?\s*#?\s*([A-Za-z0-9\-]{4,})`),
		regexp.MustCompile(`(?i)(?:OFFICIAL\s+RECEIPT|SALES\s+INVOICE|RECEIPT\s+NO)\s*[:#]?\s*([A-Za-z0-9\-]{4,})`),
		regexp.MustCompile(`(?i)SI\s*No\s*[:.]?\s*([A-Za-z0-9\-]{4,})`),
	}
	InvoicePatternsTxn = []*regexp.Regexp{
		regexp.MustCompile(`(?i)TXN\s*#\s*([A-Za-z0-9]{4,})`),
		regexp.MustCompile(`(?i)(?:TRANSACTION|CONTROL)\s*#?\s*[:]?\s*([A-Za-z0-9\-]{4,})`),
	}
)

// Total/VAT amount patterns, ordered by specificity, most specific first.
var (
	TotalPatternsInline = []*regexp.Regexp{
		regexp.MustCompile(`(?i)GRAND\s*TOTAL\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)TOTAL\s*AMOUNT\s*DUE\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)AMOUNT\s*DUE\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)TOTAL\s*PAYMENT\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)TOTAL\s*SALES\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)NET\s*AMOUNT\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)NET\s*SALES\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)\bTOTAL\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
	}

	// TotalKeywordPriority matches standalone keyword lines for the
	// split-line (keyword-on-line-N, price-on-line-N+1) fallback.
	// SUBTOTAL is intentionally excluded — it is pre-discount.
	TotalKeywordPriority = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*GRAND\s*TOTAL\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?i)^\s*TOTAL\s*AMOUNT\s*DUE\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?i)^\s*AMOUNT\s*DUE\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?i)^\s*TOTAL\s*PAYMENT\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?i)^\s*TOTAL\s*SALES\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?i)^\s*NET\s*AMOUNT\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?i)^\s*NET\s*SALES\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?i)^\s*TOTAL\s*[:\-]?\s*$`),
	}

	VatPatternsInline = []*regexp.Regexp{
		regexp.MustCompile(`(?i)VAT\s*[-–]?\s*12\s*%\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)12\s*%\s*VAT\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)OUTPUT\s*TAX\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)VAT\s*AMOUNT\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
		regexp.MustCompile(`(?i)\bVAT\s*[:\-]?\s*[₱P]?\s*(\d[\d,]*\.\d{2})`),
	}
	VatKeywordPriority = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*VAT\s*[-–]?\s*12\s*%\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?i)^\s*OUTPUT\s*TAX\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?i)^\s*VAT\s*AMOUNT\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?i)^\s*VAT\s*[:\-]?\s*$`),
	}
)

// TIN patterns: dashed form first, then a bare-digit fallback.
var TinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)TIN\s*[:\-]?\s*(\d{3}-\d{3}-\d{3}-\d{5})`),
	regexp.MustCompile(`\b(\d{3}-\d{3}-\d{3}-\d{5})\b`),
	regexp.MustCompile(`(?i)TIN\s*[:\-]?\s*(\d{9,15})\b`),
}

// Zone markers shared across M2 item extractors.
var (
	ZoneEnd = regexp.MustCompile(`(?i)^(SUBTOTAL|SUB\s*TOTAL|GRAND\s*TOTAL|CHANGE|CHANGE\s*DUE|AMOUNT\s*TENDERED|CASH\s*TENDERED|TOTAL\s*PAYMENT)\s*[:\-]?\s*$`)

	// DefinitiveFinancial lines anchor the skip_prices collection (§4.M2
	// step 2): values adjacent to these exact standalone keywords are
	// excluded from item-price candidacy, subject to the taxed-price
	// carve-out.
	DefinitiveFinancial = regexp.MustCompile(`(?i)^(CHANGE|CASH\s+TENDERED|AMOUNT\s+TENDERED|TOTAL\s+PAYMENT|TOTAL\s+AMOUNT|NET\s+AMOUNT|AMOUNT\s+DUE|GRAND\s+TOTAL|CASH|TOTAL\s+SALES)\s*[:\-]?\s*$`)

	FinancialLine = regexp.MustCompile(`(?i)^(SUBTOTAL|SUB\s*TOTAL|GRAND\s*TOTAL|TOTAL\s*AMOUNT|AMOUNT\s*DUE|TOTAL\s*PAYMENT|TOTAL\s*SALES|NET\s*AMOUNT|CASH\s*TENDERED|AMOUNT\s*TENDERED|CHANGE|BALANCE|CASH|DEBIT|CREDIT|VAT|TAX|DISCOUNT|TOTAL|VATABLE|VAT\s*EXEMPT|ZERO\s*RATED|OUTPUT\s*TAX)\s*[:\-₱P\d\.]*\s*$`)
)

// Pharmacy-layout-only markers.
var (
	PaModeA = regexp.MustCompile(`(?i)^PA\s*#?\s*\d+`)
	PaModeB = regexp.MustCompile(`(?i)^PA\s*\d+\s*S\s*/\s*S`)
	PaModeC = regexp.MustCompile(`(?i)^PA\d+`)

	// AddressFragment matches short door-number/unit fragments ("1-608",
	// "14-B", "2A") that read as item names but are address remnants,
	// gated by a length cap of 8 at the call site.
	AddressFragment = regexp.MustCompile(`^\d{1,5}[\-/]?[A-Za-z0-9]{0,3}$`)

	MercuryJunk = regexp.MustCompile(`(?i)^(\*?BP|\(T\)|LESS\s*:?\s*BP\s*DISC|LESS\s*:?\s*SC\s*DISC|LESS\s*:?\s*PWD\s*DISC)\b`)

	PaymentMethod = regexp.MustCompile(`(?i)^(GCASH|MAYA|PAYMAYA|VISA|MASTERCARD|AMEX|JCB|BDO|BPI|METROBANK|DEBIT\s*CARD|CREDIT\s*CARD|CHECK|CHEQUE|VOUCHER|E\s*WALLET|MEMBER\s+N)`)

	MetadataJunk = regexp.MustCompile(`(?i)\b(Phillogix|PTU|Accred|VAT\s*REG\s*TIN)\b`)

	ProductUnits = regexp.MustCompile(`(?i)\b\d*\s*(ML|KG|MG|G|L|PCS|TAB|CAP|BTL|SACHET)\b`)
	ProductCode  = regexp.MustCompile(`^[A-Z0-9]{4,}[\-/][A-Z0-9]{2,}$`)

	ItemCountLineSplit = regexp.MustCompile(`(?i)^\d+\s*item(?:s|\(s\))?\s*$`)
	ItemsPurchased     = regexp.MustCompile(`(?i)ITEMS\s*PURCHASED\s*[:\-]?\s*(\d+)`)
)

// Skip-item keyword blacklist for is_name, normalized (0→O,1→I,|→I,5→S,8→B,6→G)
// text is matched against this.
var SkipItem = regexp.MustCompile(`\b(TOTAL|SUBTOTAL|CHANGE|CASH|PAYMENT|TENDERED|DISCOUNT|VAT|TAX|BALANCE|DUE|PAID|AMOUNT|VOID|REFUND|THANK|WELCOME|PLEASE|COME|AGAIN|DEBIT|CREDIT|NET|GROSS|INVOICE|RECEIPT)\b`)

// VatTaxDiscPercent rejects lines like "VAT-12%" / "DISC 20%" from is_name.
var VatTaxDiscPercent = regexp.MustCompile(`(?i)^(VAT|TAX|DISC)\s*[-–]?\s*\d+\s*%`)

// Normalize upper-cases s and applies the OCR digit/letter confusion
// substitutions used for financial-keyword matching only, per §4.L1:
// 0→O, 1→I, |→I, 5→S, 8→B, 6→G. Never apply this to preserved product text.
func Normalize(s string) string {
	r := []rune(s)
	for i, c := range r {
		switch c {
		case '0':
			r[i] = 'O'
		case '1':
			r[i] = 'I'
		case '|':
			r[i] = 'I'
		case '5':
			r[i] = 'S'
		case '8':
			r[i] = 'B'
		case '6':
			r[i] = 'G'
		}
	}
	return strings.ToUpper(string(r))
}
