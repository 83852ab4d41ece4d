// Package repair implements the optional OCR text repairer named in §6:
// a pure, per-line pass applied before classification when enabled.
// Adapted from pattern_based_corrector.py's symbol-restoration rules —
// the systematic, store-agnostic fixes only; its word-splitting and
// prefix/suffix spacing heuristics are out of scope here, since the line
// classifier already tolerates ordinary OCR noise in names.
package repair

import "regexp"

var (
	// pesoFromP restores a peso sign OCR flattened to a bare "P" in front
	// of a price. Never touches "P" inside product codes like PHP/PCS/PDR
	// because those are not followed by a price-shaped run of digits.
	pesoFromP = regexp.MustCompile(`(^|[^A-Z])P\s*(\d[\d,]*\.\d{2})`)

	// pesoFromYen catches a peso sign misread as yen, a rarer but still
	// systematic confusion at low OCR resolution.
	pesoFromYen = regexp.MustCompile(`¥\s*(\d[\d,]*\.\d{2})`)

	// multiplySign restores "2 x 3" style quantity separators to ×, which
	// the qty-line patterns expect.
	multiplySign = regexp.MustCompile(`(\d)\s+[xX]\s+(\d)`)

	// underscoreDigitRun repairs an underscore misread of a hyphen inside
	// a digit run, as seen in TIN and phone numbers.
	underscoreDigitRun = regexp.MustCompile(`(\d)_(\d)`)
)

// Repair applies the systematic, store-agnostic OCR fixes to a single line.
// It is pure and side-effect free. The fixes are reapplied until the line
// stops changing, so calling it again on its own output is a no-op.
func Repair(line string) string {
	if line == "" {
		return line
	}
	for {
		prev := line
		line = pesoFromP.ReplaceAllString(line, "${1}₱$2")
		line = pesoFromYen.ReplaceAllString(line, "₱$1")
		line = multiplySign.ReplaceAllString(line, "$1 × $2")
		line = underscoreDigitRun.ReplaceAllString(line, "$1-$2")
		if line == prev {
			return line
		}
	}
}
