// Package extract implements the M2 multi-pass item extractors: one state
// machine per receipt layout, all built on the shared skeleton of §4.M2 —
// zone computation, skip_prices collection, an ordered list of passes over
// a bitset of unused line indices, then sort/orphan-infer/cap.
package extract

import (
	"sort"
	"strings"

	"github.com/facturaIA/receipt-extraction-core/internal/fields"
	"github.com/facturaIA/receipt-extraction-core/internal/lineclass"
	"github.com/facturaIA/receipt-extraction-core/internal/model"
	"github.com/facturaIA/receipt-extraction-core/internal/patterns"
)

// sortBySourceIndex orders items into receipt order, per §4.M2 step 4.
func sortBySourceIndex(items []model.Item) []model.Item {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SourceIndex() < items[j].SourceIndex()
	})
	return items
}

// isJunkBetween matches the small set of tokens a pass may skip over while
// looking for a barcode or price: discount markers, separators, and bare
// short tokens that are neither a name nor a useful field.
func isJunkBetween(l string) bool {
	trimmed := strings.TrimSpace(l)
	if trimmed == "" {
		return true
	}
	if lineclass.IsSeparator(trimmed) {
		return true
	}
	if patterns.MercuryJunk.MatchString(trimmed) {
		return true
	}
	if len(trimmed) <= 5 && isShortToken(trimmed) {
		return true
	}
	return false
}

func isShortToken(s string) bool {
	for _, c := range s {
		if !(c >= '0' && c <= '9') && c != '-' && c != '/' {
			return false
		}
	}
	return true
}

// applyCap enforces the stated-item-count cap of §4.T1: when the receipt
// declares fewer items than were extracted, truncate to the declared count,
// keeping the earliest items in receipt order (items arrive here already
// sorted by source index).
func applyCap(lines []string, items []model.Item, onlyFirstForm bool) []model.Item {
	n, ok := fields.StatedItemCount(lines, onlyFirstForm)
	if !ok || n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

// claimed reports whether any index in idx is already used, so a pass can
// skip a whole candidate span that overlaps an earlier item.
func claimed(used *bitset, idx ...int) bool {
	for _, i := range idx {
		if used.has(i) {
			return true
		}
	}
	return false
}

func mark(used *bitset, idx ...int) {
	used.setRange(idx...)
}

func extractSKU(s string) *string {
	trimmed := strings.TrimSpace(s)
	if !lineclass.IsBarcode(trimmed) {
		return nil
	}
	v := trimmed
	return &v
}
