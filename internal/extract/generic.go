package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/facturaIA/receipt-extraction-core/internal/model"
	"github.com/facturaIA/receipt-extraction-core/internal/patterns"
)

// Generic implements the generic fallback of §4.M2.f: inline pairs only,
// name must start with a letter and be at least 3 characters. Deliberately
// conservative — fewer but correct items beats a greedy guess on a store
// this pipeline has never seen before.
func Generic(lines []string) []model.Item {
	zoneStart, zoneEnd := zone(lines, model.Generic)
	skip := skipPrices(lines)
	used := newBitset(len(lines))

	var items []model.Item
	for i := zoneStart; i < zoneEnd; i++ {
		if used.has(i) {
			continue
		}
		m := patterns.PriceInline.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) < 3 || !isGenericName(name) {
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", ""))
		if err != nil || isSkipped(skip, price) {
			continue
		}
		items = append(items, model.NewItem(name, price, i))
		mark(used, i)
	}

	items = sortBySourceIndex(items)
	return applyCap(lines, items, false)
}

func isGenericName(name string) bool {
	c := rune(name[0])
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
