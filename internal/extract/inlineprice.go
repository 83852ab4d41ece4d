package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/facturaIA/receipt-extraction-core/internal/lineclass"
	"github.com/facturaIA/receipt-extraction-core/internal/model"
	"github.com/facturaIA/receipt-extraction-core/internal/patterns"
)

// InlinePrice implements the inline_price layout of §4.M2.e — the fallback
// for unknown stores whose structural fingerprint favors inline name/price
// pairs. May opportunistically consume a trailing barcode.
func InlinePrice(lines []string) []model.Item {
	zoneStart, zoneEnd := zone(lines, model.InlinePrice)
	skip := skipPrices(lines)
	used := newBitset(len(lines))

	var items []model.Item
	inlinePassInline(lines, used, zoneStart, zoneEnd, skip, &items)
	inlinePassTwoLine(lines, used, zoneStart, zoneEnd, skip, &items)

	items = sortBySourceIndex(items)
	return applyCap(lines, items, false)
}

func inlinePassInline(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i < zoneEnd; i++ {
		if used.has(i) {
			continue
		}
		m := patterns.PriceInline.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) < 3 {
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", ""))
		if err != nil || isSkipped(skip, price) {
			continue
		}
		it := model.NewItem(name, price, i)
		consumed := []int{i}
		if i+1 < zoneEnd && !used.has(i+1) && lineclass.IsBarcode(lines[i+1]) {
			it.SKU = extractSKU(lines[i+1])
			consumed = append(consumed, i+1)
		}
		*items = append(*items, it)
		mark(used, consumed...)
	}
}

func inlinePassTwoLine(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i+1 < zoneEnd; i++ {
		if claimed(used, i, i+1) {
			continue
		}
		if !lineclass.IsName(lines[i], i, 0, false) {
			continue
		}
		price, ok := lineclass.PriceOf(lines[i+1])
		if !ok || isSkipped(skip, price) {
			continue
		}
		it := model.NewItem(strings.TrimSpace(lines[i]), price, i)
		consumed := []int{i, i + 1}
		if i+2 < zoneEnd && !used.has(i+2) && lineclass.IsBarcode(lines[i+2]) {
			it.SKU = extractSKU(lines[i+2])
			consumed = append(consumed, i+2)
		}
		*items = append(*items, it)
		mark(used, consumed...)
	}
}
