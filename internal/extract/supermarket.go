package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/facturaIA/receipt-extraction-core/internal/lineclass"
	"github.com/facturaIA/receipt-extraction-core/internal/model"
	"github.com/facturaIA/receipt-extraction-core/internal/patterns"
)

// trailingQty matches a quantity noted after the price, SM-style: "2X50.00".
var trailingQty = regexp.MustCompile(`^(\d{1,3})\s*[xX×]\s*(\d[\d,]*\.\d{2})$`)

// Supermarket implements the supermarket layout of §4.M2.b. Zone starts
// after a lone "PHP" header line; the stated-count cap uses only the
// "** N item(s) **" form, never "ITEMS PURCHASED" (that is a summed
// quantity on SM receipts, not a line count).
func Supermarket(lines []string) []model.Item {
	zoneStart, zoneEnd := zone(lines, model.Supermarket)
	skip := skipPrices(lines)
	used := newBitset(len(lines))

	var items []model.Item
	supermarketPassA(lines, used, zoneStart, zoneEnd, skip, &items)
	supermarketPassA2(lines, used, zoneStart, zoneEnd, skip, &items)
	supermarketPassB(lines, used, zoneStart, zoneEnd, skip, &items)
	supermarketPassC(lines, used, zoneStart, zoneEnd, skip, &items)

	items = sortBySourceIndex(items)
	items = applyCap(lines, items, true)
	return items
}

// Pass A: inline "NAME  PRICE", with an optional inline "N @ P" qty token
// folded into the name.
func supermarketPassA(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i < zoneEnd; i++ {
		if used.has(i) {
			continue
		}
		m := patterns.PriceInline.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		qty := 1
		var unit *decimal.Decimal
		if qm := patterns.QtyLine.FindStringSubmatch(name); qm != nil {
			name = strings.TrimSpace(patterns.QtyLine.ReplaceAllString(name, ""))
		}
		if len(name) < 3 {
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", ""))
		if err != nil || isSkipped(skip, price) {
			continue
		}
		it := model.NewItem(name, price, i)
		it.Qty = qty
		it.UnitPrice = unit
		*items = append(*items, it)
		mark(used, i)
	}
}

// Pass A2: name -> qty_line -> total_price (bottled-water style).
func supermarketPassA2(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i+2 < zoneEnd; i++ {
		if claimed(used, i, i+1, i+2) {
			continue
		}
		if !lineclass.IsName(lines[i], i, 0, false) {
			continue
		}
		qty, unit, ok := lineclass.ParseQtyLine(lines[i+1])
		if !ok {
			continue
		}
		price, ok := lineclass.PriceOf(lines[i+2])
		if !ok || isSkipped(skip, price) {
			continue
		}
		it := model.NewItem(strings.TrimSpace(lines[i]), price, i)
		it.Qty = qty
		it.UnitPrice = &unit
		*items = append(*items, it)
		mark(used, i, i+1, i+2)
	}
}

// Pass B: name -> price -> optional trailing qty line ("2X50.00"), the
// qty placed after the price rather than before it.
func supermarketPassB(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
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
		if i+2 < zoneEnd && !used.has(i+2) {
			if qm := trailingQty.FindStringSubmatch(strings.TrimSpace(lines[i+2])); qm != nil {
				if q, unit, ok := lineclass.ParseQtyLine(qm[1] + "@" + qm[2]); ok {
					it.Qty = q
					it.UnitPrice = &unit
					consumed = append(consumed, i+2)
				}
			}
		}
		*items = append(*items, it)
		mark(used, consumed...)
	}
}

// Pass C: name -> barcode -> price.
func supermarketPassC(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i+2 < zoneEnd; i++ {
		if claimed(used, i, i+1, i+2) {
			continue
		}
		if !lineclass.IsName(lines[i], i, 0, false) {
			continue
		}
		if !lineclass.IsBarcode(lines[i+1]) {
			continue
		}
		price, ok := lineclass.PriceOf(lines[i+2])
		if !ok || isSkipped(skip, price) {
			continue
		}
		it := model.NewItem(strings.TrimSpace(lines[i]), price, i)
		it.SKU = extractSKU(lines[i+1])
		*items = append(*items, it)
		mark(used, i, i+1, i+2)
	}
}
