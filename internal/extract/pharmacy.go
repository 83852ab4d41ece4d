package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/facturaIA/receipt-extraction-core/internal/fields"
	"github.com/facturaIA/receipt-extraction-core/internal/lineclass"
	"github.com/facturaIA/receipt-extraction-core/internal/model"
	"github.com/facturaIA/receipt-extraction-core/internal/patterns"
)

// Pharmacy implements the pharmacy_column layout of §4.M2.a. Mercury-Drug
// style OCR reads the price column before the item column, so several
// layouts coexist on one receipt; passes run most-constrained first so an
// earlier, more specific pass claims a span before a looser one can.
func Pharmacy(lines []string) []model.Item {
	zoneStart, zoneEnd := zone(lines, model.PharmacyColumn)
	skip := skipPrices(lines)
	used := newBitset(len(lines))
	total := len(lines)

	var items []model.Item
	pharmacyPassB2(lines, used, zoneStart, zoneEnd, total, &items)
	pharmacyPassA1b(lines, used, zoneStart, zoneEnd, total, skip, &items)
	pharmacyPassA1a(lines, used, zoneStart, zoneEnd, total, skip, &items)
	pharmacyPassA2(lines, used, zoneStart, zoneEnd, total, skip, &items)
	pharmacyPassB(lines, used, zoneStart, zoneEnd, total, skip, &items)
	pharmacyPassC(lines, used, zoneStart, zoneEnd, total, skip, &items)
	pharmacyPassD(lines, used, zoneStart, zoneEnd, skip, &items)

	items = sortBySourceIndex(items)
	items = pharmacyOrphanInfer(lines, items, used, zoneStart, zoneEnd, total)
	items = applyCap(lines, items, false)
	return items
}

// Pass B2: Name -> Barcode -> QtyLine -> Price, all strictly adjacent.
func pharmacyPassB2(lines []string, used *bitset, zoneStart, zoneEnd, total int, items *[]model.Item) {
	for i := zoneStart; i+3 < zoneEnd; i++ {
		if claimed(used, i, i+1, i+2, i+3) {
			continue
		}
		if !lineclass.IsName(lines[i], i, total, true) {
			continue
		}
		if !lineclass.IsBarcode(lines[i+1]) {
			continue
		}
		qty, unitPrice, ok := lineclass.ParseQtyLine(lines[i+2])
		if !ok {
			continue
		}
		price, ok := lineclass.PriceOf(lines[i+3])
		if !ok {
			continue
		}
		it := model.NewItem(strings.TrimSpace(lines[i]), price, i)
		it.Qty = qty
		it.UnitPrice = &unitPrice
		it.SKU = extractSKU(lines[i+1])
		*items = append(*items, it)
		mark(used, i, i+1, i+2, i+3)
	}
}

// Pass A1b: Name -> [up to 3 junk lines] -> TaxedPrice, opportunistically
// consuming a trailing barcode and qty line.
func pharmacyPassA1b(lines []string, used *bitset, zoneStart, zoneEnd, total int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i < zoneEnd; i++ {
		if used.has(i) || !lineclass.IsName(lines[i], i, total, true) {
			continue
		}
		j := i + 1
		skipped := 0
		for j < zoneEnd && skipped < 3 && !used.has(j) && isJunkBetween(lines[j]) {
			j++
			skipped++
		}
		if j >= zoneEnd || used.has(j) {
			continue
		}
		trimmed := strings.TrimSpace(lines[j])
		taxedSuffix := patterns.TaxedPrice.MatchString(trimmed)
		price, ok := lineclass.PriceOf(trimmed)
		if !ok || isSkipped(skip, price) {
			continue
		}
		trailingBarcode := j+1 < zoneEnd && !used.has(j+1) && lineclass.IsBarcode(lines[j+1])
		if !taxedSuffix && !trailingBarcode && skipped == 0 {
			continue
		}
		consumed := []int{i, j}
		k := j + 1
		if k < zoneEnd && !used.has(k) && lineclass.IsBarcode(lines[k]) {
			consumed = append(consumed, k)
			k++
		}
		if k < zoneEnd && !used.has(k) && lineclass.IsQtyLine(lines[k]) {
			consumed = append(consumed, k)
		}
		it := model.NewItem(strings.TrimSpace(lines[i]), price, i)
		*items = append(*items, it)
		mark(used, consumed...)
	}
}

// Pass A1a: TaxedPrice -> Name -> Barcode, price before name. Backward
// guard: a barcode 1-3 lines earlier whose preceding line is a name means
// B2 already owns this span.
func pharmacyPassA1a(lines []string, used *bitset, zoneStart, zoneEnd, total int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i < zoneEnd; i++ {
		if used.has(i) {
			continue
		}
		trimmed := strings.TrimSpace(lines[i])
		if !patterns.TaxedPrice.MatchString(trimmed) {
			continue
		}
		price, ok := lineclass.PriceOf(trimmed)
		if !ok || isSkipped(skip, price) {
			continue
		}
		guarded := false
		for back := 1; back <= 3 && i-back >= 0; back++ {
			if used.has(i-back) || (i-back-1 >= 0 && used.has(i-back-1)) {
				continue
			}
			if lineclass.IsBarcode(lines[i-back]) && i-back-1 >= 0 &&
				lineclass.IsName(lines[i-back-1], i-back-1, total, true) {
				guarded = true
				break
			}
		}
		if guarded || i+1 >= zoneEnd || used.has(i+1) {
			continue
		}
		if !lineclass.IsName(lines[i+1], i+1, total, true) {
			continue
		}
		consumed := []int{i, i + 1}
		var sku *string
		if i+2 < zoneEnd && !used.has(i+2) && lineclass.IsBarcode(lines[i+2]) {
			sku = extractSKU(lines[i+2])
			consumed = append(consumed, i+2)
		}
		it := model.NewItem(strings.TrimSpace(lines[i+1]), price, i+1)
		it.SKU = sku
		*items = append(*items, it)
		mark(used, consumed...)
	}
}

// Pass A2: same as A1a but for untaxed prices. Forward guard: if another
// unused price follows the candidate name, that later price is the real
// item price and this pair is skipped.
func pharmacyPassA2(lines []string, used *bitset, zoneStart, zoneEnd, total int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i < zoneEnd; i++ {
		if used.has(i) {
			continue
		}
		trimmed := strings.TrimSpace(lines[i])
		if patterns.TaxedPrice.MatchString(trimmed) {
			continue
		}
		price, ok := lineclass.PriceOf(trimmed)
		if !ok || isSkipped(skip, price) {
			continue
		}
		if i+1 >= zoneEnd || used.has(i+1) || !lineclass.IsName(lines[i+1], i+1, total, true) {
			continue
		}
		if i+2 < zoneEnd && !used.has(i+2) {
			if _, ok := lineclass.PriceOf(lines[i+2]); ok {
				continue
			}
		}
		consumed := []int{i, i + 1}
		var sku *string
		if i+2 < zoneEnd && !used.has(i+2) && lineclass.IsBarcode(lines[i+2]) {
			sku = extractSKU(lines[i+2])
			consumed = append(consumed, i+2)
		}
		it := model.NewItem(strings.TrimSpace(lines[i+1]), price, i+1)
		it.SKU = sku
		*items = append(*items, it)
		mark(used, consumed...)
	}
}

// Pass B: Name -> [junk...] -> Barcode -> Price, scanning up to 5 lines
// after the name. Recovers a trailing "LESS BP DISC"-style amount when no
// price follows the barcode.
func pharmacyPassB(lines []string, used *bitset, zoneStart, zoneEnd, total int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i < zoneEnd; i++ {
		if used.has(i) || !lineclass.IsName(lines[i], i, total, true) {
			continue
		}
		barcodeIdx := -1
		var qty *int
		var unit decimal.Decimal
		j := i + 1
		for steps := 0; j < zoneEnd && steps < 5; steps++ {
			if used.has(j) {
				j++
				continue
			}
			if lineclass.IsBarcode(lines[j]) {
				barcodeIdx = j
				break
			}
			if lineclass.IsQtyLine(lines[j]) {
				q, u, ok := lineclass.ParseQtyLine(lines[j])
				if ok {
					qty, unit = &q, u
				}
				j++
				continue
			}
			if isJunkBetween(lines[j]) {
				j++
				continue
			}
			break
		}
		if barcodeIdx < 0 {
			continue
		}
		consumed := []int{i, barcodeIdx}
		var price decimal.Decimal
		havePrice := false
		k := barcodeIdx + 1
		if k < zoneEnd && !used.has(k) {
			if p, ok := lineclass.PriceOf(lines[k]); ok && !isSkipped(skip, p) {
				if patterns.TotalKeywordPriority != nil && k+1 < zoneEnd &&
					isTotalKeyword(lines[k+1]) && qty != nil {
					price = unit.Mul(decimal.NewFromInt(int64(*qty)))
				} else {
					price = p
				}
				havePrice = true
				consumed = append(consumed, k)
			}
		}
		if !havePrice {
			if p, ok := recoverDiscountPrice(lines, barcodeIdx, zoneEnd); ok {
				price, havePrice = p, true
			}
		}
		if !havePrice {
			continue
		}
		it := model.NewItem(strings.TrimSpace(lines[i]), price, i)
		it.SKU = extractSKU(lines[barcodeIdx])
		if qty != nil {
			it.Qty = *qty
			it.UnitPrice = &unit
		}
		*items = append(*items, it)
		mark(used, consumed...)
	}
}

func isTotalKeyword(l string) bool {
	trimmed := strings.TrimSpace(l)
	for _, re := range patterns.TotalKeywordPriority {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

func recoverDiscountPrice(lines []string, from, zoneEnd int) (decimal.Decimal, bool) {
	for j := from + 1; j < zoneEnd && j < from+4; j++ {
		if !patterns.MercuryJunk.MatchString(strings.TrimSpace(lines[j])) {
			continue
		}
		if idx := strings.IndexAny(lines[j], "xX×"); idx >= 0 {
			if p, ok := lineclass.PriceOf(lines[j][idx+1:]); ok {
				return p, true
			}
		}
	}
	return decimal.Decimal{}, false
}

// Pass C: last-resort Name -> Price pair.
func pharmacyPassC(lines []string, used *bitset, zoneStart, zoneEnd, total int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i+1 < zoneEnd; i++ {
		if claimed(used, i, i+1) {
			continue
		}
		if !lineclass.IsName(lines[i], i, total, true) {
			continue
		}
		price, ok := lineclass.PriceOf(lines[i+1])
		if !ok || isSkipped(skip, price) {
			continue
		}
		it := model.NewItem(strings.TrimSpace(lines[i]), price, i)
		*items = append(*items, it)
		mark(used, i, i+1)
	}
}

// Pass D: any remaining inline "NAME  PRICE" line.
func pharmacyPassD(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
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
		*items = append(*items, it)
		mark(used, i)
	}
}

// pharmacyOrphanInfer synthesizes one unclaimed item when exactly one
// name->barcode pair remains and the receipt total exceeds the detected
// item sum, per §4.M2.a.
func pharmacyOrphanInfer(lines []string, items []model.Item, used *bitset, zoneStart, zoneEnd, total int) []model.Item {
	orphanIdx := -1
	count := 0
	for i := zoneStart; i+1 < zoneEnd; i++ {
		if used.has(i) || used.has(i+1) {
			continue
		}
		if lineclass.IsName(lines[i], i, total, true) && lineclass.IsBarcode(lines[i+1]) {
			count++
			orphanIdx = i
		}
	}
	if count != 1 {
		return items
	}
	receiptTotal, ok := fields.Total(lines)
	if !ok {
		return items
	}
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	if receiptTotal.LessThanOrEqual(sum) {
		return items
	}
	price := receiptTotal.Sub(sum)
	if price.Sign() <= 0 {
		return items
	}
	it := model.NewItem(strings.TrimSpace(lines[orphanIdx]), price, orphanIdx)
	it.SKU = extractSKU(lines[orphanIdx+1])
	return append(items, it)
}
