package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/facturaIA/receipt-extraction-core/internal/lineclass"
	"github.com/facturaIA/receipt-extraction-core/internal/model"
	"github.com/facturaIA/receipt-extraction-core/internal/patterns"
)

// qtyBeforePrice matches "ITEM NAME  QTY  PRICE" — a bare qty column
// between the name and the price, separated by runs of ≥2 spaces.
var qtyBeforePrice = regexp.MustCompile(`^(.+?)\s{2,}(\d{1,3})\s{2,}[₱P]?\s*(\d[\d,]*\.\d{2})\s*$`)

// DepartmentStore implements the department_store layout of §4.M2.d. There
// is no stated-count cap for this type.
func DepartmentStore(lines []string) []model.Item {
	zoneStart, zoneEnd := zone(lines, model.DepartmentStore)
	skip := skipPrices(lines)
	used := newBitset(len(lines))

	var items []model.Item
	departmentPassA(lines, used, zoneStart, zoneEnd, skip, &items)
	departmentPassB(lines, used, zoneStart, zoneEnd, skip, &items)
	departmentPassC(lines, used, zoneStart, zoneEnd, skip, &items)

	return sortBySourceIndex(items)
}

// Pass A: "ITEM NAME  QTY  PRICE", qty before price.
func departmentPassA(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i < zoneEnd; i++ {
		if used.has(i) {
			continue
		}
		m := qtyBeforePrice.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) < 3 {
			continue
		}
		qty, err := strconv.Atoi(m[2])
		if err != nil || qty <= 0 {
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(m[3], ",", ""))
		if err != nil || isSkipped(skip, price) {
			continue
		}
		it := model.NewItem(name, price, i)
		it.Qty = qty
		*items = append(*items, it)
		mark(used, i)
	}
}

// Pass B: plain inline "ITEM NAME  PRICE".
func departmentPassB(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
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

// Pass C: 2-line name -> price.
func departmentPassC(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
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
		*items = append(*items, it)
		mark(used, i, i+1)
	}
}
