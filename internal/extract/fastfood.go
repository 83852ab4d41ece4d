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

var (
	fastFoodHeader  = regexp.MustCompile(`(?i)^(ORDER#|TABLE#|DINE\s*IN|TAKE\s*OUT|DRIVE\s*THRU|CASHIER)`)
	qtyPrefixInline = regexp.MustCompile(`^(\d{1,3})\s+(.+?)\s{2,}[₱P]?\s*(\d[\d,]*\.\d{2})\s*$`)
)

// FastFood implements the fast_food layout of §4.M2.c. There is no
// stated-count cap for this type.
func FastFood(lines []string) []model.Item {
	zoneStart, zoneEnd := zone(lines, model.FastFood)
	for zoneStart < zoneEnd && fastFoodHeader.MatchString(strings.TrimSpace(lines[zoneStart])) {
		zoneStart++
	}
	skip := skipPrices(lines)
	used := newBitset(len(lines))

	var items []model.Item
	fastFoodPassA(lines, used, zoneStart, zoneEnd, skip, &items)
	fastFoodPassB(lines, used, zoneStart, zoneEnd, skip, &items)

	return sortBySourceIndex(items)
}

// Pass A: qty-prefix inline "2 PEACH MANGO PIE   69.00", falling through to
// plain inline when no qty prefix is present.
func fastFoodPassA(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
	for i := zoneStart; i < zoneEnd; i++ {
		if used.has(i) {
			continue
		}
		if m := qtyPrefixInline.FindStringSubmatch(lines[i]); m != nil {
			name := strings.TrimSpace(m[2])
			if len(name) < 3 {
				continue
			}
			price, err := decimal.NewFromString(strings.ReplaceAll(m[3], ",", ""))
			if err != nil || isSkipped(skip, price) {
				continue
			}
			qty := 1
			if q, err := strconv.Atoi(m[1]); err == nil && q > 0 {
				qty = q
			}
			it := model.NewItem(name, price, i)
			it.Qty = qty
			*items = append(*items, it)
			mark(used, i)
			continue
		}
		if m := patterns.PriceInline.FindStringSubmatch(lines[i]); m != nil {
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
}

// Pass B: 2-line name -> price.
func fastFoodPassB(lines []string, used *bitset, zoneStart, zoneEnd int, skip map[string]bool, items *[]model.Item) {
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
