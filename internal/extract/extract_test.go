package extract

import (
	"testing"

	"github.com/facturaIA/receipt-extraction-core/internal/model"
)

func itemByName(t *testing.T, items []model.Item, name string) model.Item {
	t.Helper()
	for _, it := range items {
		if it.Name == name {
			return it
		}
	}
	t.Fatalf("no item named %q in %+v", name, items)
	return model.Item{}
}

func TestSupermarketInlinePairs(t *testing.T) {
	items := Supermarket([]string{
		"SM SUPERMARKET",
		"PHP",
		"CANNED TUNA  55.00",
		"WHITE BREAD  65.50",
		"TOTAL",
		"120.50",
	})
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2: %+v", len(items), items)
	}
	tuna := itemByName(t, items, "CANNED TUNA")
	if tuna.Price.String() != "55" {
		t.Fatalf("CANNED TUNA price = %s, want 55", tuna.Price)
	}
}

func TestSupermarketNameBarcodePrice(t *testing.T) {
	items := Supermarket([]string{
		"SM SUPERMARKET",
		"PHP",
		"INSTANT NOODLES",
		"480012345678",
		"15.00",
		"TOTAL",
		"15.00",
	})
	it := itemByName(t, items, "INSTANT NOODLES")
	if it.Price.String() != "15" {
		t.Fatalf("price = %s, want 15", it.Price)
	}
	if it.SKU == nil || *it.SKU != "480012345678" {
		t.Fatalf("sku = %v, want 480012345678", it.SKU)
	}
}

func TestSupermarketTrailingQtyAfterPrice(t *testing.T) {
	items := Supermarket([]string{
		"SM SUPERMARKET",
		"PHP",
		"BOTTLED WATER",
		"50.00",
		"2X50.00",
		"TOTAL",
		"100.00",
	})
	it := itemByName(t, items, "BOTTLED WATER")
	if it.Qty != 2 {
		t.Fatalf("qty = %d, want 2", it.Qty)
	}
}

func TestDepartmentStoreQtyBeforePrice(t *testing.T) {
	items := DepartmentStore([]string{
		"SM DEPARTMENT STORE",
		"MEN'S COTTON SHIRT  2  450.00",
		"TOTAL",
		"900.00",
	})
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1: %+v", len(items), items)
	}
	it := items[0]
	if it.Name != "MEN'S COTTON SHIRT" || it.Price.String() != "450" || it.Qty != 2 {
		t.Fatalf("item = %+v, want name MEN'S COTTON SHIRT price 450 qty 2", it)
	}
}

func TestDepartmentStoreTwoLineNamePrice(t *testing.T) {
	items := DepartmentStore([]string{
		"SM DEPARTMENT STORE",
		"LADIES HANDBAG",
		"899.00",
		"TOTAL",
		"899.00",
	})
	it := itemByName(t, items, "LADIES HANDBAG")
	if it.Price.String() != "899" {
		t.Fatalf("price = %s, want 899", it.Price)
	}
}

func TestDepartmentStoreHasNoStatedCountCap(t *testing.T) {
	items := DepartmentStore([]string{
		"SM DEPARTMENT STORE",
		"ITEM A  10.00",
		"ITEM B  20.00",
		"ITEM C  30.00",
		"** 1 item(s) **",
		"TOTAL",
		"60.00",
	})
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3 (no stated-count cap for department_store): %+v", len(items), items)
	}
}

func TestGenericRejectsNamesNotStartingWithALetter(t *testing.T) {
	items := Generic([]string{
		"UNKNOWN STORE",
		"123 NOT A NAME  10.00",
		"REAL PRODUCT  20.00",
		"TOTAL",
		"20.00",
	})
	if len(items) != 1 || items[0].Name != "REAL PRODUCT" {
		t.Fatalf("items = %+v, want only REAL PRODUCT", items)
	}
}

func TestGenericAppliesStatedCountCap(t *testing.T) {
	items := Generic([]string{
		"UNKNOWN STORE",
		"ITEM A  10.00",
		"ITEM B  20.00",
		"ITEM C  30.00",
		"** 1 item(s) **",
		"TOTAL",
		"60.00",
	})
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1 (generic caps to the stated count): %+v", len(items), items)
	}
}

func TestInlinePriceConsumesTrailingBarcode(t *testing.T) {
	items := InlinePrice([]string{
		"UNKNOWN STORE",
		"SOME PRODUCT  25.00",
		"480099988877",
		"TOTAL",
		"25.00",
	})
	it := itemByName(t, items, "SOME PRODUCT")
	if it.SKU == nil || *it.SKU != "480099988877" {
		t.Fatalf("sku = %v, want 480099988877", it.SKU)
	}
}

func TestInlinePriceTwoLineNamePrice(t *testing.T) {
	items := InlinePrice([]string{
		"UNKNOWN STORE",
		"ANOTHER PRODUCT",
		"40.00",
		"TOTAL",
		"40.00",
	})
	it := itemByName(t, items, "ANOTHER PRODUCT")
	if it.Price.String() != "40" {
		t.Fatalf("price = %s, want 40", it.Price)
	}
}

func TestSkipPricesExcludesDefinitiveFinancialValues(t *testing.T) {
	items := InlinePrice([]string{
		"UNKNOWN STORE",
		"SOME PRODUCT  40.00",
		"TOTAL",
		"40.00",
		"CASH",
		"100.00",
		"CHANGE",
		"60.00",
	})
	for _, it := range items {
		if it.Price.String() == "100" || it.Price.String() == "60" {
			t.Fatalf("item %+v must not carry the cash or change amount", it)
		}
	}
}
