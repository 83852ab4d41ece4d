package pipeline

import (
	"testing"

	"github.com/facturaIA/receipt-extraction-core/internal/model"
)

func asLines(texts ...string) []model.Line {
	lines := make([]model.Line, len(texts))
	for i, t := range texts {
		lines[i] = model.Line{Text: t, Confidence: 0.9}
	}
	return lines
}

func findItem(t *testing.T, items []model.Item, name string) model.Item {
	t.Helper()
	for _, it := range items {
		if it.Name == name {
			return it
		}
	}
	t.Fatalf("no item named %q in %+v", name, items)
	return model.Item{}
}

// S1: Mercury Drug, two taxed items, price-before-name column layout.
func TestScenarioS1MercuryDrugTwoTaxedItems(t *testing.T) {
	p := New(false)
	rec := p.Extract(asLines(
		"MERCURY DRUG - RIZAL BANANGONAN EM COMPLEX",
		"VAT REG TIN : 000-388-474-00778",
		"PA99S/S",
		"1220.00T",
		"NIDO5+PDR MLK2kg",
		"480036140523",
		"90.00T",
		"GREEN COF MX219",
		"TOTAL",
		"1310.00",
		"CASH",
		"2000.00",
		"CHANGE",
		"690.00",
		"** 2 item(s) **",
		"VAT - 12%  140.36",
		"TXN#110855 11-13-25 02:15P EJ",
		"INVOICE#110703137533",
	))

	if rec.ReceiptType != model.PharmacyColumn || rec.TypeConfidence != model.High {
		t.Fatalf("receipt_type = (%s, %s), want (pharmacy_column, High)", rec.ReceiptType, rec.TypeConfidence)
	}
	if rec.StoreName == nil || *rec.StoreName != "MERCURY DRUG - RIZAL BANANGONAN EM COMPLEX" {
		t.Fatalf("store_name = %v, want MERCURY DRUG - RIZAL BANANGONAN EM COMPLEX", rec.StoreName)
	}
	if rec.InvoiceNumber == nil || *rec.InvoiceNumber != "110703137533" {
		t.Fatalf("invoice_number = %v, want 110703137533", rec.InvoiceNumber)
	}
	if rec.Date == nil || *rec.Date != "11-13-25" {
		t.Fatalf("date = %v, want 11-13-25", rec.Date)
	}
	if rec.Time == nil || !containsSub(*rec.Time, "02:15") {
		t.Fatalf("time = %v, want to contain 02:15", rec.Time)
	}
	if rec.TotalAmount == nil || rec.TotalAmount.String() != "1310" {
		t.Fatalf("total_amount = %v, want 1310", rec.TotalAmount)
	}
	if rec.VATAmount == nil || rec.VATAmount.String() != "140.36" {
		t.Fatalf("vat_amount = %v, want 140.36", rec.VATAmount)
	}
	if rec.TIN == nil || *rec.TIN != "000-388-474-00778" {
		t.Fatalf("tin = %v, want 000-388-474-00778", rec.TIN)
	}

	nido := findItem(t, rec.Items, "NIDO5+PDR MLK2kg")
	if nido.Price.String() != "1220" || nido.SKU == nil || *nido.SKU != "480036140523" {
		t.Fatalf("NIDO item = %+v, want price 1220 sku 480036140523", nido)
	}
	coffee := findItem(t, rec.Items, "GREEN COF MX219")
	if coffee.Price.String() != "90" {
		t.Fatalf("GREEN COF item = %+v, want price 90", coffee)
	}
	if rec.ItemCount() < 2 {
		t.Fatalf("item_count = %d, want >= 2", rec.ItemCount())
	}
}

// S2: Jollibee, three inline items; tendered/change amounts must never leak
// in as item prices.
func TestScenarioS2JollibeeThreeInlineItems(t *testing.T) {
	p := New(false)
	rec := p.Extract(asLines(
		"JOLLIBEE",
		"ORDER # 4521",
		"DINE IN",
		"CHICKENJOY 1PC RICE   69.00",
		"YUMBURGER   45.00",
		"PEACH MANGO PIE   85.00",
		"SUBTOTAL",
		"199.00",
		"TOTAL",
		"199.00",
		"CASH  200.00",
		"CHANGE  1.00",
	))

	if rec.ReceiptType != model.FastFood || rec.TypeConfidence != model.High {
		t.Fatalf("receipt_type = (%s, %s), want (fast_food, High)", rec.ReceiptType, rec.TypeConfidence)
	}
	if rec.StoreName == nil || *rec.StoreName != "JOLLIBEE" {
		t.Fatalf("store_name = %v, want JOLLIBEE", rec.StoreName)
	}
	if len(rec.Items) != 3 {
		t.Fatalf("len(items) = %d, want 3: %+v", len(rec.Items), rec.Items)
	}
	if rec.TotalAmount == nil || rec.TotalAmount.String() != "199" {
		t.Fatalf("total_amount = %v, want 199", rec.TotalAmount)
	}
	for _, it := range rec.Items {
		if it.Price.String() == "200" || it.Price.String() == "1" {
			t.Fatalf("item %+v must not carry the cash-tendered or change amount", it)
		}
	}
}

// S3: total equals the single item's price; the taxed-price carve-out must
// not let skip_prices swallow the only item.
func TestScenarioS3TotalEqualsItemOnSingleItemReceipt(t *testing.T) {
	p := New(false)
	rec := p.Extract(asLines(
		"SOME PHARMACY BRANCH",
		"PA#9",
		"450.00T",
		"PARACETAMOL 500mg",
		"480111222333",
		"TOTAL",
		"450.00",
		"CHANGE",
		"50.00",
	))

	if len(rec.Items) != 1 {
		t.Fatalf("len(items) = %d, want 1: %+v", len(rec.Items), rec.Items)
	}
	if rec.Items[0].Price.String() != "450" {
		t.Fatalf("item price = %s, want 450", rec.Items[0].Price)
	}
}

// S4: a date-range start ("08/01/20-07/31/25") must be rejected in favor of
// an unambiguous standalone date elsewhere on the receipt.
func TestScenarioS4DateAmbiguityRejectsRangeStart(t *testing.T) {
	p := New(false)
	rec := p.Extract(asLines(
		"SOME PHARMACY BRANCH",
		"Accred Period: 08/01/20-07/31/25",
		"TXN#110855 11-13-25 02:15P EJ",
	))

	if rec.Date == nil || *rec.Date != "11-13-25" {
		t.Fatalf("date = %v, want 11-13-25", rec.Date)
	}
}

// S5: orphan inference synthesizes the unclaimed name+barcode item's price
// from the receipt total minus the detected sum.
func TestScenarioS5OrphanInference(t *testing.T) {
	p := New(false)
	rec := p.Extract(asLines(
		"SOME PHARMACY BRANCH",
		"PA#1",
		"ITEM-A",
		"480000000001",
		"100.00T",
		"ITEM-B",
		"480000000000",
		"TOTAL",
		"250.00",
		"CHANGE",
		"0.00",
	))

	a := findItem(t, rec.Items, "ITEM-A")
	if a.Price.String() != "100" {
		t.Fatalf("ITEM-A price = %s, want 100", a.Price)
	}
	b := findItem(t, rec.Items, "ITEM-B")
	if b.Price.String() != "150" {
		t.Fatalf("ITEM-B (orphan) price = %s, want 150", b.Price)
	}
	if b.SKU == nil || *b.SKU != "480000000000" {
		t.Fatalf("ITEM-B sku = %v, want 480000000000", b.SKU)
	}
}

// S6: structural fingerprinting routes an unrecognized store with a high
// standalone-price ratio to pharmacy_column at Medium confidence.
func TestScenarioS6StructuralFingerprinting(t *testing.T) {
	p := New(false)
	lines := []string{"SOME UNKNOWN STORE"}
	for i := 0; i < 23; i++ {
		lines = append(lines, "filler line text here")
	}
	lines = append(lines, "100.00", "200.00", "300.00", "400.00", "500.00", "600.00")
	lines = append(lines, "NAME A  11.00")
	lines = append(lines, "NAME B  22.00")

	rec := p.Extract(asLines(lines...))
	if rec.ReceiptType != model.PharmacyColumn || rec.TypeConfidence != model.Medium {
		t.Fatalf("receipt_type = (%s, %s), want (pharmacy_column, Medium)", rec.ReceiptType, rec.TypeConfidence)
	}
}

func TestEmptyInputReturnsEmptyRecord(t *testing.T) {
	p := New(false)
	rec := p.Extract(nil)
	if len(rec.Items) != 0 {
		t.Fatalf("expected no items, got %+v", rec.Items)
	}
	if rec.StoreName != nil || rec.TotalAmount != nil {
		t.Fatalf("expected an empty record, got %+v", rec)
	}
}

func TestExtractIsPureAndIdempotent(t *testing.T) {
	p := New(false)
	lines := asLines(
		"JOLLIBEE", "ORDER # 1", "DINE IN",
		"CHICKENJOY   69.00", "TOTAL", "69.00",
	)
	first := p.Extract(lines)
	second := p.Extract(lines)
	if first.ReceiptType != second.ReceiptType || len(first.Items) != len(second.Items) {
		t.Fatalf("Extract is not idempotent: %+v vs %+v", first, second)
	}
	if first.TotalAmount.String() != second.TotalAmount.String() {
		t.Fatalf("Extract total mismatch across calls: %v vs %v", first.TotalAmount, second.TotalAmount)
	}
}

func TestNoDoubleUseOfLineIndices(t *testing.T) {
	p := New(false)
	rec := p.Extract(asLines(
		"MERCURY DRUG - RIZAL BANANGONAN EM COMPLEX",
		"VAT REG TIN : 000-388-474-00778",
		"PA99S/S",
		"1220.00T",
		"NIDO5+PDR MLK2kg",
		"480036140523",
		"90.00T",
		"GREEN COF MX219",
		"TOTAL",
		"1310.00",
		"CASH",
		"2000.00",
		"CHANGE",
		"690.00",
	))
	seen := map[int]bool{}
	for _, it := range rec.Items {
		idx := it.SourceIndex()
		if seen[idx] {
			t.Fatalf("source index %d used by more than one item", idx)
		}
		seen[idx] = true
	}
}

func containsSub(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
