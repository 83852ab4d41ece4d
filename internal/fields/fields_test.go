package fields

import "testing"

func TestStoreNameSkipsDigitsAndPrices(t *testing.T) {
	lines := []string{"000388474", "199.00", "MERCURY DRUG STORE #123", "ADDRESS LINE"}
	got, ok := StoreName(lines)
	if !ok || got != "MERCURY DRUG STORE #123" {
		t.Fatalf("StoreName = (%q, %v), want MERCURY DRUG STORE #123", got, ok)
	}
}

func TestInvoiceNumberPrefersPrimaryOverTXN(t *testing.T) {
	lines := []string{"INVOICE#110703137533", "TXN#110855"}
	got, ok := InvoiceNumber(lines)
	if !ok || got != "110703137533" {
		t.Fatalf("InvoiceNumber = (%q, %v), want 110703137533", got, ok)
	}
}

func TestInvoiceNumberFallsBackToTXN(t *testing.T) {
	lines := []string{"some random line", "TXN#110855"}
	got, ok := InvoiceNumber(lines)
	if !ok || got != "110855" {
		t.Fatalf("InvoiceNumber = (%q, %v), want 110855", got, ok)
	}
}

func TestDateRejectsRangeStart(t *testing.T) {
	lines := []string{"Accreditation valid 08/01/20-07/31/25"}
	if _, ok := Date(lines); ok {
		t.Fatal("Date must reject a match immediately followed by '-'")
	}
}

func TestDateStandaloneNumeric(t *testing.T) {
	lines := []string{"08/15/2025"}
	got, ok := Date(lines)
	if !ok || got != "08/15/2025" {
		t.Fatalf("Date = (%q, %v), want 08/15/2025", got, ok)
	}
}

func TestTxnDateRecoversSpaceSeparatedForm(t *testing.T) {
	got, ok := txnDate("TXN#071432 11-01-25 09:29P RACKY")
	if !ok || got != "11-01-25" {
		t.Fatalf("txnDate = (%q, %v), want 11-01-25", got, ok)
	}
}

func TestTxnDateRecoversRunInForm(t *testing.T) {
	got, ok := txnDate("TXN#93179911-13-25 03:36P p1lar")
	if !ok || got != "11-13-25" {
		t.Fatalf("txnDate = (%q, %v), want 11-13-25", got, ok)
	}
}

func TestTimeRejectsDigitPrecededMatch(t *testing.T) {
	got, ok := Time([]string{"209:15PM"})
	if ok {
		t.Fatalf("Time should reject a match preceded by a digit, got %q", got)
	}
}

func TestTimeAcceptsSingleLetterSuffix(t *testing.T) {
	got, ok := Time([]string{"Transaction at 02:15P"})
	if !ok || got != "02:15P" {
		t.Fatalf("Time = (%q, %v), want 02:15P", got, ok)
	}
}

func TestTotalInlineWinsOverSubtotal(t *testing.T) {
	lines := []string{"SUBTOTAL 200.00", "GRAND TOTAL: 180.00"}
	got, ok := Total(lines)
	if !ok || got.String() != "180" {
		t.Fatalf("Total = (%v, %v), want 180", got, ok)
	}
}

func TestTotalSplitLineFallback(t *testing.T) {
	lines := []string{"TOTAL", "199.00"}
	got, ok := Total(lines)
	if !ok || got.String() != "199" {
		t.Fatalf("Total = (%v, %v), want 199", got, ok)
	}
}

func TestStatedItemCountFirstForm(t *testing.T) {
	n, ok := StatedItemCount([]string{"** 3 item(s) **"}, false)
	if !ok || n != 3 {
		t.Fatalf("StatedItemCount = (%d, %v), want 3", n, ok)
	}
}

func TestStatedItemCountOnlyFirstFormSkipsItemsPurchased(t *testing.T) {
	n, ok := StatedItemCount([]string{"ITEMS PURCHASED: 7"}, true)
	if ok {
		t.Fatalf("StatedItemCount with onlyFirstForm should not match ITEMS PURCHASED, got %d", n)
	}
}

func TestStatedItemCountItemsPurchasedFallback(t *testing.T) {
	n, ok := StatedItemCount([]string{"ITEMS PURCHASED: 7"}, false)
	if !ok || n != 7 {
		t.Fatalf("StatedItemCount = (%d, %v), want 7", n, ok)
	}
}
