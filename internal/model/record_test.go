package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestItemCountSumsQty(t *testing.T) {
	r := Record{
		Items: []Item{
			NewItem("COKE", decimal.NewFromFloat(45), 0),
			NewItem("SPRITE", decimal.NewFromFloat(45), 1),
		},
	}
	r.Items[0].Qty = 3
	r.Items[1].Qty = 2
	if got := r.ItemCount(); got != 5 {
		t.Fatalf("ItemCount() = %d, want 5", got)
	}
}

func TestHasVAT(t *testing.T) {
	r := Record{}
	if r.HasVAT() {
		t.Fatal("HasVAT() should be false with nil VATAmount")
	}
	amt := decimal.NewFromFloat(12.5)
	r.VATAmount = &amt
	if !r.HasVAT() {
		t.Fatal("HasVAT() should be true once VATAmount is set")
	}
}

func TestFormatPeso(t *testing.T) {
	cases := []struct {
		amt  string
		want string
	}{
		{"1310", "₱1,310.00"},
		{"45.5", "₱45.50"},
		{"1000000.25", "₱1,000,000.25"},
		{"9", "₱9.00"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.amt)
		if err != nil {
			t.Fatalf("bad test fixture %q: %v", c.amt, err)
		}
		got := formatPeso(&d)
		if got == nil || *got != c.want {
			t.Errorf("formatPeso(%s) = %v, want %s", c.amt, got, c.want)
		}
	}
	if got := formatPeso(nil); got != nil {
		t.Errorf("formatPeso(nil) = %v, want nil", got)
	}
}

func TestMarshalJSONNeverNullsItems(t *testing.T) {
	r := Record{ReceiptType: Generic, TypeConfidence: Low}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	items, ok := out["items"].([]interface{})
	if !ok {
		t.Fatalf("items field is not an array: %v", out["items"])
	}
	if items == nil {
		t.Fatal("items must never serialize as null")
	}
}

func TestMarshalJSONFormatsTotalAsPesoString(t *testing.T) {
	total := decimal.NewFromFloat(1310)
	r := Record{TotalAmount: &total, ReceiptType: Generic, TypeConfidence: Low}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if out["total_amount"] != "₱1,310.00" {
		t.Errorf("total_amount = %v, want ₱1,310.00", out["total_amount"])
	}
}
