// Package model defines the data shapes exchanged between the OCR layer
// and the receipt extraction pipeline, and the pipeline's public output.
package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Point is one vertex of a Line's bounding polygon, in OCR pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Line is a single OCR-produced text fragment. The extraction core reads
// only Text; Confidence and BBox are carried for pass-through to upstream
// collaborators and are never consulted by the core itself.
type Line struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	BBox       [4]Point `json:"bbox"`
}

// Item is one parsed receipt line item.
type Item struct {
	Name       string           `json:"name"`
	Price      decimal.Decimal  `json:"price"`
	Qty        int              `json:"qty"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	SKU        *string          `json:"sku,omitempty"`

	// sourceIndex is the OCR line index of the item's name line. It exists
	// only to restore receipt order after the multi-pass extractors emit
	// items out of order; it is never serialized.
	sourceIndex int
}

// NewItem builds an Item, defaulting Qty to 1 and rounding Price to 2 places.
func NewItem(name string, price decimal.Decimal, sourceIndex int) Item {
	return Item{
		Name:        name,
		Price:       price.Round(2),
		Qty:         1,
		sourceIndex: sourceIndex,
	}
}

// SourceIndex returns the OCR line index this item's name was read from.
func (it Item) SourceIndex() int { return it.sourceIndex }

// WithSourceIndex returns a copy of it with sourceIndex set, leaving it
// unchanged. The extractors set the index through NewItem instead.
func (it Item) WithSourceIndex(idx int) Item {
	it.sourceIndex = idx
	return it
}

// Confidence is the receipt classifier's confidence in its chosen type.
type Confidence string

const (
	Low    Confidence = "Low"
	Medium Confidence = "Medium"
	High   Confidence = "High"
)

// ReceiptType is the layout family chosen by the classifier.
type ReceiptType string

const (
	PharmacyColumn   ReceiptType = "pharmacy_column"
	Supermarket      ReceiptType = "supermarket"
	FastFood         ReceiptType = "fast_food"
	DepartmentStore  ReceiptType = "department_store"
	InlinePrice      ReceiptType = "inline_price"
	Generic          ReceiptType = "generic"
)

// Record is the public output of the extraction pipeline. Records are
// immutable after construction: nothing in this package mutates a Record
// once it has been built.
type Record struct {
	StoreName      *string         `json:"-"`
	InvoiceNumber  *string         `json:"-"`
	Date           *string         `json:"date"`
	Time           *string         `json:"time"`
	TotalAmount    *decimal.Decimal `json:"-"`
	VATAmount      *decimal.Decimal `json:"-"`
	TIN            *string         `json:"tin"`
	Items          []Item          `json:"items"`
	ReceiptType    ReceiptType     `json:"receipt_type"`
	TypeConfidence Confidence      `json:"receipt_type_confidence"`

	ExtractionConfidence float64 `json:"extraction_confidence"`
	ExtractionWarning    *string `json:"extraction_warning"`
	StatedItemCount      *int    `json:"-"`
}

// ItemCount sums Qty across all items, per §3's item_count definition.
func (r Record) ItemCount() int {
	n := 0
	for _, it := range r.Items {
		n += it.Qty
	}
	return n
}

// HasVAT reports whether a VAT amount was recovered.
func (r Record) HasVAT() bool { return r.VATAmount != nil }

// recordJSON is the wire shape of Record: money fields become formatted
// peso strings per §6 ("₱{n:,.2f}", no other representation), and fields
// computed from Items (item_count, has_vat) are materialized here rather
// than stored redundantly on Record itself.
type recordJSON struct {
	StoreName            *string     `json:"store_name"`
	InvoiceNumber         *string     `json:"invoice_number"`
	Date                  *string     `json:"date"`
	Time                  *string     `json:"time"`
	TotalAmount           *string     `json:"total_amount"`
	VATAmount             *string     `json:"vat_amount"`
	TIN                   *string     `json:"tin"`
	ItemCount             int         `json:"item_count"`
	HasVAT                bool        `json:"has_vat"`
	Items                 []Item      `json:"items"`
	ReceiptType           ReceiptType `json:"receipt_type"`
	ReceiptTypeConfidence Confidence  `json:"receipt_type_confidence"`
	ExtractionConfidence  float64     `json:"extraction_confidence"`
	ExtractionWarning     *string     `json:"extraction_warning"`
}

// MarshalJSON renders the formatted, public shape of Record.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		StoreName:             r.StoreName,
		InvoiceNumber:         r.InvoiceNumber,
		Date:                  r.Date,
		Time:                  r.Time,
		TotalAmount:           formatPeso(r.TotalAmount),
		VATAmount:             formatPeso(r.VATAmount),
		TIN:                   r.TIN,
		ItemCount:             r.ItemCount(),
		HasVAT:                r.HasVAT(),
		Items:                 r.Items,
		ReceiptType:           r.ReceiptType,
		ReceiptTypeConfidence: r.TypeConfidence,
		ExtractionConfidence:  r.ExtractionConfidence,
		ExtractionWarning:     r.ExtractionWarning,
	}
	if out.Items == nil {
		out.Items = []Item{}
	}
	return json.Marshal(out)
}

// formatPeso renders d as "₱{n:,.2f}", e.g. 1310 -> "₱1,310.00".
func formatPeso(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	whole := d.IntPart()
	frac := d.Sub(decimal.NewFromInt(whole)).Abs().Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	grouped := groupThousands(whole)
	return strPtr(fmt.Sprintf("%s₱%s.%02d", sign, grouped, frac))
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	rem := len(s) % 3
	if rem > 0 {
		out = append(out, s[:rem]...)
	}
	for i := rem; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

func strPtr(s string) *string { return &s }
