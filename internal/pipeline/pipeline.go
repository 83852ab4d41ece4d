// Package pipeline implements the T2 Orchestrator: classify, extract,
// validate, annotate, in that order, returning the final Record.
package pipeline

import (
	"strings"

	"github.com/facturaIA/receipt-extraction-core/internal/classify"
	"github.com/facturaIA/receipt-extraction-core/internal/extract"
	"github.com/facturaIA/receipt-extraction-core/internal/fields"
	"github.com/facturaIA/receipt-extraction-core/internal/model"
	"github.com/facturaIA/receipt-extraction-core/internal/repair"
	"github.com/facturaIA/receipt-extraction-core/internal/validate"
)

// Pipeline runs the extraction core over OCR line sequences. It holds no
// state across calls (§5) and is safe to call concurrently.
type Pipeline struct {
	validator   *validate.Validator
	repairLines bool
}

// New returns a Pipeline. When repairLines is true, each line's text is run
// through internal/repair before classification.
func New(repairLines bool) *Pipeline {
	return &Pipeline{validator: validate.NewValidator(), repairLines: repairLines}
}

// Extract turns raw OCR lines into a Record, per §4.T2.
func (p *Pipeline) Extract(lines []model.Line) model.Record {
	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		t := strings.TrimSpace(l.Text)
		if p.repairLines {
			t = repair.Repair(t)
		}
		if t == "" {
			continue
		}
		texts = append(texts, t)
	}
	if len(texts) == 0 {
		return model.Record{Items: []model.Item{}}
	}

	receiptType, typeConfidence := classify.Classify(texts)
	itemExtractor := extract.Factory(receiptType)
	items := itemExtractor(texts)

	rec := model.Record{
		Items:          items,
		ReceiptType:    receiptType,
		TypeConfidence: typeConfidence,
	}

	if storeName, ok := fields.StoreName(texts); ok {
		rec.StoreName = &storeName
	}
	if invoiceNumber, ok := fields.InvoiceNumber(texts); ok {
		rec.InvoiceNumber = &invoiceNumber
	}
	if date, ok := fields.Date(texts); ok {
		rec.Date = &date
	}
	if timeStr, ok := fields.Time(texts); ok {
		rec.Time = &timeStr
	}
	if total, ok := fields.Total(texts); ok {
		rec.TotalAmount = &total
	}
	if vat, ok := fields.Vat(texts); ok {
		rec.VATAmount = &vat
	}
	if tin, ok := fields.Tin(texts); ok {
		rec.TIN = &tin
	}

	onlyFirstForm := receiptType == model.Supermarket
	var statedCount *int
	if n, ok := fields.StatedItemCount(texts, onlyFirstForm); ok {
		statedCount = &n
	}

	rec = p.validator.Validate(rec, statedCount)
	rec.ExtractionConfidence = confidence(rec)
	return rec
}

// confidence computes extraction_confidence per §4.T2: starts at 1.0,
// subtracts weighted penalties for each field the pipeline failed to
// recover, floored at 0.
func confidence(r model.Record) float64 {
	c := 1.0
	if r.StoreName == nil {
		c -= 0.15
	}
	if r.TotalAmount == nil {
		c -= 0.25
	}
	if r.Date == nil {
		c -= 0.10
	}
	if len(r.Items) == 0 {
		c -= 0.20
	}
	if r.InvoiceNumber == nil {
		c -= 0.05
	}
	if c < 0 {
		c = 0
	}
	return c
}
