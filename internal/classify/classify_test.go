package classify

import (
	"testing"

	"github.com/facturaIA/receipt-extraction-core/internal/model"
)

func TestClassifyChainSignalPharmacy(t *testing.T) {
	lines := []string{"MERCURY DRUG CORPORATION", "PA#123456", "BIOGESIC 500MG", "199.00"}
	rt, conf := Classify(lines)
	if rt != model.PharmacyColumn || conf != model.High {
		t.Fatalf("Classify = (%s, %s), want (pharmacy_column, High)", rt, conf)
	}
}

func TestClassifyChainSignalFastFood(t *testing.T) {
	lines := []string{"JOLLIBEE FOODS CORP", "ORDER#45", "1 CHICKENJOY   89.00"}
	rt, conf := Classify(lines)
	if rt != model.FastFood || conf != model.High {
		t.Fatalf("Classify = (%s, %s), want (fast_food, High)", rt, conf)
	}
}

func TestClassifyLayoutMarkerSupermarket(t *testing.T) {
	lines := []string{"SOME UNKNOWN STORE", "** 3 item(s) **"}
	rt, conf := Classify(lines)
	if rt != model.Supermarket || conf != model.High {
		t.Fatalf("Classify = (%s, %s), want (supermarket, High)", rt, conf)
	}
}

func TestClassifyStructuralFingerprintPharmacy(t *testing.T) {
	lines := []string{
		"SOME UNKNOWN STORE", "random line", "another line",
		"199.00", "299.00", "399.00",
	}
	rt, conf := Classify(lines)
	if rt != model.PharmacyColumn || conf != model.Medium {
		t.Fatalf("Classify = (%s, %s), want (pharmacy_column, Medium)", rt, conf)
	}
}

func TestClassifyFallsBackToGeneric(t *testing.T) {
	lines := []string{"SOME UNKNOWN STORE", "random line one", "random line two"}
	rt, conf := Classify(lines)
	if rt != model.Generic || conf != model.Low {
		t.Fatalf("Classify = (%s, %s), want (generic, Low)", rt, conf)
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	rt, conf := Classify(nil)
	if rt != model.Generic || conf != model.Low {
		t.Fatalf("Classify(nil) = (%s, %s), want (generic, Low)", rt, conf)
	}
}
