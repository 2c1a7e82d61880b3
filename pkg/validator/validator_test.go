package validator

import "testing"

type sample struct {
	Brand    string   `validate:"notblank"`
	Price    *float64 `validate:"required,gte=0"`
	Quantity int      `validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	price := 10.0
	if errs := ValidateStruct(&sample{Brand: "Ray-Ban", Price: &price, Quantity: 1}); len(errs) != 0 {
		t.Fatalf("expected valid, got %+v", errs[0])
	}

	errs := ValidateStruct(&sample{Brand: "   ", Quantity: 0})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(errs))
	}
	if errs[0].FailedField != "sample.Brand" || errs[0].Tag != "notblank" {
		t.Fatalf("unexpected first error %+v", errs[0])
	}
	if errs[1].Tag != "required" || errs[2].Tag != "gt" || errs[2].Value != "0" {
		t.Fatalf("unexpected errors %+v %+v", errs[1], errs[2])
	}

	negative := -1.0
	errs = ValidateStruct(&sample{Brand: "x", Price: &negative, Quantity: 2})
	if len(errs) != 1 || errs[0].Tag != "gte" {
		t.Fatalf("expected gte failure, got %+v", errs)
	}
}
