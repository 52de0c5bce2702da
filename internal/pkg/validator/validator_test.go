package validator

import "testing"

func TestSlotTimeTag(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"09:00", true},
		{"23:59", true},
		{"00:00", true},
		{"", true}, // optional slots skip the format check
		{"24:00", false},
		{"9:00", false},
		{"09:60", false},
		{"2pm", false},
	}

	for _, tt := range tests {
		err := ValidateVar(tt.value, "slot_time")
		if (err == nil) != tt.valid {
			t.Errorf("slot_time(%q): expected valid=%v, got err=%v", tt.value, tt.valid, err)
		}
	}
}

func TestBookingDateTag(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"2026-09-12", true},
		{"2026-12-31", true},
		{"2026-13-01", false},
		{"2026-00-10", false},
		{"2026-09-32", false},
		{"12/09/2026", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidateVar(tt.value, "booking_date")
		if (err == nil) != tt.valid {
			t.Errorf("booking_date(%q): expected valid=%v, got err=%v", tt.value, tt.valid, err)
		}
	}
}

func TestStatusTags(t *testing.T) {
	for _, v := range []string{"pending", "confirmed", "cancelled"} {
		if err := ValidateVar(v, "booking_status"); err != nil {
			t.Errorf("booking_status(%q) should be valid: %v", v, err)
		}
	}
	if err := ValidateVar("archived", "booking_status"); err == nil {
		t.Error("booking_status(archived) should fail")
	}

	for _, v := range []string{"unpaid", "paid"} {
		if err := ValidateVar(v, "payment_status"); err != nil {
			t.Errorf("payment_status(%q) should be valid: %v", v, err)
		}
	}
	if err := ValidateVar("refunded", "payment_status"); err == nil {
		t.Error("payment_status(refunded) should fail")
	}
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	type form struct {
		ServiceID string `json:"serviceId" validate:"required,uuid"`
		Email     string `json:"email" validate:"required,email"`
	}

	errs := Validate(&form{ServiceID: "nope", Email: "not-an-email"})
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	if _, ok := errs["serviceId"]; !ok {
		t.Errorf("expected serviceId key, got %v", errs)
	}
	if errs["email"] != "Invalid email format" {
		t.Errorf("unexpected email message: %q", errs["email"])
	}
}
