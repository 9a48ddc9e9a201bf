package resources

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want *string
	}{
		{"A1", strPtr("A1")},
		{"  A1  ", strPtr("A1")},
		{"NA", nil},
		{"n/a", nil},
		{" None ", nil},
		{"-", nil},
		{"no", nil},
		{"", nil},
		{"Nook", strPtr("Nook")},
	}

	for _, c := range cases {
		got := Normalize(c.in)
		if c.want == nil {
			if got != nil {
				t.Errorf("Normalize(%q) = %q, want nil", c.in, *got)
			}
			continue
		}
		if got == nil {
			t.Errorf("Normalize(%q) = nil, want %q", c.in, *c.want)
			continue
		}
		if *got != *c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, *got, *c.want)
		}
	}
}

func TestNormalizeBundle(t *testing.T) {
	b := NormalizeBundle(" R-12 ", "NA", "", "L5", "n/a", "-", "P3", "none", "")

	if b.RoomNo == nil || *b.RoomNo != "R-12" {
		t.Errorf("RoomNo not normalized: %v", b.RoomNo)
	}
	if b.DiningSeatNo != nil {
		t.Errorf("expected nil DiningSeatNo, got %q", *b.DiningSeatNo)
	}
	if b.LaundryTokenNo == nil || *b.LaundryTokenNo != "L5" {
		t.Errorf("LaundryTokenNo not kept: %v", b.LaundryTokenNo)
	}
	if b.MobileLockerNo != nil || b.ValuablesLockerNo != nil || b.DhammaHallSeatNo != nil {
		t.Error("sentinel locker/seat fields should be nil")
	}
	if b.PagodaCellNo == nil || *b.PagodaCellNo != "P3" {
		t.Errorf("PagodaCellNo not kept: %v", b.PagodaCellNo)
	}
}

func TestConflictResource(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New("UNIQUE constraint failed: participants.room_no"), "room"},
		{errors.New("UNIQUE constraint failed: participants.dining_seat_no"), "dining seat"},
		{errors.New("UNIQUE constraint failed: participants.pagoda_cell_no"), "meditation cell"},
		{errors.New("ERROR: duplicate key value violates unique constraint \"idx_course_laundry_token_no\" (SQLSTATE 23505)"), "laundry token"},
		{errors.New("UNIQUE constraint failed: participants.conf_no"), "confirmation number"},
		{errors.New("something else entirely"), ""},
	}

	for _, c := range cases {
		if got := ConflictResource(c.err); got != c.want {
			t.Errorf("ConflictResource(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: participants.room_no")) {
		t.Error("sqlite message not detected")
	}
	if !IsUniqueViolation(errors.New("SQLSTATE 23505")) {
		t.Error("postgres SQLSTATE not detected")
	}
	if IsUniqueViolation(errors.New("disk I/O error")) {
		t.Error("unrelated error misclassified")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil misclassified")
	}
}

func strPtr(s string) *string { return &s }
