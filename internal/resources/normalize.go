// Package resources holds the allocation-side vocabulary: the bundle of
// physical assignments committed at onboarding, the sentinel rule that turns
// placeholder text into "no assignment", and the mapping from store
// uniqueness violations back to human resource names.
package resources

import "strings"

// sentinels are placeholder spellings that mean "no assignment". They are
// matched case- and whitespace-insensitively and stored as NULL, so two
// participants both marked "NA" never collide.
var sentinels = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"no":   true,
	"none": true,
	"-":    true,
}

// Normalize trims a raw field value and returns nil when it is a sentinel,
// otherwise a pointer to the trimmed value.
func Normalize(raw string) *string {
	v := strings.TrimSpace(raw)
	if sentinels[strings.ToLower(v)] {
		return nil
	}
	return &v
}

// Bundle is the set of physical assignments committed together when a
// participant is onboarded.
type Bundle struct {
	RoomNo            *string
	DiningSeatNo      *string
	DiningSeatType    *string
	LaundryTokenNo    *string
	MobileLockerNo    *string
	ValuablesLockerNo *string
	PagodaCellNo      *string
	DhammaHallSeatNo  *string
	SpecialSeating    *string
}

// Value returns the bundle's value for a constrained participant column, or
// "" when the column is unset or not part of the bundle.
func (b Bundle) Value(column string) string {
	var p *string
	switch column {
	case "room_no":
		p = b.RoomNo
	case "dining_seat_no":
		p = b.DiningSeatNo
	case "laundry_token_no":
		p = b.LaundryTokenNo
	case "mobile_locker_no":
		p = b.MobileLockerNo
	case "valuables_locker_no":
		p = b.ValuablesLockerNo
	case "pagoda_cell_no":
		p = b.PagodaCellNo
	case "dhamma_hall_seat_no":
		p = b.DhammaHallSeatNo
	}
	if p == nil {
		return ""
	}
	return *p
}

// NormalizeBundle applies the sentinel rule to every field of a raw bundle.
func NormalizeBundle(roomNo, diningSeatNo, diningSeatType, laundryTokenNo, mobileLockerNo, valuablesLockerNo, pagodaCellNo, dhammaHallSeatNo, specialSeating string) Bundle {
	return Bundle{
		RoomNo:            Normalize(roomNo),
		DiningSeatNo:      Normalize(diningSeatNo),
		DiningSeatType:    Normalize(diningSeatType),
		LaundryTokenNo:    Normalize(laundryTokenNo),
		MobileLockerNo:    Normalize(mobileLockerNo),
		ValuablesLockerNo: Normalize(valuablesLockerNo),
		PagodaCellNo:      Normalize(pagodaCellNo),
		DhammaHallSeatNo:  Normalize(dhammaHallSeatNo),
		SpecialSeating:    Normalize(specialSeating),
	}
}
