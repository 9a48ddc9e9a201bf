package resources

import "strings"

// columnNames maps participant table columns under uniqueness constraints to
// the resource name shown to the operator.
var columnNames = map[string]string{
	"room_no":             "room",
	"dining_seat_no":      "dining seat",
	"laundry_token_no":    "laundry token",
	"mobile_locker_no":    "mobile locker",
	"valuables_locker_no": "valuables locker",
	"pagoda_cell_no":      "meditation cell",
	"dhamma_hall_seat_no": "hall seat",
	"token_number":        "token number",
	"conf_no":             "confirmation number",
}

// IsUniqueViolation reports whether a store error is a uniqueness-constraint
// failure. SQLite reports "UNIQUE constraint failed: ..."; Postgres tags the
// error with SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value")
}

// ConflictColumn inspects a uniqueness-violation error and returns the
// participant column whose value collided, or "" when the column cannot be
// identified from the error text.
func ConflictColumn(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for col := range columnNames {
		if strings.Contains(msg, col) {
			return col
		}
	}
	return ""
}

// ResourceName translates a constrained column into the human resource name.
func ResourceName(column string) string {
	return columnNames[column]
}

// ConflictResource is ConflictColumn followed by ResourceName.
func ConflictResource(err error) string {
	return ResourceName(ConflictColumn(err))
}
