package models

import (
	"strings"

	"gorm.io/gorm"
)

// Status is the closed set of participant workflow states. Historical data
// used a handful of free-form synonyms; NormalizeStatus folds those in at
// load time so runtime code only ever branches on these constants.
type Status string

const (
	StatusNoResponse  Status = "No Response"
	StatusInProcess   Status = "In Process"
	StatusGateCheckIn Status = "Gate Check-In"
	StatusAttending   Status = "Attending"
	StatusCancelled   Status = "Cancelled"
	StatusNoShow      Status = "No Show"
)

// Process stages of the intake pipeline.
const (
	StageRegistered  = 0
	StageTokenIssued = 1
	StageBriefed     = 2
	StageInterviewed = 3
	StageOnboarded   = 4
)

// NormalizeStatus maps legacy status spellings ("Arrived", "Checked In",
// "Pending", ...) onto the closed enum. Unknown values fall back to
// No Response.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "no response", "pending", "":
		return StatusNoResponse
	case "in process", "processing":
		return StatusInProcess
	case "gate check-in", "gate checkin", "at gate":
		return StatusGateCheckIn
	case "attending", "arrived", "checked in", "checked-in":
		return StatusAttending
	case "cancelled", "canceled":
		return StatusCancelled
	case "no show", "no-show":
		return StatusNoShow
	}
	return StatusNoResponse
}

// Occupying reports whether a participant in this status is physically
// holding their assigned resources.
func (s Status) Occupying() bool {
	return s == StatusAttending || s == StatusGateCheckIn
}

type Participant struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	Course   Course `json:"-" gorm:"foreignKey:CourseID"`

	FullName string  `json:"full_name" gorm:"not null"`
	ConfNo   *string `json:"conf_no"`

	Status       Status `json:"status" gorm:"default:'No Response'"`
	ProcessStage int    `json:"process_stage" gorm:"default:0"`
	TokenNumber  *int   `json:"token_number"`

	// Resource assignments are plain values, not foreign keys. Deleting a
	// room from the catalog leaves these untouched; readers must tolerate
	// stale strings.
	RoomNo            *string `json:"room_no"`
	DiningSeatNo      *string `json:"dining_seat_no"`
	DiningSeatType    *string `json:"dining_seat_type"`
	LaundryTokenNo    *string `json:"laundry_token_no"`
	MobileLockerNo    *string `json:"mobile_locker_no"`
	ValuablesLockerNo *string `json:"valuables_locker_no"`
	PagodaCellNo      *string `json:"pagoda_cell_no"`
	DhammaHallSeatNo  *string `json:"dhamma_hall_seat_no"`
	SpecialSeating    *string `json:"special_seating"`

	Gender            string `json:"gender"`
	Age               *int   `json:"age"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phone_number"`
	DiscourseLanguage string `json:"discourse_language" gorm:"default:'English'"`
	EveningFood       string `json:"evening_food"`
	MedicalInfo       string `json:"medical_info"`
	TeacherNotes      string `json:"teacher_notes"`
	LaptopDetails     string `json:"laptop_details"`
	CoursesInfo       string `json:"courses_info"`
}
