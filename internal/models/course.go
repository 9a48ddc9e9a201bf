package models

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	CourseName  string    `json:"course_name" gorm:"not null"`
	TeacherName string    `json:"teacher_name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
}

// Overlaps reports whether the two course date ranges intersect.
func (c Course) Overlaps(other Course) bool {
	return !c.StartDate.After(other.EndDate) && !c.EndDate.Before(other.StartDate)
}
