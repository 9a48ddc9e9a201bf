package models

import (
	"time"

	"gorm.io/gorm"
)

type Expense struct {
	gorm.Model
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
}
