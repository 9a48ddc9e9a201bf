package database

import (
	"fmt"
	"log"

	"github.com/dhamma-seva/registration-api/internal/config"
	"github.com/dhamma-seva/registration-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// uniqueResourceColumns are the participant columns whose values are scarce
// within one course. Each gets a partial unique index scoped to the course,
// restricted to non-null values and non-cancelled rows, so the store itself
// is the authoritative guard against double allocation.
var uniqueResourceColumns = []string{
	"room_no",
	"dining_seat_no",
	"laundry_token_no",
	"mobile_locker_no",
	"valuables_locker_no",
	"pagoda_cell_no",
	"dhamma_hall_seat_no",
}

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

// Migrate runs AutoMigrate plus the raw partial unique indexes that gorm
// tags cannot express. Safe to run repeatedly; tests call it against
// in-memory databases.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Course{},
		&models.Participant{},
		&models.Room{},
		&models.Expense{},
		&models.StaffUser{},
		&models.APIKey{},
	)
	if err != nil {
		return err
	}

	for _, col := range uniqueResourceColumns {
		stmt := fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_course_%s ON participants(course_id, %s)
			 WHERE %s IS NOT NULL AND status != 'Cancelled' AND deleted_at IS NULL`,
			col, col, col)
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	// Tokens are issued once per arrival and never reused within a course.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_course_token_number ON participants(course_id, token_number)
		 WHERE token_number IS NOT NULL AND deleted_at IS NULL`).Error; err != nil {
		return err
	}

	// Confirmation codes are unique per course when present.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_course_conf_no ON participants(course_id, conf_no)
		 WHERE conf_no IS NOT NULL AND deleted_at IS NULL`).Error
}
