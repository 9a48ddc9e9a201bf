package handlers

import (
	"testing"
	"time"

	"github.com/dhamma-seva/registration-api/internal/database"
	"github.com/dhamma-seva/registration-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func makeCourse(t *testing.T, db *gorm.DB, name string, start, end time.Time) models.Course {
	t.Helper()

	course := models.Course{CourseName: name, StartDate: start, EndDate: end}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}

func makeParticipant(t *testing.T, db *gorm.DB, courseID uint, name string) models.Participant {
	t.Helper()

	participant := models.Participant{
		CourseID: courseID,
		FullName: name,
		Status:   models.StatusNoResponse,
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("failed to create participant %s: %v", name, err)
	}
	return participant
}

func day(n int) time.Time {
	return time.Date(2026, 3, n, 0, 0, 0, 0, time.UTC)
}

func str(s string) *string { return &s }
