package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dhamma-seva/registration-api/internal/models"
	"github.com/dhamma-seva/registration-api/internal/resources"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ImportHandler bulk-loads participant rosters. Re-importing a roster must
// never touch a participant that already exists, so matching rows are
// counted and skipped rather than merged.
type ImportHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewImportHandler(db *gorm.DB, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{db: db, log: log}
}

type ImportStudent struct {
	Name        string `json:"name" doc:"Full name; rows with an empty name are ignored"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Age         *int   `json:"age,omitempty"`
	Gender      string `json:"gender,omitempty"`
	ConfNo      string `json:"confNo,omitempty"`
	CoursesInfo string `json:"coursesInfo,omitempty"`
}

type ImportRequest struct {
	ID   uint `path:"id" doc:"Course ID"`
	Body struct {
		Students []ImportStudent `json:"students" required:"true"`
	}
}

type ImportResponse struct {
	Body struct {
		Added   int `json:"added"`
		Skipped int `json:"skipped"`
	}
}

// HandleImport inserts new participants and skips duplicates. A row is a
// duplicate when the course already has a participant with the same name
// (case-insensitive) or the same confirmation code. The whole import runs in
// one transaction: either every new row lands or none do.
func (h *ImportHandler) HandleImport(ctx context.Context, input *ImportRequest) (*ImportResponse, error) {
	var course models.Course
	if err := h.db.First(&course, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Course not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load course: " + err.Error())
	}

	added, skipped := 0, 0
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.Participant
		if err := tx.Where("course_id = ?", course.ID).Find(&existing).Error; err != nil {
			return err
		}

		names := make(map[string]bool, len(existing))
		confNos := make(map[string]bool, len(existing))
		for _, p := range existing {
			names[strings.ToLower(strings.TrimSpace(p.FullName))] = true
			if p.ConfNo != nil {
				confNos[*p.ConfNo] = true
			}
		}

		for _, row := range input.Body.Students {
			name := strings.TrimSpace(row.Name)
			if name == "" {
				continue
			}

			confNo := resources.Normalize(row.ConfNo)
			if names[strings.ToLower(name)] || (confNo != nil && confNos[*confNo]) {
				skipped++
				continue
			}

			participant := models.Participant{
				CourseID:    course.ID,
				FullName:    name,
				ConfNo:      confNo,
				Status:      models.StatusNoResponse,
				PhoneNumber: row.Phone,
				Email:       row.Email,
				Age:         row.Age,
				Gender:      row.Gender,
				CoursesInfo: row.CoursesInfo,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}

			names[strings.ToLower(name)] = true
			if confNo != nil {
				confNos[*confNo] = true
			}
			added++
		}

		return nil
	})

	if err != nil {
		return nil, asStatusError(err, "Import failed")
	}

	h.log.Info().
		Uint("course_id", course.ID).
		Int("added", added).
		Int("skipped", skipped).
		Msg("roster imported")

	res := &ImportResponse{}
	res.Body.Added = added
	res.Body.Skipped = skipped
	return res, nil
}
