package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dhamma-seva/registration-api/internal/models"
	"gorm.io/gorm"
)

// StatsHandler derives read-only occupancy and demographic summaries for a
// course. No state is mutated here.
type StatsHandler struct {
	db *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

// aoClasses are the recognised confirmation-code prefixes: old/new/server
// crossed with male/female.
var aoClasses = []string{"OM", "OF", "NM", "NF", "SM", "SF"}

type LanguageStats struct {
	Count  int `json:"count"`
	Male   int `json:"male"`
	Female int `json:"female"`
}

type StatsRequest struct {
	ID uint `path:"id" doc:"Course ID"`
}

type StatsResponse struct {
	Body struct {
		Total          int                       `json:"total"`
		ByStatus       map[string]int            `json:"byStatus"`
		ByStatusGender map[string]map[string]int `json:"byStatusGender"`
		ByConfPrefix   map[string]int            `json:"byConfPrefix"`
		ByLanguage     map[string]LanguageStats  `json:"byLanguage"`
	}
}

func (h *StatsHandler) HandleStats(ctx context.Context, input *StatsRequest) (*StatsResponse, error) {
	var course models.Course
	if err := h.db.First(&course, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Course not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load course: " + err.Error())
	}

	var participants []models.Participant
	if err := h.db.Where("course_id = ?", course.ID).Find(&participants).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load participants: " + err.Error())
	}

	res := &StatsResponse{}
	res.Body.Total = len(participants)
	res.Body.ByStatus = map[string]int{}
	res.Body.ByStatusGender = map[string]map[string]int{}
	res.Body.ByConfPrefix = map[string]int{}
	res.Body.ByLanguage = map[string]LanguageStats{}

	for _, cls := range aoClasses {
		res.Body.ByConfPrefix[cls] = 0
	}

	for _, p := range participants {
		status := string(p.Status)
		res.Body.ByStatus[status]++

		gender := normalizeGender(p.Gender)
		if res.Body.ByStatusGender[status] == nil {
			res.Body.ByStatusGender[status] = map[string]int{}
		}
		res.Body.ByStatusGender[status][gender]++

		if p.Status != models.StatusAttending {
			continue
		}

		if p.ConfNo != nil {
			prefix := strings.ToUpper(strings.TrimSpace(*p.ConfNo))
			if len(prefix) >= 2 {
				prefix = prefix[:2]
				if _, known := res.Body.ByConfPrefix[prefix]; known {
					res.Body.ByConfPrefix[prefix]++
				}
			}
		}

		lang := p.DiscourseLanguage
		if lang == "" {
			lang = "English"
		}
		stats := res.Body.ByLanguage[lang]
		stats.Count++
		switch gender {
		case "Male":
			stats.Male++
		case "Female":
			stats.Female++
		}
		res.Body.ByLanguage[lang] = stats
	}

	return res, nil
}

func normalizeGender(raw string) string {
	g := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(g, "M"):
		return "Male"
	case strings.HasPrefix(g, "F"):
		return "Female"
	}
	return "Unspecified"
}
