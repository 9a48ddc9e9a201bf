package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dhamma-seva/registration-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CourseHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewCourseHandler(db *gorm.DB, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{db: db, log: log}
}

type CreateCourseRequest struct {
	Body struct {
		CourseName  string    `json:"courseName" required:"true"`
		TeacherName string    `json:"teacherName,omitempty"`
		StartDate   time.Time `json:"startDate" required:"true"`
		EndDate     time.Time `json:"endDate" required:"true"`
	}
}

type CourseResponse struct {
	Body models.Course
}

func (h *CourseHandler) HandleCreateCourse(ctx context.Context, input *CreateCourseRequest) (*CourseResponse, error) {
	if input.Body.StartDate.After(input.Body.EndDate) {
		return nil, huma.Error400BadRequest("Start date cannot be after end date")
	}

	course := models.Course{
		CourseName:  input.Body.CourseName,
		TeacherName: input.Body.TeacherName,
		StartDate:   input.Body.StartDate,
		EndDate:     input.Body.EndDate,
	}
	if err := h.db.Create(&course).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create course: " + err.Error())
	}

	h.log.Info().Uint("course_id", course.ID).Str("name", course.CourseName).Msg("course created")
	return &CourseResponse{Body: course}, nil
}

type ListCoursesResponse struct {
	Body []models.Course
}

func (h *CourseHandler) HandleListCourses(ctx context.Context, input *struct{}) (*ListCoursesResponse, error) {
	var courses []models.Course
	if err := h.db.Order("start_date desc").Find(&courses).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list courses: " + err.Error())
	}
	return &ListCoursesResponse{Body: courses}, nil
}

type CourseParticipantsRequest struct {
	ID uint `path:"id" doc:"Course ID"`
}

type ParticipantListResponse struct {
	Body []models.Participant
}

func (h *CourseHandler) HandleListParticipants(ctx context.Context, input *CourseParticipantsRequest) (*ParticipantListResponse, error) {
	if err := h.requireCourse(input.ID); err != nil {
		return nil, err
	}

	var participants []models.Participant
	if err := h.db.Where("course_id = ?", input.ID).Order("full_name asc").Find(&participants).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list participants: " + err.Error())
	}
	return &ParticipantListResponse{Body: participants}, nil
}

type ResetCourseResponse struct {
	Body struct {
		ExpensesDeleted     int64 `json:"expensesDeleted"`
		ParticipantsDeleted int64 `json:"participantsDeleted"`
	}
}

// HandleResetCourse clears a course's expenses and participants in one
// transaction. Deleting participants without their expenses would orphan the
// ledger rows, so either both go or neither does.
func (h *CourseHandler) HandleResetCourse(ctx context.Context, input *CourseParticipantsRequest) (*ResetCourseResponse, error) {
	if err := h.requireCourse(input.ID); err != nil {
		return nil, err
	}

	res := &ResetCourseResponse{}
	err := h.db.Transaction(func(tx *gorm.DB) error {
		expenses := tx.Where("course_id = ?", input.ID).Delete(&models.Expense{})
		if expenses.Error != nil {
			return expenses.Error
		}
		participants := tx.Where("course_id = ?", input.ID).Delete(&models.Participant{})
		if participants.Error != nil {
			return participants.Error
		}
		res.Body.ExpensesDeleted = expenses.RowsAffected
		res.Body.ParticipantsDeleted = participants.RowsAffected
		return nil
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to reset course: " + err.Error())
	}

	h.log.Info().
		Uint("course_id", input.ID).
		Int64("participants", res.Body.ParticipantsDeleted).
		Msg("course reset")
	return res, nil
}

type NoShowSweepResponse struct {
	Body struct {
		Marked int64 `json:"marked"`
	}
}

// HandleNoShowSweep bulk-marks participants who never responded as no-shows.
// Run after the course's arrival deadline has passed.
func (h *CourseHandler) HandleNoShowSweep(ctx context.Context, input *CourseParticipantsRequest) (*NoShowSweepResponse, error) {
	if err := h.requireCourse(input.ID); err != nil {
		return nil, err
	}

	result := h.db.Model(&models.Participant{}).
		Where("course_id = ? AND status = ?", input.ID, models.StatusNoResponse).
		Update("status", models.StatusNoShow)
	if result.Error != nil {
		return nil, huma.Error500InternalServerError("Failed to sweep no-shows: " + result.Error.Error())
	}

	res := &NoShowSweepResponse{}
	res.Body.Marked = result.RowsAffected
	return res, nil
}

func (h *CourseHandler) requireCourse(id uint) error {
	var course models.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return huma.Error404NotFound("Course not found")
		}
		return huma.Error500InternalServerError("Failed to load course: " + err.Error())
	}
	return nil
}
