package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dhamma-seva/registration-api/internal/models"
	"github.com/dhamma-seva/registration-api/internal/resources"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ParticipantHandler covers direct registration and record edits outside the
// intake pipeline.
type ParticipantHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewParticipantHandler(db *gorm.DB, log zerolog.Logger) *ParticipantHandler {
	return &ParticipantHandler{db: db, log: log}
}

type CreateParticipantRequest struct {
	Body struct {
		CourseID    uint   `json:"courseId" required:"true"`
		FullName    string `json:"fullName" required:"true" minLength:"1"`
		ConfNo      string `json:"confNo,omitempty"`
		Phone       string `json:"phone,omitempty"`
		Email       string `json:"email,omitempty"`
		Age         *int   `json:"age,omitempty"`
		Gender      string `json:"gender,omitempty"`
		CoursesInfo string `json:"coursesInfo,omitempty"`
	}
}

func (h *ParticipantHandler) HandleCreateParticipant(ctx context.Context, input *CreateParticipantRequest) (*ParticipantResponse, error) {
	var course models.Course
	if err := h.db.First(&course, input.Body.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Course not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load course: " + err.Error())
	}

	participant := models.Participant{
		CourseID:    course.ID,
		FullName:    input.Body.FullName,
		ConfNo:      resources.Normalize(input.Body.ConfNo),
		Status:      models.StatusNoResponse,
		PhoneNumber: input.Body.Phone,
		Email:       input.Body.Email,
		Age:         input.Body.Age,
		Gender:      input.Body.Gender,
		CoursesInfo: input.Body.CoursesInfo,
	}
	if err := h.db.Create(&participant).Error; err != nil {
		if resources.IsUniqueViolation(err) {
			return nil, conflictError("confirmation number", input.Body.ConfNo,
				"Confirmation number "+input.Body.ConfNo+" is already registered for this course")
		}
		return nil, huma.Error500InternalServerError("Failed to create participant: " + err.Error())
	}

	return &ParticipantResponse{Body: participant}, nil
}

type UpdateParticipantRequest struct {
	ID   uint `path:"id" doc:"Participant ID"`
	Body struct {
		FullName          *string `json:"fullName,omitempty"`
		ConfNo            *string `json:"confNo,omitempty"`
		Phone             *string `json:"phone,omitempty"`
		Email             *string `json:"email,omitempty"`
		Age               *int    `json:"age,omitempty"`
		Gender            *string `json:"gender,omitempty"`
		DiscourseLanguage *string `json:"discourseLanguage,omitempty"`
		EveningFood       *string `json:"eveningFood,omitempty"`
		MedicalInfo       *string `json:"medicalInfo,omitempty"`
		TeacherNotes      *string `json:"teacherNotes,omitempty"`
		LaptopDetails     *string `json:"laptopDetails,omitempty"`
		CoursesInfo       *string `json:"coursesInfo,omitempty"`
		RoomNo            *string `json:"roomNo,omitempty"`
		DiningSeatNo      *string `json:"diningSeatNo,omitempty"`
		DiningSeatType    *string `json:"diningSeatType,omitempty"`
		LaundryTokenNo    *string `json:"laundryTokenNo,omitempty"`
		MobileLockerNo    *string `json:"mobileLockerNo,omitempty"`
		ValuablesLockerNo *string `json:"valuablesLockerNo,omitempty"`
		PagodaCellNo      *string `json:"pagodaCellNo,omitempty"`
		DhammaHallSeatNo  *string `json:"dhammaHallSeatNo,omitempty"`
		SpecialSeating    *string `json:"specialSeating,omitempty"`
	}
}

// HandleUpdateParticipant edits a record directly. Only provided fields are
// touched; resource fields pass through the sentinel rule so "NA" clears an
// assignment rather than storing the literal.
func (h *ParticipantHandler) HandleUpdateParticipant(ctx context.Context, input *UpdateParticipantRequest) (*ParticipantResponse, error) {
	var participant models.Participant
	if err := h.db.First(&participant, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Participant not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load participant: " + err.Error())
	}

	updates := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	setResource := func(column string, v *string) {
		if v != nil {
			updates[column] = resources.Normalize(*v)
		}
	}

	setString("full_name", input.Body.FullName)
	setString("phone_number", input.Body.Phone)
	setString("email", input.Body.Email)
	setString("gender", input.Body.Gender)
	setString("discourse_language", input.Body.DiscourseLanguage)
	setString("evening_food", input.Body.EveningFood)
	setString("medical_info", input.Body.MedicalInfo)
	setString("teacher_notes", input.Body.TeacherNotes)
	setString("laptop_details", input.Body.LaptopDetails)
	setString("courses_info", input.Body.CoursesInfo)
	setResource("conf_no", input.Body.ConfNo)
	setResource("room_no", input.Body.RoomNo)
	setResource("dining_seat_no", input.Body.DiningSeatNo)
	setResource("dining_seat_type", input.Body.DiningSeatType)
	setResource("laundry_token_no", input.Body.LaundryTokenNo)
	setResource("mobile_locker_no", input.Body.MobileLockerNo)
	setResource("valuables_locker_no", input.Body.ValuablesLockerNo)
	setResource("pagoda_cell_no", input.Body.PagodaCellNo)
	setResource("dhamma_hall_seat_no", input.Body.DhammaHallSeatNo)
	setResource("special_seating", input.Body.SpecialSeating)
	if input.Body.Age != nil {
		updates["age"] = *input.Body.Age
	}

	if len(updates) == 0 {
		return &ParticipantResponse{Body: participant}, nil
	}

	if err := h.db.Model(&participant).Updates(updates).Error; err != nil {
		if resources.IsUniqueViolation(err) {
			column := resources.ConflictColumn(err)
			name := resources.ResourceName(column)
			if name == "" {
				return nil, huma.Error409Conflict("Duplicate assignment in update")
			}
			value := ""
			switch v := updates[column].(type) {
			case *string:
				if v != nil {
					value = *v
				}
			case string:
				value = v
			}
			return nil, conflictError(name, value,
				fmt.Sprintf("The %s %s is already assigned to another participant", name, value))
		}
		return nil, huma.Error500InternalServerError("Failed to update participant: " + err.Error())
	}

	if err := h.db.First(&participant, input.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to reload participant: " + err.Error())
	}
	return &ParticipantResponse{Body: participant}, nil
}

type DeleteParticipantRequest struct {
	ID uint `path:"id" doc:"Participant ID"`
}

func (h *ParticipantHandler) HandleDeleteParticipant(ctx context.Context, input *DeleteParticipantRequest) (*struct{}, error) {
	result := h.db.Delete(&models.Participant{}, input.ID)
	if result.Error != nil {
		return nil, huma.Error500InternalServerError("Failed to delete participant: " + result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return nil, huma.Error404NotFound("Participant not found")
	}
	return nil, nil
}
