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

// AllocationHandler commits the full resource bundle at onboarding and
// answers the advisory cross-course occupancy query. Per-course uniqueness is
// enforced by partial unique indexes in the store; this handler's own checks
// cover the cross-course cases the indexes cannot express.
type AllocationHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewAllocationHandler(db *gorm.DB, log zerolog.Logger) *AllocationHandler {
	return &AllocationHandler{db: db, log: log}
}

type OnboardRequest struct {
	Body struct {
		ParticipantID     uint   `json:"participantId" required:"true"`
		CourseID          uint   `json:"courseId" required:"true"`
		RoomNo            string `json:"roomNo,omitempty"`
		DiningSeatNo      string `json:"diningSeatNo,omitempty"`
		DiningSeatType    string `json:"diningSeatType,omitempty"`
		LaundryTokenNo    string `json:"laundryTokenNo,omitempty"`
		MobileLockerNo    string `json:"mobileLockerNo,omitempty"`
		ValuablesLockerNo string `json:"valuablesLockerNo,omitempty"`
		PagodaCellNo      string `json:"pagodaCellNo,omitempty"`
		DhammaHallSeatNo  string `json:"dhammaHallSeatNo,omitempty"`
		SpecialSeating    string `json:"specialSeating,omitempty"`
		Language          string `json:"language,omitempty" doc:"Discourse language, defaults to English"`
	}
}

var occupyingStatuses = []models.Status{models.StatusAttending, models.StatusGateCheckIn}

// HandleOnboard validates and commits the resource bundle as one atomic
// assignment, moving the participant to Attending / stage 4.
func (h *AllocationHandler) HandleOnboard(ctx context.Context, input *OnboardRequest) (*ParticipantResponse, error) {
	bundle := resources.NormalizeBundle(
		input.Body.RoomNo,
		input.Body.DiningSeatNo,
		input.Body.DiningSeatType,
		input.Body.LaundryTokenNo,
		input.Body.MobileLockerNo,
		input.Body.ValuablesLockerNo,
		input.Body.PagodaCellNo,
		input.Body.DhammaHallSeatNo,
		input.Body.SpecialSeating,
	)

	language := input.Body.Language
	if language == "" {
		language = "English"
	}

	var participant models.Participant
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND course_id = ?", input.Body.ParticipantID, input.Body.CourseID).
			First(&participant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return huma.Error404NotFound("Participant not found")
			}
			return err
		}

		if participant.ProcessStage < models.StageInterviewed {
			return huma.Error412PreconditionFailed("Cannot onboard: interview not completed")
		}

		// Rooms are scarce across every course, not just this one.
		if bundle.RoomNo != nil {
			var occupant models.Participant
			err := tx.Where("room_no = ? AND id != ? AND status IN ?",
				*bundle.RoomNo, participant.ID, occupyingStatuses).First(&occupant).Error
			if err == nil {
				return conflictError("room", *bundle.RoomNo,
					fmt.Sprintf("Room %s is already occupied by %s", *bundle.RoomNo, occupant.FullName))
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var course models.Course
		if err := tx.First(&course, participant.CourseID).Error; err != nil {
			return err
		}

		// Dining seats and meditation cells are shared across courses whose
		// date ranges overlap.
		overlapChecks := []struct {
			column string
			value  *string
		}{
			{"dining_seat_no", bundle.DiningSeatNo},
			{"pagoda_cell_no", bundle.PagodaCellNo},
		}
		for _, check := range overlapChecks {
			if check.value == nil {
				continue
			}
			var occupant models.Participant
			err := tx.Joins("JOIN courses ON courses.id = participants.course_id").
				Where("participants.course_id != ?", course.ID).
				Where("courses.start_date <= ? AND courses.end_date >= ?", course.EndDate, course.StartDate).
				Where("courses.deleted_at IS NULL").
				Where(fmt.Sprintf("participants.%s = ?", check.column), *check.value).
				Where("participants.status IN ?", occupyingStatuses).
				First(&occupant).Error
			if err == nil {
				name := resources.ResourceName(check.column)
				return conflictError(name, *check.value,
					fmt.Sprintf("The %s %s is held by %s in an overlapping course", name, *check.value, occupant.FullName))
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		updates := map[string]interface{}{
			"status":              models.StatusAttending,
			"process_stage":       models.StageOnboarded,
			"room_no":             bundle.RoomNo,
			"dining_seat_no":      bundle.DiningSeatNo,
			"dining_seat_type":    bundle.DiningSeatType,
			"laundry_token_no":    bundle.LaundryTokenNo,
			"mobile_locker_no":    bundle.MobileLockerNo,
			"valuables_locker_no": bundle.ValuablesLockerNo,
			"pagoda_cell_no":      bundle.PagodaCellNo,
			"dhamma_hall_seat_no": bundle.DhammaHallSeatNo,
			"special_seating":     bundle.SpecialSeating,
			"discourse_language":  language,
		}

		result := tx.Model(&models.Participant{}).
			Where("id = ? AND course_id = ?", participant.ID, participant.CourseID).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return huma.Error404NotFound("Participant not found")
		}

		return tx.First(&participant, participant.ID).Error
	})

	if err != nil {
		if resources.IsUniqueViolation(err) {
			column := resources.ConflictColumn(err)
			name := resources.ResourceName(column)
			if name == "" {
				return nil, huma.Error409Conflict("Duplicate assignment: a resource in this bundle is already taken")
			}
			value := bundle.Value(column)
			h.log.Warn().
				Uint("participant_id", input.Body.ParticipantID).
				Str("resource", name).
				Str("value", value).
				Msg("onboarding conflict")
			return nil, conflictError(name, value,
				fmt.Sprintf("The %s %s is already assigned to another participant", name, value))
		}
		return nil, asStatusError(err, "Failed to onboard participant")
	}

	h.log.Info().Uint("participant_id", participant.ID).Msg("participant onboarded")
	return &ParticipantResponse{Body: participant}, nil
}

// conflictError builds a 409 whose detail names the colliding field and value.
func conflictError(field, value, message string) error {
	return huma.Error409Conflict(message, &huma.ErrorDetail{
		Message:  "already assigned",
		Location: field,
		Value:    value,
	})
}

type GlobalOccupiedRequest struct {
	ID uint `path:"id" doc:"Course ID"`
}

type GlobalOccupiedResponse struct {
	Body struct {
		DiningSeats     []string `json:"diningSeats"`
		MeditationCells []string `json:"meditationCells"`
	}
}

// HandleGlobalOccupied lists dining-seat and meditation-cell values held by
// occupying participants of any other course whose dates overlap this one.
// Advisory only: the authoritative guard is the store's uniqueness indexes
// plus the overlap checks inside HandleOnboard.
func (h *AllocationHandler) HandleGlobalOccupied(ctx context.Context, input *GlobalOccupiedRequest) (*GlobalOccupiedResponse, error) {
	var course models.Course
	if err := h.db.First(&course, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Course not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load course: " + err.Error())
	}

	res := &GlobalOccupiedResponse{}
	res.Body.DiningSeats = []string{}
	res.Body.MeditationCells = []string{}

	overlapping := h.db.Model(&models.Participant{}).
		Joins("JOIN courses ON courses.id = participants.course_id").
		Where("participants.course_id != ?", course.ID).
		Where("courses.start_date <= ? AND courses.end_date >= ?", course.EndDate, course.StartDate).
		Where("courses.deleted_at IS NULL").
		Where("participants.status IN ?", occupyingStatuses)

	if err := overlapping.Session(&gorm.Session{}).
		Where("participants.dining_seat_no IS NOT NULL").
		Pluck("participants.dining_seat_no", &res.Body.DiningSeats).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to query dining seats: " + err.Error())
	}

	if err := overlapping.Session(&gorm.Session{}).
		Where("participants.pagoda_cell_no IS NOT NULL").
		Pluck("participants.pagoda_cell_no", &res.Body.MeditationCells).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to query meditation cells: " + err.Error())
	}

	return res, nil
}
