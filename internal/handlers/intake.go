package handlers

import (
	"context"
	"database/sql"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dhamma-seva/registration-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// IntakeHandler advances participants through the arrival pipeline:
// token issuance at the gate, briefing and interview stages, and the
// gate-side check-in/cancel toggles.
type IntakeHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewIntakeHandler(db *gorm.DB, log zerolog.Logger) *IntakeHandler {
	return &IntakeHandler{db: db, log: log}
}

type ParticipantResponse struct {
	Body models.Participant
}

type ArrivalRequest struct {
	Body struct {
		ParticipantID uint `json:"participantId" required:"true" doc:"Participant to record arrival for"`
		CourseID      uint `json:"courseId" required:"true" doc:"Course the participant belongs to"`
	}
}

// HandleArrival issues the next gate token for the course and moves the
// participant to the token-issued stage. Tokens are computed and written
// inside one transaction; the unique (course_id, token_number) index is the
// backstop against two desks racing for the same number, in which case one
// transaction is retried with a fresh read.
func (h *IntakeHandler) HandleArrival(ctx context.Context, input *ArrivalRequest) (*ParticipantResponse, error) {
	var participant models.Participant

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = h.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ? AND course_id = ?", input.Body.ParticipantID, input.Body.CourseID).
				First(&participant).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return huma.Error404NotFound("Participant not found")
				}
				return err
			}

			if participant.TokenNumber != nil || participant.ProcessStage != models.StageRegistered {
				return huma.Error409Conflict("Token already issued for this participant")
			}

			var maxToken sql.NullInt64
			if err := tx.Model(&models.Participant{}).
				Where("course_id = ?", input.Body.CourseID).
				Select("MAX(token_number)").Scan(&maxToken).Error; err != nil {
				return err
			}

			next := 1
			if maxToken.Valid {
				next = int(maxToken.Int64) + 1
			}

			participant.TokenNumber = &next
			participant.ProcessStage = models.StageTokenIssued
			participant.Status = models.StatusInProcess
			return tx.Save(&participant).Error
		})

		if err == nil || !isUniqueViolationOn(err, "token_number") {
			break
		}
		h.log.Warn().Uint("participant_id", input.Body.ParticipantID).Msg("token race detected, retrying arrival")
	}

	if err != nil {
		return nil, asStatusError(err, "Failed to record arrival")
	}

	h.log.Info().
		Uint("participant_id", participant.ID).
		Int("token", *participant.TokenNumber).
		Msg("arrival recorded")

	return &ParticipantResponse{Body: participant}, nil
}

type AdvanceStageRequest struct {
	Body struct {
		ParticipantID uint `json:"participantId" required:"true"`
		Stage         int  `json:"stage" required:"true" minimum:"2" maximum:"3" doc:"Target stage: 2 (briefed) or 3 (interviewed)"`
	}
}

// HandleAdvanceStage sets the briefing or interview stage. The stage is set
// unconditionally: operators correct mis-recorded stages by moving a
// participant back, so no monotonicity check is applied here.
func (h *IntakeHandler) HandleAdvanceStage(ctx context.Context, input *AdvanceStageRequest) (*ParticipantResponse, error) {
	var participant models.Participant
	if err := h.db.First(&participant, input.Body.ParticipantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Participant not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load participant: " + err.Error())
	}

	participant.ProcessStage = input.Body.Stage
	if err := h.db.Save(&participant).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update stage: " + err.Error())
	}

	return &ParticipantResponse{Body: participant}, nil
}

type GateActionRequest struct {
	Body struct {
		ParticipantID uint `json:"participantId" required:"true"`
	}
}

// HandleGateCheckIn marks a participant as present at the gate. Rejected for
// participants who have already completed onboarding.
func (h *IntakeHandler) HandleGateCheckIn(ctx context.Context, input *GateActionRequest) (*ParticipantResponse, error) {
	return h.gateTransition(input.Body.ParticipantID, models.StatusGateCheckIn)
}

// HandleGateCancel marks a participant as cancelled at the gate, subject to
// the same already-attending guard.
func (h *IntakeHandler) HandleGateCancel(ctx context.Context, input *GateActionRequest) (*ParticipantResponse, error) {
	return h.gateTransition(input.Body.ParticipantID, models.StatusCancelled)
}

func (h *IntakeHandler) gateTransition(participantID uint, target models.Status) (*ParticipantResponse, error) {
	var participant models.Participant
	if err := h.db.First(&participant, participantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Participant not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load participant: " + err.Error())
	}

	if participant.Status == models.StatusAttending {
		return nil, huma.Error400BadRequest("Participant is already attending")
	}

	participant.Status = target
	if err := h.db.Save(&participant).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update status: " + err.Error())
	}

	return &ParticipantResponse{Body: participant}, nil
}
