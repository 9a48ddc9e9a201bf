package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dhamma-seva/registration-api/internal/config"
	"github.com/dhamma-seva/registration-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RoomHandler manages the room catalog. The protected set comes from
// configuration so deployments (and tests) decide which rooms are
// undeletable.
type RoomHandler struct {
	db  *gorm.DB
	cfg *config.Config
	log zerolog.Logger
}

func NewRoomHandler(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *RoomHandler {
	return &RoomHandler{db: db, cfg: cfg, log: log}
}

type CreateRoomRequest struct {
	Body struct {
		RoomNo     string `json:"roomNo" required:"true"`
		GenderType string `json:"genderType,omitempty"`
	}
}

type RoomResponse struct {
	Body models.Room
}

func (h *RoomHandler) HandleCreateRoom(ctx context.Context, input *CreateRoomRequest) (*RoomResponse, error) {
	var existing models.Room
	err := h.db.Where("room_no = ?", input.Body.RoomNo).First(&existing).Error
	if err == nil {
		return nil, huma.Error409Conflict("Room " + input.Body.RoomNo + " already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error500InternalServerError("Failed to check room: " + err.Error())
	}

	room := models.Room{RoomNo: input.Body.RoomNo, GenderType: input.Body.GenderType}
	if err := h.db.Create(&room).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create room: " + err.Error())
	}

	return &RoomResponse{Body: room}, nil
}

type DeleteRoomRequest struct {
	ID uint `path:"id" doc:"Room ID"`
}

// HandleDeleteRoom removes a room from the catalog. Participant resource
// fields are copies, not foreign keys, so deleting a room leaves any existing
// assignments in place; readers tolerate the stale numbers.
func (h *RoomHandler) HandleDeleteRoom(ctx context.Context, input *DeleteRoomRequest) (*struct{}, error) {
	var room models.Room
	if err := h.db.First(&room, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Room not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load room: " + err.Error())
	}

	if h.cfg.IsProtectedRoom(room.RoomNo) {
		return nil, huma.Error403Forbidden("Room " + room.RoomNo + " is protected and cannot be deleted")
	}

	if err := h.db.Delete(&room).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete room: " + err.Error())
	}

	h.log.Info().Str("room_no", room.RoomNo).Msg("room deleted")
	return nil, nil
}

type ListRoomsResponse struct {
	Body []models.Room
}

func (h *RoomHandler) HandleListRooms(ctx context.Context, input *struct{}) (*ListRoomsResponse, error) {
	var rooms []models.Room
	if err := h.db.Order("room_no asc").Find(&rooms).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list rooms: " + err.Error())
	}
	return &ListRoomsResponse{Body: rooms}, nil
}

type OccupancyEntry struct {
	ParticipantID uint          `json:"participant_id"`
	FullName      string        `json:"full_name"`
	RoomNo        string        `json:"room_no"`
	Status        models.Status `json:"status"`
	Gender        string        `json:"gender"`
	CourseID      uint          `json:"course_id"`
	CourseName    string        `json:"course_name"`
}

type OccupancyResponse struct {
	Body []OccupancyEntry
}

// HandleOccupancy is a read-only join of every participant holding a room.
func (h *RoomHandler) HandleOccupancy(ctx context.Context, input *struct{}) (*OccupancyResponse, error) {
	var entries []OccupancyEntry
	err := h.db.Model(&models.Participant{}).
		Select("participants.id AS participant_id, participants.full_name, participants.room_no, participants.status, participants.gender, participants.course_id, courses.course_name").
		Joins("JOIN courses ON courses.id = participants.course_id").
		Where("participants.room_no IS NOT NULL").
		Order("participants.room_no asc").
		Scan(&entries).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list occupancy: " + err.Error())
	}

	if entries == nil {
		entries = []OccupancyEntry{}
	}
	return &OccupancyResponse{Body: entries}, nil
}
