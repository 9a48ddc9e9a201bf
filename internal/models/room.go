package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model
	RoomNo     string `json:"room_no" gorm:"uniqueIndex"`
	GenderType string `json:"gender_type"`
}
