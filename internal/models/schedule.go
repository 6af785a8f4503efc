package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Schedule is a weekly slot of a class. DayOfWeek is 0 (Sunday) to 6 (Saturday);
// StartTime and EndTime are "HH:MM".
type Schedule struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	ClassID  string    `gorm:"type:varchar(36);not null;index" json:"classId"`
	GymClass *GymClass `gorm:"foreignKey:ClassID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"gymClass,omitempty"`

	DayOfWeek int    `gorm:"not null" json:"dayOfWeek"`
	StartTime string `gorm:"size:5;not null" json:"startTime"`
	EndTime   string `gorm:"size:5;not null" json:"endTime"`
	IsActive  bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (s *Schedule) BeforeSave(tx *gorm.DB) error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("day of week %d out of range", s.DayOfWeek)
	}
	return nil
}
