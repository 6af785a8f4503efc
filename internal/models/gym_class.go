package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Category string

const (
	CategoryStrength Category = "STRENGTH"
	CategoryCardio   Category = "CARDIO"
	CategoryYoga     Category = "YOGA"
	CategoryCrossfit Category = "CROSSFIT"
	CategoryPilates  Category = "PILATES"
	CategoryBoxing   Category = "BOXING"
	CategoryCycling  Category = "CYCLING"
	CategorySwim     Category = "SWIM"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryStrength, CategoryCardio, CategoryYoga, CategoryCrossfit,
		CategoryPilates, CategoryBoxing, CategoryCycling, CategorySwim:
		return true
	}
	return false
}

// GymClass is a class offering. MaxSpots is the capacity of each of its schedules.
type GymClass struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`

	TrainerID string   `gorm:"type:varchar(36);not null;index" json:"trainerId"`
	Trainer   *Trainer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"trainer,omitempty"`

	MaxSpots int      `gorm:"not null" json:"maxSpots"`
	Duration int      `gorm:"not null" json:"duration"`
	Category Category `gorm:"size:20;not null;index" json:"category"`
	Image    *string  `gorm:"size:512" json:"image"`

	Schedules []Schedule `gorm:"foreignKey:ClassID" json:"schedules,omitempty"`
	Bookings  []Booking  `gorm:"foreignKey:ClassID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (GymClass) TableName() string {
	return "gym_classes"
}

func (g *GymClass) BeforeCreate(tx *gorm.DB) error {
	ensureID(&g.ID)
	return nil
}

func (g *GymClass) BeforeSave(tx *gorm.DB) error {
	if g.MaxSpots <= 0 {
		return fmt.Errorf("max spots must be positive, got %d", g.MaxSpots)
	}
	if g.Category != "" && !g.Category.Valid() {
		return fmt.Errorf("invalid category %q", g.Category)
	}
	return nil
}
