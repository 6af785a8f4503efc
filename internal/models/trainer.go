package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Trainer struct {
	ID    string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name  string  `gorm:"size:100;not null" json:"name"`
	Email string  `gorm:"size:100;not null" json:"email"`
	Phone *string `gorm:"size:30" json:"phone"`

	Specialty  StringList `gorm:"type:text" json:"specialty"`
	Bio        *string    `gorm:"type:text" json:"bio"`
	Image      *string    `gorm:"size:512" json:"image"`
	Experience int        `json:"experience"`
	Rating     float64    `json:"rating"`

	Classes []GymClass `gorm:"foreignKey:TrainerID" json:"classes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Trainer) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

func (t *Trainer) BeforeSave(tx *gorm.DB) error {
	if t.Rating < 0 || t.Rating > 5 {
		return fmt.Errorf("rating %.1f out of range", t.Rating)
	}
	return nil
}
