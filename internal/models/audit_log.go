package models

import (
	"time"

	"gorm.io/gorm"
)

type AuditLog struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	Action   string  `gorm:"size:50;not null;index" json:"action"`
	Entity   string  `gorm:"size:50;index" json:"entity"`
	EntityID *string `gorm:"type:varchar(36)" json:"entityId"`
	Metadata string  `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
