package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ContactStatus string

const (
	ContactUnread  ContactStatus = "UNREAD"
	ContactRead    ContactStatus = "READ"
	ContactReplied ContactStatus = "REPLIED"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactUnread, ContactRead, ContactReplied:
		return true
	}
	return false
}

// Contact is an inbound inquiry from the public site.
type Contact struct {
	ID      string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name    string        `gorm:"size:100;not null" json:"name"`
	Email   string        `gorm:"size:100;not null" json:"email"`
	Phone   *string       `gorm:"size:30" json:"phone"`
	Message string        `gorm:"type:text;not null" json:"message"`
	Status  ContactStatus `gorm:"size:20;not null;index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	if c.Status == "" {
		c.Status = ContactUnread
	}
	return nil
}

func (c *Contact) BeforeSave(tx *gorm.DB) error {
	if c.Status != "" && !c.Status.Valid() {
		return fmt.Errorf("invalid contact status %q", c.Status)
	}
	return nil
}
