package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Plan string

const (
	PlanStarter Plan = "STARTER"
	PlanPro     Plan = "PRO"
	PlanElite   Plan = "ELITE"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanStarter, PlanPro, PlanElite:
		return true
	}
	return false
}

type MemberStatus string

const (
	MemberActive    MemberStatus = "ACTIVE"
	MemberInactive  MemberStatus = "INACTIVE"
	MemberSuspended MemberStatus = "SUSPENDED"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberActive, MemberInactive, MemberSuspended:
		return true
	}
	return false
}

// Member is a paying customer. Email is stored trimmed and lower-cased.
type Member struct {
	ID    string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name  string  `gorm:"size:100;not null" json:"name"`
	Email string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone *string `gorm:"size:30" json:"phone"`

	Plan   Plan         `gorm:"size:20;not null" json:"plan"`
	Status MemberStatus `gorm:"size:20;not null;index" json:"status"`

	JoinedAt  time.Time  `json:"joinedAt"`
	ExpiresAt *time.Time `json:"expiresAt"`

	Bookings []Booking `gorm:"foreignKey:MemberID" json:"bookings,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	return nil
}

func (m *Member) BeforeSave(tx *gorm.DB) error {
	if m.Plan != "" && !m.Plan.Valid() {
		return fmt.Errorf("invalid plan %q", m.Plan)
	}
	if m.Status != "" && !m.Status.Valid() {
		return fmt.Errorf("invalid member status %q", m.Status)
	}
	return nil
}
