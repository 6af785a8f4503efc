package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingWaitlisted BookingStatus = "WAITLISTED"
	BookingCancelled  BookingStatus = "CANCELLED"
	BookingCompleted  BookingStatus = "COMPLETED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingWaitlisted, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking is one reservation. It belongs to a member or carries guest contact fields.
type Booking struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	ClassID  string    `gorm:"type:varchar(36);not null;index" json:"classId"`
	GymClass *GymClass `gorm:"foreignKey:ClassID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"gymClass,omitempty"`

	MemberID *string `gorm:"type:varchar(36);index" json:"memberId"`
	Member   *Member `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"member,omitempty"`

	GuestName  *string `gorm:"size:100" json:"guestName"`
	GuestEmail *string `gorm:"size:100" json:"guestEmail"`
	GuestPhone *string `gorm:"size:30" json:"guestPhone"`

	ScheduleID *string   `gorm:"type:varchar(36);index:idx_bookings_schedule_status" json:"scheduleId"`
	Schedule   *Schedule `gorm:"foreignKey:ScheduleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"schedule,omitempty"`

	Date   time.Time     `json:"date"`
	Status BookingStatus `gorm:"size:20;not null;index:idx_bookings_schedule_status" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	if b.MemberID == nil && (b.GuestName == nil || b.GuestEmail == nil) {
		return fmt.Errorf("booking %s has neither member nor guest identity", b.ID)
	}
	return nil
}

func (b *Booking) BeforeSave(tx *gorm.DB) error {
	if b.Status != "" && !b.Status.Valid() {
		return fmt.Errorf("invalid booking status %q", b.Status)
	}
	return nil
}
