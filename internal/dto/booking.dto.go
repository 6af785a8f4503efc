package dto

import (
	"time"

	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

type ClassSummary struct {
	Name     string          `json:"name"`
	Category models.Category `json:"category,omitempty"`
}

type MemberSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ScheduleSummary struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
}

type BookingDTO struct {
	ID         string               `json:"id"`
	ClassID    string               `json:"classId"`
	MemberID   *string              `json:"memberId"`
	GuestName  *string              `json:"guestName"`
	GuestEmail *string              `json:"guestEmail"`
	GuestPhone *string              `json:"guestPhone"`
	ScheduleID *string              `json:"scheduleId"`
	Date       time.Time            `json:"date"`
	Status     models.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"createdAt"`

	GymClass *ClassSummary    `json:"gymClass,omitempty"`
	Member   *MemberSummary   `json:"member,omitempty"`
	Schedule *ScheduleSummary `json:"schedule,omitempty"`

	Waitlisted bool `json:"waitlisted,omitempty"`
}

// FromBooking copies b and whichever of its preloaded relations are present.
func FromBooking(b *models.Booking) BookingDTO {
	out := BookingDTO{
		ID:         b.ID,
		ClassID:    b.ClassID,
		MemberID:   b.MemberID,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		GuestPhone: b.GuestPhone,
		ScheduleID: b.ScheduleID,
		Date:       b.Date,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}

	if b.GymClass != nil {
		out.GymClass = &ClassSummary{Name: b.GymClass.Name, Category: b.GymClass.Category}
	}
	if b.Member != nil {
		out.Member = &MemberSummary{Name: b.Member.Name, Email: b.Member.Email}
	}
	if b.Schedule != nil {
		out.Schedule = &ScheduleSummary{DayOfWeek: b.Schedule.DayOfWeek, StartTime: b.Schedule.StartTime}
	}

	return out
}
