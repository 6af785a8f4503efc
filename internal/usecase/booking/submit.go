package booking

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/ironpeak-gym/internal/audit"
	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/booking"
	"github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/metrics"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
	"github.com/BruksfildServices01/ironpeak-gym/internal/timezone"
	"github.com/BruksfildServices01/ironpeak-gym/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SubmitBookingInput struct {
	ClassID    string
	ScheduleID string
	MemberID   string

	GuestName  string
	GuestEmail string
	GuestPhone string

	Date string
}

type SubmitBookingResult struct {
	Booking    *models.Booking
	ClassName  string
	Waitlisted bool
}

// MemberGate decides whether a known member may book.
type MemberGate interface {
	CheckMember(ctx context.Context, memberID string) (membership.Result, error)
}

// ======================================================
// USE CASE
// ======================================================

type SubmitBooking struct {
	repo     domain.Repository
	members  MemberGate
	audit    *audit.Dispatcher
	timezone string
	now      func() time.Time
}

func NewSubmitBooking(
	repo domain.Repository,
	members MemberGate,
	audit *audit.Dispatcher,
	tz string,
) *SubmitBooking {
	return &SubmitBooking{
		repo:     repo,
		members:  members,
		audit:    audit,
		timezone: tz,
		now:      time.Now,
	}
}

func (uc *SubmitBooking) WithClock(now func() time.Time) *SubmitBooking {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SubmitBooking) Execute(
	ctx context.Context,
	in SubmitBookingInput,
) (*SubmitBookingResult, error) {

	// --------------------------------------------------
	// 1) Class reference and identity
	// --------------------------------------------------
	classID := strings.TrimSpace(in.ClassID)
	if classID == "" {
		return nil, httperr.ErrBusiness("class_id_required")
	}

	memberID := strings.TrimSpace(in.MemberID)
	guestName := strings.TrimSpace(in.GuestName)
	guestEmail := validators.NormalizeEmail(in.GuestEmail)

	if memberID == "" && (guestName == "" || guestEmail == "") {
		return nil, httperr.ErrBusiness("identity_required")
	}

	// --------------------------------------------------
	// 2) Date (defaults to now)
	// --------------------------------------------------
	date := uc.now()
	if strings.TrimSpace(in.Date) != "" {
		parsed, err := timezone.ParseDate(in.Date, uc.timezone)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		date = parsed
	}

	// --------------------------------------------------
	// 3) Class
	// --------------------------------------------------
	class, err := uc.repo.GetClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4) Member gate
	// --------------------------------------------------
	b := &models.Booking{
		ClassID: class.ID,
		Date:    date,
	}

	if memberID != "" {
		res, err := uc.members.CheckMember(ctx, memberID)
		if err != nil {
			return nil, err
		}
		if !res.Valid {
			return nil, httperr.ErrBusiness(string(res.Reason))
		}
		b.MemberID = &memberID
	} else {
		b.GuestName = &guestName
		b.GuestEmail = &guestEmail
		if phone := strings.TrimSpace(in.GuestPhone); phone != "" {
			b.GuestPhone = &phone
		}
	}

	// --------------------------------------------------
	// 5) Admission
	// --------------------------------------------------
	if scheduleID := strings.TrimSpace(in.ScheduleID); scheduleID != "" {
		b.ScheduleID = &scheduleID
		if err := uc.repo.ReserveOrWaitlist(ctx, b); err != nil {
			return nil, err
		}
	} else {
		b.Status = models.BookingConfirmed
		if err := uc.repo.CreateBooking(ctx, b); err != nil {
			return nil, err
		}
	}

	waitlisted := b.Status == models.BookingWaitlisted
	metrics.RecordBookingAdmitted(string(b.Status))

	// --------------------------------------------------
	// 6) Audit
	// --------------------------------------------------
	action := "booking_created"
	if waitlisted {
		action = "booking_waitlisted"
	}
	uc.audit.Dispatch(audit.Event{
		Action:   action,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"classId":    b.ClassID,
			"scheduleId": b.ScheduleID,
			"memberId":   b.MemberID,
		},
	})

	return &SubmitBookingResult{
		Booking:    b,
		ClassName:  class.Name,
		Waitlisted: waitlisted,
	}, nil
}
