package booking

import (
	"context"

	"github.com/BruksfildServices01/ironpeak-gym/internal/audit"
	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/booking"
	"github.com/BruksfildServices01/ironpeak-gym/internal/metrics"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

// UpdateBookingStatus is the operator override: any status may be set on any
// booking without re-running admission. Other bookings on the schedule are
// left as they are, so freeing a spot does not promote the waitlist.
type UpdateBookingStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	bookingID string,
	rawStatus string,
) (*models.Booking, error) {

	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	previous := b.Status

	b, err = uc.repo.UpdateBookingStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	metrics.RecordBookingStatusChange(string(status))

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"from": previous, "to": status},
	})

	return b, nil
}
