package booking

import (
	"context"

	"github.com/BruksfildServices01/ironpeak-gym/internal/audit"
	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/booking"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteBooking) Execute(ctx context.Context, bookingID string) error {
	if err := uc.repo.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})
	return nil
}
