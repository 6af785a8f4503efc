package booking

import (
	"context"

	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

type ListFilter struct {
	Status  *models.BookingStatus
	ClassID string
	Limit   int
}

type Repository interface {
	// -------- Class / Schedule --------
	GetClass(
		ctx context.Context,
		classID string,
	) (*models.GymClass, error)

	// -------- Booking (create) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// ReserveOrWaitlist sets b.Status with Admit against the class capacity and
	// inserts b, holding a lock on b.ScheduleID for the whole
	// count-then-insert sequence. Only active schedules admit bookings.
	ReserveOrWaitlist(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (admin) --------
	GetBooking(
		ctx context.Context,
		id string,
	) (*models.Booking, error)

	UpdateBookingStatus(
		ctx context.Context,
		id string,
		status models.BookingStatus,
	) (*models.Booking, error)

	DeleteBooking(
		ctx context.Context,
		id string,
	) error

	ListBookings(
		ctx context.Context,
		f ListFilter,
	) ([]models.Booking, error)
}
