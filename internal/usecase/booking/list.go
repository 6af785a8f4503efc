package booking

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/booking"
	"github.com/BruksfildServices01/ironpeak-gym/internal/dto"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type ListBookingsInput struct {
	Status  string
	ClassID string
	Limit   int
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute returns bookings newest first.
func (uc *ListBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) ([]dto.BookingDTO, error) {

	status, err := domain.ParseStatusFilter(in.Status)
	if err != nil {
		return nil, err
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	bookings, err := uc.repo.ListBookings(ctx, domain.ListFilter{
		Status:  status,
		ClassID: strings.TrimSpace(in.ClassID),
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, dto.FromBooking(&bookings[i]))
	}
	return out, nil
}
