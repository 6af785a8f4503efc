package booking

import (
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

// ===============================
// Booking Status
// ===============================

// OccupyingStatuses are the states that hold a spot (or a waitlist place) on a schedule.
var OccupyingStatuses = []models.BookingStatus{
	models.BookingConfirmed,
	models.BookingWaitlisted,
}

// ParseStatus accepts only the exact enum spelling.
func ParseStatus(raw string) (models.BookingStatus, error) {
	s := models.BookingStatus(raw)
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}

// ParseStatusFilter is ParseStatus for list queries, where "" and "All" mean no filter.
func ParseStatusFilter(raw string) (*models.BookingStatus, error) {
	if raw == "" || raw == "All" {
		return nil, nil
	}
	s, err := ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ===============================
// Admission
// ===============================

// Admit decides the status of a new booking on a schedule that already holds
// occupied CONFIRMED or WAITLISTED bookings.
func Admit(occupied int64, maxSpots int) models.BookingStatus {
	if occupied >= int64(maxSpots) {
		return models.BookingWaitlisted
	}
	return models.BookingConfirmed
}
