package booking

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/booking"
	"github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

// fakeRepo keeps bookings in memory. ReserveOrWaitlist holds mu across the
// count and the insert, as the row lock does in postgres.
type fakeRepo struct {
	mu        sync.Mutex
	classes   map[string]*models.GymClass
	schedules map[string]*models.Schedule
	bookings  []*models.Booking

	failCreate error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		classes:   map[string]*models.GymClass{},
		schedules: map[string]*models.Schedule{},
	}
}

func (r *fakeRepo) addClass(id, name string, maxSpots int) *models.GymClass {
	c := &models.GymClass{ID: id, Name: name, MaxSpots: maxSpots}
	r.classes[id] = c
	return c
}

func (r *fakeRepo) addSchedule(id, classID string) {
	r.schedules[id] = &models.Schedule{ID: id, ClassID: classID, IsActive: true}
}

func (r *fakeRepo) seed(classID, scheduleID string, status models.BookingStatus) *models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	guest := "seed"
	b := &models.Booking{
		ID:         uuid.NewString(),
		ClassID:    classID,
		ScheduleID: &scheduleID,
		GuestName:  &guest,
		GuestEmail: &guest,
		Status:     status,
	}
	r.bookings = append(r.bookings, b)
	return b
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

func (r *fakeRepo) countStatus(scheduleID string, status models.BookingStatus) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.bookings {
		if b.ScheduleID != nil && *b.ScheduleID == scheduleID && b.Status == status {
			n++
		}
	}
	return n
}

func (r *fakeRepo) GetClass(_ context.Context, classID string) (*models.GymClass, error) {
	c, ok := r.classes[classID]
	if !ok {
		return nil, httperr.Wrap("class_not_found", httperr.ErrNotFound)
	}
	return c, nil
}

func (r *fakeRepo) insertLocked(b *models.Booking) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	copied := *b
	r.bookings = append(r.bookings, &copied)
	return nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(b)
}

func (r *fakeRepo) ReserveOrWaitlist(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.schedules[*b.ScheduleID]
	if !ok || s.ClassID != b.ClassID || !s.IsActive {
		return httperr.Wrap("schedule_not_found", httperr.ErrNotFound)
	}
	c, ok := r.classes[b.ClassID]
	if !ok {
		return httperr.Wrap("class_not_found", httperr.ErrNotFound)
	}

	var occupied int64
	for _, existing := range r.bookings {
		if existing.ScheduleID != nil && *existing.ScheduleID == s.ID && slices.Contains(domain.OccupyingStatuses, existing.Status) {
			occupied++
		}
	}

	b.Status = domain.Admit(occupied, c.MaxSpots)
	return r.insertLocked(b)
}

func (r *fakeRepo) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, httperr.Wrap("booking_not_found", httperr.ErrNotFound)
}

func (r *fakeRepo) UpdateBookingStatus(_ context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			copied := *b
			return &copied, nil
		}
	}
	return nil, httperr.Wrap("booking_not_found", httperr.ErrNotFound)
}

func (r *fakeRepo) DeleteBooking(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return httperr.Wrap("booking_not_found", httperr.ErrNotFound)
}

func (r *fakeRepo) ListBookings(_ context.Context, f domain.ListFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if f.Status != nil && b.Status != *f.Status {
			continue
		}
		if f.ClassID != "" && b.ClassID != f.ClassID {
			continue
		}
		out = append(out, *b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// fakeGate answers CheckMember from a fixed table.
type fakeGate struct {
	results map[string]membership.Result
	err     error
}

func (g *fakeGate) CheckMember(_ context.Context, id string) (membership.Result, error) {
	if g.err != nil {
		return membership.Result{}, g.err
	}
	res, ok := g.results[id]
	if !ok {
		return membership.Result{}, httperr.Wrap("member_not_found", httperr.ErrNotFound)
	}
	return res, nil
}

var errStoreDown = errors.New("connection refused")
