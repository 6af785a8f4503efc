package handlers

import (
	"context"
	"os"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bookingDomain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/booking"
	membershipDomain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
	"github.com/BruksfildServices01/ironpeak-gym/internal/payments"
	"github.com/BruksfildServices01/ironpeak-gym/internal/validators"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validators.RegisterBindings(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

// ------------------------------------------------------
// booking repository
// ------------------------------------------------------

type fakeBookings struct {
	mu        sync.Mutex
	classes   map[string]*models.GymClass
	schedules map[string]string
	bookings  map[string]*models.Booking
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{
		classes:   map[string]*models.GymClass{},
		schedules: map[string]string{},
		bookings:  map[string]*models.Booking{},
	}
}

func (f *fakeBookings) addClass(id, name string, maxSpots int) {
	f.classes[id] = &models.GymClass{ID: id, Name: name, MaxSpots: maxSpots}
}

func (f *fakeBookings) GetClass(_ context.Context, id string) (*models.GymClass, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[id]
	if !ok {
		return nil, httperr.Wrap("class_not_found", httperr.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (f *fakeBookings) insert(b *models.Booking) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now()
	copied := *b
	f.bookings[b.ID] = &copied
}

func (f *fakeBookings) CreateBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insert(b)
	return nil
}

func (f *fakeBookings) ReserveOrWaitlist(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if classID, ok := f.schedules[*b.ScheduleID]; !ok || classID != b.ClassID {
		return httperr.Wrap("schedule_not_found", httperr.ErrNotFound)
	}
	var occupied int64
	for _, existing := range f.bookings {
		if existing.ScheduleID != nil && *existing.ScheduleID == *b.ScheduleID && slices.Contains(bookingDomain.OccupyingStatuses, existing.Status) {
			occupied++
		}
	}
	b.Status = bookingDomain.Admit(occupied, f.classes[b.ClassID].MaxSpots)
	f.insert(b)
	return nil
}

func (f *fakeBookings) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, httperr.Wrap("booking_not_found", httperr.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookings) UpdateBookingStatus(_ context.Context, id string, s models.BookingStatus) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, httperr.Wrap("booking_not_found", httperr.ErrNotFound)
	}
	b.Status = s
	copied := *b
	return &copied, nil
}

func (f *fakeBookings) DeleteBooking(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[id]; !ok {
		return httperr.Wrap("booking_not_found", httperr.ErrNotFound)
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookings) ListBookings(_ context.Context, filter bookingDomain.ListFilter) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Booking{}
	for _, b := range f.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.ClassID != "" && b.ClassID != filter.ClassID {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

var _ bookingDomain.Repository = (*fakeBookings)(nil)

// ------------------------------------------------------
// membership repository
// ------------------------------------------------------

type fakeMembers struct {
	mu      sync.Mutex
	members map[string]*models.Member
	applied map[string]bool
	findErr error
}

func newFakeMembers(members ...*models.Member) *fakeMembers {
	f := &fakeMembers{members: map[string]*models.Member{}, applied: map[string]bool{}}
	for _, m := range members {
		f.members[m.ID] = m
	}
	return f
}

func (f *fakeMembers) FindMemberByEmail(_ context.Context, email string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, m := range f.members {
		if m.Email == email {
			copied := *m
			return &copied, nil
		}
	}
	return nil, httperr.Wrap("member_not_found", httperr.ErrNotFound)
}

func (f *fakeMembers) GetMember(_ context.Context, id string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok {
		return nil, httperr.Wrap("member_not_found", httperr.ErrNotFound)
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMembers) MarkInactive(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.members[id]; ok && m.Status == models.MemberActive {
		m.Status = models.MemberInactive
	}
	return nil
}

func (f *fakeMembers) ActivateMembership(_ context.Context, a membershipDomain.Activation) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applied[a.PaymentID] {
		return nil, httperr.ErrBusiness("payment_already_applied")
	}
	var m *models.Member
	for _, existing := range f.members {
		if existing.Email == a.Email {
			m = existing
		}
	}
	if m == nil {
		m = &models.Member{ID: uuid.NewString(), Name: a.Name, Email: a.Email}
		f.members[m.ID] = m
	} else if m.Status == models.MemberSuspended {
		return nil, httperr.ErrBusiness("membership_suspended")
	}
	m.Plan = a.Plan
	m.Status = models.MemberActive
	expires := a.ExpiresAt
	m.ExpiresAt = &expires
	f.applied[a.PaymentID] = true
	copied := *m
	return &copied, nil
}

var _ membershipDomain.Repository = (*fakeMembers)(nil)

// ------------------------------------------------------
// payment gateway
// ------------------------------------------------------

type fakeGateway struct {
	payment *payments.Payment
}

func (g *fakeGateway) CreateCheckout(_ context.Context, _ payments.CheckoutRequest) (*payments.Checkout, error) {
	return &payments.Checkout{PreferenceID: "pref-1", CheckoutURL: "https://pay.example/pref-1"}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, _ string) (*payments.Payment, error) {
	return g.payment, nil
}
