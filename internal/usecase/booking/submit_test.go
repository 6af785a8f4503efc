package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newSubmit(repo *fakeRepo, gate MemberGate) *SubmitBooking {
	if gate == nil {
		gate = &fakeGate{}
	}
	return NewSubmitBooking(repo, gate, nil, "UTC").
		WithClock(func() time.Time { return fixedNow })
}

func guest(classID, scheduleID, name string) SubmitBookingInput {
	return SubmitBookingInput{
		ClassID:    classID,
		ScheduleID: scheduleID,
		GuestName:  name,
		GuestEmail: name + "@example.com",
	}
}

func TestSubmitBooking_ConfirmsUntilFullThenWaitlists(t *testing.T) {
	repo := newFakeRepo()
	repo.addClass("c1", "Power Lifting", 3)
	repo.addSchedule("s1", "c1")
	uc := newSubmit(repo, nil)

	for i, name := range []string{"ana", "ben", "cruz"} {
		res, err := uc.Execute(context.Background(), guest("c1", "s1", name))
		require.NoError(t, err, i)
		assert.Equal(t, models.BookingConfirmed, res.Booking.Status)
		assert.False(t, res.Waitlisted)
		assert.Equal(t, "Power Lifting", res.ClassName)
	}

	res, err := uc.Execute(context.Background(), guest("c1", "s1", "dee"))
	require.NoError(t, err)
	assert.Equal(t, models.BookingWaitlisted, res.Booking.Status)
	assert.True(t, res.Waitlisted)
	assert.Equal(t, 4, repo.count())
}

func TestSubmitBooking_WaitlistedBookingsOccupyCapacity(t *testing.T) {
	repo := newFakeRepo()
	repo.addClass("c1", "Spin", 2)
	repo.addSchedule("s1", "c1")
	repo.seed("c1", "s1", models.BookingConfirmed)
	repo.seed("c1", "s1", models.BookingWaitlisted)

	res, err := newSubmit(repo, nil).Execute(context.Background(), guest("c1", "s1", "eli"))

	require.NoError(t, err)
	assert.Equal(t, models.BookingWaitlisted, res.Booking.Status)
}

func TestSubmitBooking_CancelledAndCompletedDoNotCount(t *testing.T) {
	repo := newFakeRepo()
	repo.addClass("c1", "Yoga Flow", 2)
	repo.addSchedule("s1", "c1")
	repo.seed("c1", "s1", models.BookingConfirmed)
	repo.seed("c1", "s1", models.BookingCancelled)
	repo.seed("c1", "s1", models.BookingCompleted)

	res, err := newSubmit(repo, nil).Execute(context.Background(), guest("c1", "s1", "fay"))

	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, res.Booking.Status)
}

func TestSubmitBooking_WithoutScheduleIsAlwaysConfirmed(t *testing.T) {
	repo := newFakeRepo()
	repo.addClass("c1", "Boxing", 1)
	repo.addSchedule("s1", "c1")
	repo.seed("c1", "s1", models.BookingConfirmed)
	repo.seed("c1", "s1", models.BookingWaitlisted)

	res, err := newSubmit(repo, nil).Execute(context.Background(), guest("c1", "", "gus"))

	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, res.Booking.Status)
	assert.Nil(t, res.Booking.ScheduleID)
}

func TestSubmitBooking_DateDefaultsToNow(t *testing.T) {
	repo := newFakeRepo()
	repo.addClass("c1", "Boxing", 5)

	res, err := newSubmit(repo, nil).Execute(context.Background(), guest("c1", "", "hal"))

	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(res.Booking.Date))
}

func TestSubmitBooking_ParsesDate(t *testing.T) {
	repo := newFakeRepo()
	repo.addClass("c1", "Boxing", 5)
	uc := newSubmit(repo, nil)

	in := guest("c1", "", "ivy")
	in.Date = "2026-03-10"
	res, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), res.Booking.Date.UTC())

	in.Date = "next tuesday"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestSubmitBooking_RejectsWithoutWriting(t *testing.T) {
	repo := newFakeRepo()
	repo.addClass("c1", "Boxing", 5)
	repo.addSchedule("s1", "c1")
	repo.schedules["s2"] = &models.Schedule{ID: "s2", ClassID: "c1", IsActive: false}
	repo.addClass("c2", "Swim", 5)
	uc := newSubmit(repo, nil)

	cases := []struct {
		name string
		in   SubmitBookingInput
		code string
	}{
		{"missing class", SubmitBookingInput{GuestName: "a", GuestEmail: "a@b.co"}, "class_id_required"},
		{"no identity", SubmitBookingInput{ClassID: "c1"}, "identity_required"},
		{"guest without email", SubmitBookingInput{ClassID: "c1", GuestName: "a"}, "identity_required"},
		{"guest without name", SubmitBookingInput{ClassID: "c1", GuestEmail: "a@b.co"}, "identity_required"},
		{"unknown class", guest("nope", "", "a"), "class_not_found"},
		{"unknown schedule", guest("c1", "nope", "a"), "schedule_not_found"},
		{"schedule of another class", guest("c2", "s1", "a"), "schedule_not_found"},
		{"inactive schedule", guest("c1", "s2", "a"), "schedule_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
	assert.Equal(t, 0, repo.count())
}

func TestSubmitBooking_StoreFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.addClass("c1", "Boxing", 5)
	repo.failCreate = errStoreDown

	_, err := newSubmit(repo, nil).Execute(context.Background(), guest("c1", "", "a"))

	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, 0, repo.count())
}

func TestSubmitBooking_MemberGate(t *testing.T) {
	repo := newFakeRepo()
	repo.addClass("c1", "Boxing", 5)
	gate := &fakeGate{results: map[string]membership.Result{
		"m-ok":      {Valid: true},
		"m-expired": {Reason: membership.ReasonExpired},
		"m-frozen":  {Reason: membership.ReasonInactive},
	}}
	uc := newSubmit(repo, gate)

	res, err := uc.Execute(context.Background(), SubmitBookingInput{
		ClassID:    "c1",
		MemberID:   "m-ok",
		GuestName:  "ignored",
		GuestEmail: "ignored@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Booking.MemberID)
	assert.Equal(t, "m-ok", *res.Booking.MemberID)
	assert.Nil(t, res.Booking.GuestName)
	assert.Nil(t, res.Booking.GuestEmail)

	_, err = uc.Execute(context.Background(), SubmitBookingInput{ClassID: "c1", MemberID: "m-expired"})
	assert.True(t, httperr.IsBusiness(err, "membership_expired"))

	_, err = uc.Execute(context.Background(), SubmitBookingInput{ClassID: "c1", MemberID: "m-frozen"})
	assert.True(t, httperr.IsBusiness(err, "membership_inactive"))

	_, err = uc.Execute(context.Background(), SubmitBookingInput{ClassID: "c1", MemberID: "ghost"})
	assert.True(t, httperr.IsBusiness(err, "member_not_found"))

	assert.Equal(t, 1, repo.count())
}

// One spot: A confirmed, B waitlisted; cancelling A leaves B waitlisted and a
// third request is still waitlisted because B holds the spot.
func TestSubmitBooking_CancellationDoesNotPromoteWaitlist(t *testing.T) {
	repo := newFakeRepo()
	repo.addClass("c1", "Crossfit", 1)
	repo.addSchedule("s1", "c1")
	submit := newSubmit(repo, nil)
	update := NewUpdateBookingStatus(repo, nil)
	ctx := context.Background()

	a, err := submit.Execute(ctx, guest("c1", "s1", "a"))
	require.NoError(t, err)
	require.Equal(t, models.BookingConfirmed, a.Booking.Status)

	b, err := submit.Execute(ctx, guest("c1", "s1", "b"))
	require.NoError(t, err)
	require.Equal(t, models.BookingWaitlisted, b.Booking.Status)

	_, err = update.Execute(ctx, a.Booking.ID, "CANCELLED")
	require.NoError(t, err)

	stillB, err := repo.GetBooking(ctx, b.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingWaitlisted, stillB.Status)

	c, err := submit.Execute(ctx, guest("c1", "s1", "c"))
	require.NoError(t, err)
	assert.Equal(t, models.BookingWaitlisted, c.Booking.Status)
}

func TestSubmitBooking_ConcurrentRequestsNeverOversell(t *testing.T) {
	const spots = 5
	const requests = 40

	repo := newFakeRepo()
	repo.addClass("c1", "Cycling", spots)
	repo.addSchedule("s1", "c1")
	uc := newSubmit(repo, nil)

	var wg sync.WaitGroup
	errs := make(chan error, requests)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), guest("c1", "s1", "guest"+string(rune('a'+i%26))))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, spots, repo.countStatus("s1", models.BookingConfirmed))
	assert.Equal(t, requests-spots, repo.countStatus("s1", models.BookingWaitlisted))
}
