package membership

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
	"github.com/BruksfildServices01/ironpeak-gym/internal/payments"
)

type fakeMembers struct {
	mu      sync.Mutex
	byEmail map[string]*models.Member
	applied map[string]string

	findErr     error
	markErr     error
	markInvoked int
}

func newFakeMembers(members ...*models.Member) *fakeMembers {
	f := &fakeMembers{byEmail: map[string]*models.Member{}, applied: map[string]string{}}
	for _, m := range members {
		f.byEmail[m.Email] = m
	}
	return f
}

func (f *fakeMembers) FindMemberByEmail(_ context.Context, email string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	m, ok := f.byEmail[email]
	if !ok {
		return nil, httperr.Wrap("member_not_found", httperr.ErrNotFound)
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMembers) GetMember(_ context.Context, id string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, m := range f.byEmail {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, httperr.Wrap("member_not_found", httperr.ErrNotFound)
}

func (f *fakeMembers) MarkInactive(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markInvoked++
	if f.markErr != nil {
		return f.markErr
	}
	for _, m := range f.byEmail {
		if m.ID == id && m.Status == models.MemberActive {
			m.Status = models.MemberInactive
		}
	}
	return nil
}

func (f *fakeMembers) ActivateMembership(_ context.Context, a domain.Activation) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, seen := f.applied[a.PaymentID]; seen {
		return nil, httperr.ErrBusiness("payment_already_applied")
	}
	m, ok := f.byEmail[a.Email]
	if !ok {
		m = &models.Member{ID: uuid.NewString(), Name: a.Name, Email: a.Email}
		f.byEmail[a.Email] = m
	} else if m.Status == models.MemberSuspended {
		return nil, httperr.ErrBusiness("membership_suspended")
	}
	m.Plan = a.Plan
	m.Status = models.MemberActive
	expires := a.ExpiresAt
	m.ExpiresAt = &expires
	f.applied[a.PaymentID] = m.ID
	copied := *m
	return &copied, nil
}

func (f *fakeMembers) status(email string) models.MemberStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byEmail[email].Status
}

var _ domain.Repository = (*fakeMembers)(nil)

type fakeGateway struct {
	lastCheckout payments.CheckoutRequest
	payment      *payments.Payment
	err          error
}

func (g *fakeGateway) CreateCheckout(_ context.Context, req payments.CheckoutRequest) (*payments.Checkout, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastCheckout = req
	return &payments.Checkout{PreferenceID: "pref-1", CheckoutURL: "https://mp.example/checkout/pref-1"}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, id string) (*payments.Payment, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.payment, nil
}

var errDBDown = errors.New("db down")
