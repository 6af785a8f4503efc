package membership

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ironpeak-gym/internal/audit"
	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/logger"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
	"github.com/BruksfildServices01/ironpeak-gym/internal/payments"
)

// ConfirmPayment turns an approved plan payment into an ACTIVE membership.
type ConfirmPayment struct {
	gateway payments.Gateway
	repo    domain.Repository
	audit   *audit.Dispatcher
	now     func() time.Time
}

func NewConfirmPayment(
	gateway payments.Gateway,
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		gateway: gateway,
		repo:    repo,
		audit:   audit,
		now:     time.Now,
	}
}

func (uc *ConfirmPayment) WithClock(now func() time.Time) *ConfirmPayment {
	uc.now = now
	return uc
}

// Execute returns the activated member, or nil when the payment is not an
// approved plan purchase, was applied before, or belongs to a SUSPENDED member.
func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	paymentID string,
) (*models.Member, error) {

	if uc == nil || uc.gateway == nil {
		return nil, httperr.ErrBusiness("payments_unavailable")
	}

	p, err := uc.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if p.Status != payments.StatusApproved {
		logger.Info("ignoring payment notification", "payment_id", paymentID, "status", p.Status)
		return nil, nil
	}

	ref, ok := payments.DecodePlanReference(p.ExternalReference)
	if !ok {
		logger.Warn("payment without plan reference", "payment_id", paymentID)
		return nil, nil
	}

	appliedID := p.ID
	if appliedID == "" {
		appliedID = paymentID
	}

	name := ref.Name
	if name == "" {
		name = ref.Email
	}

	member, err := uc.repo.ActivateMembership(ctx, domain.Activation{
		PaymentID: appliedID,
		Name:      name,
		Email:     ref.Email,
		Plan:      ref.Plan,
		ExpiresAt: domain.PeriodEnd(uc.now()),
	})
	switch {
	case httperr.IsBusiness(err, "payment_already_applied"):
		logger.Info("payment already applied", "payment_id", appliedID)
		return nil, nil
	case httperr.IsBusiness(err, "membership_suspended"):
		logger.Warn("payment for suspended member not applied", "payment_id", appliedID, "email", ref.Email)
		uc.audit.Dispatch(audit.Event{
			Action:   "membership_payment_held",
			Entity:   "member",
			Metadata: map[string]any{"plan": ref.Plan, "paymentId": appliedID, "email": ref.Email},
		})
		return nil, nil
	case err != nil:
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "membership_activated",
		Entity:   "member",
		EntityID: &member.ID,
		Metadata: map[string]any{"plan": ref.Plan, "paymentId": appliedID},
	})

	return member, nil
}
