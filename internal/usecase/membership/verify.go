package membership

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ironpeak-gym/internal/audit"
	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/metrics"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
	"github.com/BruksfildServices01/ironpeak-gym/internal/validators"
)

// ======================================================
// USE CASE
// ======================================================

// VerifyMembership decides whether a member may book right now. Expiry is
// enforced lazily: an ACTIVE member past expiresAt is downgraded to INACTIVE
// by the check that notices it.
type VerifyMembership struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewVerifyMembership(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *VerifyMembership {
	return &VerifyMembership{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// WithClock replaces the time source.
func (uc *VerifyMembership) WithClock(now func() time.Time) *VerifyMembership {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

// Execute verifies by email. Validity outcomes come back as a Result; only
// bad input ("email_required") and store failures ("verification_failed") are errors.
func (uc *VerifyMembership) Execute(
	ctx context.Context,
	email string,
) (domain.Result, error) {

	normalized := validators.NormalizeEmail(email)
	if normalized == "" {
		return domain.Result{}, httperr.ErrBusiness("email_required")
	}

	member, err := uc.repo.FindMemberByEmail(ctx, normalized)
	if err != nil && !httperr.IsBusiness(err, "member_not_found") {
		metrics.RecordVerification("error")
		return domain.Result{}, httperr.Wrap("verification_failed", err)
	}

	return uc.decide(ctx, member)
}

// CheckMember runs the same decision for a known member id, as the booking
// gate does. An unknown id is "member_not_found".
func (uc *VerifyMembership) CheckMember(
	ctx context.Context,
	memberID string,
) (domain.Result, error) {

	member, err := uc.repo.GetMember(ctx, memberID)
	if err != nil {
		if httperr.IsBusiness(err, "member_not_found") {
			return domain.Result{}, err
		}
		metrics.RecordVerification("error")
		return domain.Result{}, httperr.Wrap("verification_failed", err)
	}

	return uc.decide(ctx, member)
}

func (uc *VerifyMembership) decide(
	ctx context.Context,
	member *models.Member,
) (domain.Result, error) {

	res := domain.Evaluate(member, uc.now())

	if res.Reason == domain.ReasonExpired {
		if err := uc.repo.MarkInactive(ctx, member.ID); err != nil {
			metrics.RecordVerification("error")
			return domain.Result{}, httperr.Wrap("verification_failed", err)
		}
		metrics.RecordMembershipExpiry()

		uc.audit.Dispatch(audit.Event{
			Action:   "membership_expired",
			Entity:   "member",
			EntityID: &member.ID,
			Metadata: map[string]any{"expiresAt": member.ExpiresAt},
		})
	}

	if res.Valid {
		metrics.RecordVerification("valid")
	} else {
		metrics.RecordVerification(string(res.Reason))
	}

	return res, nil
}
