package membership

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

// Activation is one approved plan payment to apply.
type Activation struct {
	PaymentID string
	Name      string
	Email     string
	Plan      models.Plan
	ExpiresAt time.Time
}

type Repository interface {
	// FindMemberByEmail expects an already normalized email.
	FindMemberByEmail(
		ctx context.Context,
		email string,
	) (*models.Member, error)

	GetMember(
		ctx context.Context,
		id string,
	) (*models.Member, error)

	// MarkInactive only downgrades a member that is still ACTIVE.
	MarkInactive(
		ctx context.Context,
		id string,
	) error

	// ActivateMembership applies one approved payment: it creates the member,
	// or sets an existing one to ACTIVE on the plan with the given expiry, and
	// records the payment id. A payment id seen before is
	// "payment_already_applied"; a SUSPENDED member is "membership_suspended"
	// and is left unchanged.
	ActivateMembership(
		ctx context.Context,
		a Activation,
	) (*models.Member, error)
}
