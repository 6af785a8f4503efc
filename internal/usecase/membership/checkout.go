package membership

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/payments"
	"github.com/BruksfildServices01/ironpeak-gym/internal/validators"
)

type StartCheckoutInput struct {
	Name  string
	Email string
	Plan  string
}

// StartCheckout opens a provider checkout for a plan purchase.
type StartCheckout struct {
	gateway         payments.Gateway
	currency        string
	backURL         string
	notificationURL string
}

func NewStartCheckout(
	gateway payments.Gateway,
	currency string,
	backURL string,
	notificationURL string,
) *StartCheckout {
	return &StartCheckout{
		gateway:         gateway,
		currency:        currency,
		backURL:         backURL,
		notificationURL: notificationURL,
	}
}

func (uc *StartCheckout) Execute(
	ctx context.Context,
	in StartCheckoutInput,
) (*payments.Checkout, error) {

	if uc == nil || uc.gateway == nil {
		return nil, httperr.ErrBusiness("payments_unavailable")
	}

	email := validators.NormalizeEmail(in.Email)
	if email == "" {
		return nil, httperr.ErrBusiness("email_required")
	}

	plan, err := domain.ParsePlan(in.Plan)
	if err != nil {
		return nil, err
	}

	price, err := domain.PlanPrice(plan)
	if err != nil {
		return nil, err
	}

	ref := payments.PlanReference{
		Plan:  plan,
		Email: email,
		Name:  strings.TrimSpace(in.Name),
	}

	return uc.gateway.CreateCheckout(ctx, payments.CheckoutRequest{
		Title:             fmt.Sprintf("Iron Peak %s membership (1 month)", plan),
		Price:             price,
		Currency:          uc.currency,
		PayerName:         ref.Name,
		PayerEmail:        email,
		ExternalReference: ref.Encode(),
		BackURL:           uc.backURL,
		NotificationURL:   uc.notificationURL,
	})
}
