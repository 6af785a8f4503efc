package payments

import (
	"context"
	"net/url"

	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

type CheckoutRequest struct {
	Title             string
	Price             float64
	Currency          string
	PayerName         string
	PayerEmail        string
	ExternalReference string
	BackURL           string
	NotificationURL   string
}

type Checkout struct {
	PreferenceID string `json:"preferenceId"`
	CheckoutURL  string `json:"checkoutUrl"`
}

type Payment struct {
	ID                string
	Status            string
	ExternalReference string
}

const StatusApproved = "approved"

// Gateway is the payment provider used for membership purchases.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
}

// PlanReference is what a checkout carries through the provider so the
// payment notification can create the membership.
type PlanReference struct {
	Plan  models.Plan
	Email string
	Name  string
}

func (r PlanReference) Encode() string {
	v := url.Values{}
	v.Set("plan", string(r.Plan))
	v.Set("email", r.Email)
	v.Set("name", r.Name)
	return v.Encode()
}

func DecodePlanReference(raw string) (PlanReference, bool) {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return PlanReference{}, false
	}
	ref := PlanReference{
		Plan:  models.Plan(v.Get("plan")),
		Email: v.Get("email"),
		Name:  v.Get("name"),
	}
	if !ref.Plan.Valid() || ref.Email == "" {
		return PlanReference{}, false
	}
	return ref, true
}
