package payments

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// MercadoPago implements Gateway with Checkout Pro preferences.
type MercadoPago struct {
	preferences preference.Client
	payments    payment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
	}, nil
}

func (mp *MercadoPago) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      req.Title,
				Quantity:   1,
				UnitPrice:  req.Price,
				CurrencyID: req.Currency,
			},
		},
		Payer: &preference.PayerRequest{
			Name:  req.PayerName,
			Email: req.PayerEmail,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.BackURL,
			Pending: req.BackURL,
			Failure: req.BackURL,
		},
		ExternalReference: req.ExternalReference,
		NotificationURL:   req.NotificationURL,
	}

	resource, err := mp.preferences.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &Checkout{
		PreferenceID: resource.ID,
		CheckoutURL:  resource.InitPoint,
	}, nil
}

func (mp *MercadoPago) GetPayment(ctx context.Context, id string) (*Payment, error) {
	numericID, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("payment id %q: %w", id, err)
	}

	resource, err := mp.payments.Get(ctx, numericID)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &Payment{
		ID:                id,
		Status:            resource.Status,
		ExternalReference: resource.ExternalReference,
	}, nil
}

var _ Gateway = (*MercadoPago)(nil)
