package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chitrakalakar-app/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// Provider opens and inspects hosted checkout sessions.
type Provider struct {
	sessions *checkoutsession.Client
}

func NewProvider(secretKey string) (*Provider, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key not configured")
	}
	return &Provider{
		sessions: &checkoutsession.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
	}, nil
}

func (p *Provider) CreateSession(ctx context.Context, req billing.SessionRequest) (billing.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: req.Metadata,
	}
	if req.ClientRef != "" {
		params.ClientReferenceID = stripe.String(req.ClientRef)
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	s, err := p.sessions.New(params)
	if err != nil {
		return billing.Session{}, fmt.Errorf("create checkout session: %w", err)
	}
	return billing.Session{ID: s.ID, URL: s.URL}, nil
}

func (p *Provider) GetSessionStatus(ctx context.Context, sessionID string) (billing.SessionStatus, error) {
	s, err := p.sessions.Get(sessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return billing.SessionStatus{}, fmt.Errorf("fetch checkout session %s: %w", sessionID, err)
	}
	return billing.SessionStatus{
		Status:        NormalizeSessionStatus(string(s.Status)),
		PaymentStatus: NormalizePaymentStatus(string(s.PaymentStatus)),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
	}, nil
}
