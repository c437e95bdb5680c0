package billing

import "context"

type SessionRequest struct {
	Amount        int64
	Currency      string
	Description   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	ClientRef     string
	Metadata      map[string]string
}

type Session struct {
	ID  string
	URL string
}

// SessionStatus is the provider's view of a checkout session.
type SessionStatus struct {
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
}

func (s SessionStatus) Paid() bool {
	return s.PaymentStatus == "paid"
}

// Provider is the hosted-checkout payment gateway.
type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
	GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error)
}
