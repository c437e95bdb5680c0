package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/billing"
	"chitrakalakar-app/internal/domain/events"
	"chitrakalakar-app/internal/domain/exhibitions"
	"chitrakalakar-app/internal/domain/orders"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/domain/works"
	"chitrakalakar-app/internal/service"

	"go.uber.org/zap"
)

// ErrUnknownSession marks a reconcile for a session this service never
// opened. It always also matches domain.ErrNotFound.
var ErrUnknownSession = errors.New("unknown checkout session")

// Outcome of a reconciliation. None of them is an error.
type Outcome string

const (
	Settled        Outcome = "settled"
	AlreadySettled Outcome = "already_settled"
	StillPending   Outcome = "still_pending"
)

// Ledger is the persistence the bridge needs: the payment log plus the
// records a checkout can pay for.
type Ledger interface {
	CreatePayment(ctx context.Context, p *billing.PaymentTransaction) error
	FindPayment(ctx context.Context, sessionID string) (*billing.PaymentTransaction, error)
	ListPayments(ctx context.Context, userID string) ([]billing.PaymentTransaction, error)
	SettlePayment(ctx context.Context, sessionID string, paidAt time.Time, apply func(billing.Entitlements) error) (bool, error)

	FindAccount(ctx context.Context, id string) (*users.Account, error)
	FindExhibition(ctx context.Context, id string) (*exhibitions.Exhibition, error)
	FindArtwork(ctx context.Context, id string) (*works.Artwork, error)
	FindOrder(ctx context.Context, id string) (*orders.Order, error)
}

// Pricing holds the fixed fees; the rest are priced from the paid record.
type Pricing struct {
	Currency        string
	MembershipFee   int64
	ArtistAnnualFee int64
}

type CheckoutInput struct {
	UserID    string
	OrderType billing.OrderType
	EntityID  string
	// OriginURL is where the provider sends the buyer back.
	OriginURL string
}

type Checkout struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// Bridge opens checkout sessions and turns provider confirmations into
// exactly one domain effect per session.
type Bridge struct {
	ledger   Ledger
	provider billing.Provider
	pricing  Pricing
	deps     service.Deps
}

func New(ledger Ledger, provider billing.Provider, pricing Pricing, deps service.Deps) *Bridge {
	return &Bridge{ledger: ledger, provider: provider, pricing: pricing, deps: deps.WithDefaults()}
}

// StartCheckout prices the purchase, opens a provider session and records it
// as pending.
func (b *Bridge) StartCheckout(ctx context.Context, in CheckoutInput) (*Checkout, error) {
	if !in.OrderType.Valid() {
		return nil, fmt.Errorf("%w: unknown order type %q", domain.ErrInvalidInput, in.OrderType)
	}
	if in.OrderType.NeedsEntity() && in.EntityID == "" {
		return nil, fmt.Errorf("%w: %s checkout needs an entity id", domain.ErrInvalidInput, in.OrderType)
	}
	user, err := domain.Call(ctx, b.deps.Timeout, func(c context.Context) (*users.Account, error) {
		return b.ledger.FindAccount(c, in.UserID)
	})
	if err != nil {
		return nil, err
	}

	amount, label, err := b.price(ctx, user, in)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: nothing to pay for %s", domain.ErrInvalidInput, in.OrderType)
	}

	origin := strings.TrimRight(in.OriginURL, "/")
	meta := map[string]string{
		"order_type": string(in.OrderType),
		"user_id":    user.ID,
	}
	if in.EntityID != "" {
		meta["entity_id"] = in.EntityID
	}
	sess, err := domain.Call(ctx, b.deps.Timeout, func(c context.Context) (billing.Session, error) {
		return b.provider.CreateSession(c, billing.SessionRequest{
			Amount:        amount,
			Currency:      b.pricing.Currency,
			Description:   label,
			CustomerEmail: user.Email,
			SuccessURL:    origin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:     origin + "/payment-cancelled",
			ClientRef:     user.ID,
			Metadata:      meta,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("open checkout: %w", err)
	}

	tx := &billing.PaymentTransaction{
		SessionID:     sess.ID,
		OrderType:     in.OrderType,
		PaymentStatus: billing.PaymentPending,
		UserID:        user.ID,
		Amount:        amount,
		Currency:      b.pricing.Currency,
		Metadata:      meta,
	}
	if in.EntityID != "" {
		id := in.EntityID
		tx.EntityID = &id
	}
	if err := domain.Do(ctx, b.deps.Timeout, func(c context.Context) error {
		return b.ledger.CreatePayment(c, tx)
	}); err != nil {
		return nil, fmt.Errorf("record checkout %s: %w", sess.ID, err)
	}

	b.deps.Metrics.CheckoutStarted(string(in.OrderType))
	b.deps.Log.Info("checkout started",
		zap.String("session_id", sess.ID), zap.String("order_type", string(in.OrderType)), zap.Int64("amount", amount))
	return &Checkout{SessionID: sess.ID, URL: sess.URL, Amount: amount, Currency: b.pricing.Currency}, nil
}

func (b *Bridge) price(ctx context.Context, user *users.Account, in CheckoutInput) (int64, string, error) {
	switch in.OrderType {
	case billing.OrderMembership:
		return b.pricing.MembershipFee, "Membership", nil

	case billing.OrderArtistAnnual:
		if user.Role != users.RoleArtist {
			return 0, "", fmt.Errorf("%w: only artists pay the annual fee", domain.ErrInvalidInput)
		}
		return b.pricing.ArtistAnnualFee, "Artist annual fee", nil

	case billing.OrderExhibition:
		e, err := domain.Call(ctx, b.deps.Timeout, func(c context.Context) (*exhibitions.Exhibition, error) {
			return b.ledger.FindExhibition(c, in.EntityID)
		})
		if err != nil {
			return 0, "", err
		}
		if e.ArtistID != user.ID {
			return 0, "", fmt.Errorf("exhibition %s: %w", e.ID, domain.ErrNotFound)
		}
		if e.IsPaid {
			return 0, "", fmt.Errorf("%w: exhibition %s is already paid", domain.ErrInvalidTransition, e.ID)
		}
		return e.Fees, fmt.Sprintf("Exhibition: %s (%d days)", e.Name, e.DaysPaid), nil

	case billing.OrderArtworkPurchase:
		aw, err := domain.Call(ctx, b.deps.Timeout, func(c context.Context) (*works.Artwork, error) {
			return b.ledger.FindArtwork(c, in.EntityID)
		})
		if err != nil {
			return 0, "", err
		}
		if !aw.PubliclyVisible() {
			return 0, "", fmt.Errorf("artwork %s: %w", aw.ID, domain.ErrNotFound)
		}
		if aw.IsSold {
			return 0, "", fmt.Errorf("%w: artwork %s is already sold", domain.ErrInvalidTransition, aw.ID)
		}
		return aw.Price, "Artwork: " + aw.Title, nil

	case billing.OrderCustom:
		o, err := domain.Call(ctx, b.deps.Timeout, func(c context.Context) (*orders.Order, error) {
			return b.ledger.FindOrder(c, in.EntityID)
		})
		if err != nil {
			return 0, "", err
		}
		if o.CustomerID != user.ID {
			return 0, "", fmt.Errorf("order %s: %w", o.ID, domain.ErrNotFound)
		}
		if o.IsPaid || o.Status == orders.StatusCancelled {
			return 0, "", fmt.Errorf("%w: order %s cannot be paid", domain.ErrInvalidTransition, o.ID)
		}
		return o.Amount, "Order " + o.OrderNumber, nil
	}
	return 0, "", fmt.Errorf("%w: unknown order type %q", domain.ErrInvalidInput, in.OrderType)
}

// Reconcile settles sessionID if the provider reports it paid. Safe to call
// any number of times from webhooks and client polls alike.
func (b *Bridge) Reconcile(ctx context.Context, sessionID string) (Outcome, error) {
	tx, err := domain.Call(ctx, b.deps.Timeout, func(c context.Context) (*billing.PaymentTransaction, error) {
		return b.ledger.FindPayment(c, sessionID)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("%w: %w", ErrUnknownSession, err)
	}
	if err != nil {
		return "", err
	}

	st, err := domain.Call(ctx, b.deps.Timeout, func(c context.Context) (billing.SessionStatus, error) {
		return b.provider.GetSessionStatus(c, sessionID)
	})
	if err != nil {
		return "", fmt.Errorf("provider status for %s: %w", sessionID, err)
	}
	if !st.Paid() {
		return b.outcome(tx, StillPending), nil
	}
	if tx.PaymentStatus == billing.PaymentPaid {
		return b.outcome(tx, AlreadySettled), nil
	}

	effect, err := entitlementFor(tx)
	if err != nil {
		return "", err
	}
	settled, err := domain.Call(ctx, b.deps.Timeout, func(c context.Context) (bool, error) {
		return b.ledger.SettlePayment(c, sessionID, b.deps.Now().UTC(), func(e billing.Entitlements) error {
			return effect(c, e)
		})
	})
	if err != nil {
		return "", fmt.Errorf("settle %s: %w", sessionID, err)
	}
	if !settled {
		return b.outcome(tx, AlreadySettled), nil
	}

	b.deps.Emit(ctx, events.PaymentSettled, sessionID, map[string]string{
		"order_type": string(tx.OrderType),
		"user_id":    tx.UserID,
	})
	return b.outcome(tx, Settled), nil
}

func (b *Bridge) outcome(tx *billing.PaymentTransaction, o Outcome) Outcome {
	b.deps.Metrics.Reconciled(string(tx.OrderType), string(o))
	log := b.deps.Log.Debug
	if o == Settled {
		log = b.deps.Log.Info
	}
	log("payment reconciled",
		zap.String("session_id", tx.SessionID),
		zap.String("order_type", string(tx.OrderType)),
		zap.String("outcome", string(o)))
	return o
}

// entitlementFor picks the single flag-set a settled session applies.
func entitlementFor(tx *billing.PaymentTransaction) (func(context.Context, billing.Entitlements) error, error) {
	entity := ""
	if tx.EntityID != nil {
		entity = *tx.EntityID
	}
	if tx.OrderType.NeedsEntity() && entity == "" {
		return nil, fmt.Errorf("%w: session %s has no entity to settle", domain.ErrInvalidInput, tx.SessionID)
	}

	switch tx.OrderType {
	case billing.OrderMembership:
		return func(ctx context.Context, e billing.Entitlements) error { return e.GrantMembership(ctx, tx.UserID) }, nil
	case billing.OrderArtistAnnual:
		return func(ctx context.Context, e billing.Entitlements) error { return e.GrantArtistAnnual(ctx, tx.UserID) }, nil
	case billing.OrderExhibition:
		return func(ctx context.Context, e billing.Entitlements) error { return e.MarkExhibitionPaid(ctx, entity) }, nil
	case billing.OrderArtworkPurchase:
		return func(ctx context.Context, e billing.Entitlements) error { return e.MarkArtworkSold(ctx, entity) }, nil
	case billing.OrderCustom:
		return func(ctx context.Context, e billing.Entitlements) error { return e.MarkOrderPaid(ctx, entity) }, nil
	}
	return nil, fmt.Errorf("%w: session %s has unknown order type %q", domain.ErrInvalidInput, tx.SessionID, tx.OrderType)
}

// Status reconciles sessionID for its owner and returns the stored record.
func (b *Bridge) Status(ctx context.Context, userID, sessionID string) (Outcome, *billing.PaymentTransaction, error) {
	tx, err := domain.Call(ctx, b.deps.Timeout, func(c context.Context) (*billing.PaymentTransaction, error) {
		return b.ledger.FindPayment(c, sessionID)
	})
	if err != nil {
		return "", nil, err
	}
	if tx.UserID != userID {
		return "", nil, fmt.Errorf("payment session %s: %w", sessionID, domain.ErrNotFound)
	}
	out, err := b.Reconcile(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	if out == Settled || out == AlreadySettled {
		tx, err = domain.Call(ctx, b.deps.Timeout, func(c context.Context) (*billing.PaymentTransaction, error) {
			return b.ledger.FindPayment(c, sessionID)
		})
		if err != nil {
			return "", nil, err
		}
	}
	return out, tx, nil
}

func (b *Bridge) History(ctx context.Context, userID string) ([]billing.PaymentTransaction, error) {
	return domain.Call(ctx, b.deps.Timeout, func(c context.Context) ([]billing.PaymentTransaction, error) {
		return b.ledger.ListPayments(c, userID)
	})
}
