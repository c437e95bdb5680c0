package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/events"
	"chitrakalakar-app/internal/domain/orders"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/domain/works"
	"chitrakalakar-app/internal/service"
	"chitrakalakar-app/internal/store"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

type Store interface {
	FindAccount(ctx context.Context, id string) (*users.Account, error)
	FindArtwork(ctx context.Context, id string) (*works.Artwork, error)
	CreateOrder(ctx context.Context, o *orders.Order) error
	FindOrder(ctx context.Context, id string) (*orders.Order, error)
	FindArtistOrder(ctx context.Context, artistID, id string) (*orders.Order, error)
	ListOrders(ctx context.Context, f store.OrderFilter) ([]orders.Order, error)
	UpdateOrderStatus(ctx context.Context, artistID, id string, from, to orders.Status) (bool, error)
	SumOrders(ctx context.Context, column string, f store.OrderFilter) (int64, error)
}

type CreateInput struct {
	ArtistID     string
	ArtworkID    *string
	ArtworkTitle string
	CustomerID   string
	Amount       int64
	Notes        *string
	DueDate      *time.Time
}

// Service runs the commission order lifecycle.
type Service struct {
	store   Store
	rateBPS int64
	suffix  func() string
	deps    service.Deps
}

// New returns an order service charging rateBPS basis points of commission.
func New(st Store, rateBPS int64, deps service.Deps) (*Service, error) {
	if rateBPS < 0 || rateBPS > 10000 {
		return nil, fmt.Errorf("commission rate %d bps out of range", rateBPS)
	}
	gen, err := nanoid.CustomASCII("0123456789ABCDEF", 6)
	if err != nil {
		return nil, err
	}
	return &Service{store: st, rateBPS: rateBPS, suffix: gen, deps: deps.WithDefaults()}, nil
}

// OrderNumber formats the human-facing order reference ORD-YYYYMMDD-XXXXXX.
func (s *Service) OrderNumber(now time.Time) string {
	return "ORD-" + now.UTC().Format("20060102") + "-" + s.suffix()
}

// Create books a pending order with its commission split frozen.
func (s *Service) Create(ctx context.Context, in CreateInput) (*orders.Order, error) {
	commission, receives, err := orders.Split(in.Amount, s.rateBPS)
	if err != nil {
		return nil, err
	}

	artist, err := s.account(ctx, in.ArtistID)
	if err != nil {
		return nil, err
	}
	if artist.Role != users.RoleArtist || !artist.IsApproved || !artist.IsActive {
		return nil, fmt.Errorf("artist %s: %w", in.ArtistID, domain.ErrNotFound)
	}
	customer, err := s.account(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.ArtworkTitle)
	if in.ArtworkID != nil && *in.ArtworkID != "" {
		aw, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (*works.Artwork, error) {
			return s.store.FindArtwork(c, *in.ArtworkID)
		})
		if err != nil {
			return nil, fmt.Errorf("order artwork: %w", err)
		}
		if aw.ArtistID != artist.ID {
			return nil, fmt.Errorf("artwork %s of artist %s: %w", aw.ID, artist.ID, domain.ErrNotFound)
		}
		if title == "" {
			title = aw.Title
		}
	} else {
		in.ArtworkID = nil
	}
	if title == "" {
		return nil, fmt.Errorf("%w: artwork title is required", domain.ErrInvalidInput)
	}

	now := s.deps.Now().UTC()
	o := &orders.Order{
		ID:             uuid.NewString(),
		OrderNumber:    s.OrderNumber(now),
		ArtistID:       artist.ID,
		ArtworkID:      in.ArtworkID,
		ArtworkTitle:   title,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		CustomerEmail:  customer.Email,
		Amount:         in.Amount,
		CommissionFee:  commission,
		ArtistReceives: receives,
		Status:         orders.StatusPending,
		Notes:          in.Notes,
		StartDate:      now,
		DueDate:        in.DueDate,
	}
	if err := domain.Do(ctx, s.deps.Timeout, func(c context.Context) error {
		return s.store.CreateOrder(c, o)
	}); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.deps.Metrics.OrderCreated(o.CommissionFee)
	s.deps.Log.Info("order created",
		zap.String("order_id", o.ID), zap.String("order_number", o.OrderNumber),
		zap.Int64("amount", o.Amount), zap.Int64("commission_fee", o.CommissionFee))
	s.deps.Emit(ctx, events.OrderCreated, o.ID, map[string]string{
		"order_number": o.OrderNumber,
		"artist_id":    o.ArtistID,
	})
	return o, nil
}

// UpdateStatus moves the artist's order to target. Re-sending the current
// status succeeds without writing. A concurrent change between read and
// write makes this call lose with ErrInvalidTransition.
func (s *Service) UpdateStatus(ctx context.Context, artistID, orderID string, target orders.Status) (*orders.Order, error) {
	if !orders.IsArtistTarget(target) {
		return nil, fmt.Errorf("%w: %q is not a settable order status", domain.ErrInvalidTransition, target)
	}
	o, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (*orders.Order, error) {
		return s.store.FindArtistOrder(c, artistID, orderID)
	})
	if err != nil {
		return nil, err
	}
	if o.Status == target {
		return o, nil
	}
	if err := orders.CheckTransition(o.Status, target); err != nil {
		return nil, err
	}

	from := o.Status
	ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
		return s.store.UpdateOrderStatus(c, artistID, orderID, from, target)
	})
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", orderID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: order %s is no longer %s", domain.ErrInvalidTransition, orderID, from)
	}
	o.Status = target

	s.deps.Metrics.OrderTransition(string(from), string(target))
	s.deps.Log.Info("order status changed",
		zap.String("order_id", o.ID), zap.String("from", string(from)), zap.String("to", string(target)))
	s.deps.Emit(ctx, events.OrderStatusChanged, o.ID, map[string]string{
		"from": string(from),
		"to":   string(target),
	})
	return o, nil
}

// Earnings is the artist's realized income: completed orders only.
func (s *Service) Earnings(ctx context.Context, artistID string) (int64, error) {
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) (int64, error) {
		return s.store.SumOrders(c, "artist_receives", store.OrderFilter{
			ArtistID: artistID,
			Statuses: []orders.Status{orders.StatusCompleted},
		})
	})
}

func (s *Service) ListForArtist(ctx context.Context, artistID string, status orders.Status) ([]orders.Order, error) {
	f := store.OrderFilter{ArtistID: artistID}
	if status != "" {
		f.Statuses = []orders.Status{status}
	}
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]orders.Order, error) {
		return s.store.ListOrders(c, f)
	})
}

// ListAll returns every order, newest first, optionally of one status.
func (s *Service) ListAll(ctx context.Context, status orders.Status) ([]orders.Order, error) {
	var f store.OrderFilter
	if status != "" {
		f.Statuses = []orders.Status{status}
	}
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]orders.Order, error) {
		return s.store.ListOrders(c, f)
	})
}

func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]orders.Order, error) {
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]orders.Order, error) {
		return s.store.ListOrders(c, store.OrderFilter{CustomerID: customerID})
	})
}

// Get returns an order visible to viewerID: its customer or its artist.
func (s *Service) Get(ctx context.Context, viewerID, orderID string) (*orders.Order, error) {
	o, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (*orders.Order, error) {
		return s.store.FindOrder(c, orderID)
	})
	if err != nil {
		return nil, err
	}
	if o.CustomerID != viewerID && o.ArtistID != viewerID {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return o, nil
}

func (s *Service) account(ctx context.Context, id string) (*users.Account, error) {
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) (*users.Account, error) {
		return s.store.FindAccount(c, id)
	})
}
