package dashboard

import (
	"context"
	"errors"
	"math"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/exhibitions"
	"chitrakalakar-app/internal/domain/orders"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/service"
	"chitrakalakar-app/internal/store"
)

type Stats interface {
	CountAccounts(ctx context.Context, f store.AccountFilter) (int64, error)
	CountArtworks(ctx context.Context, f store.ArtworkFilter) (int64, error)
	SumArtworkPrices(ctx context.Context, artistID string) (int64, error)
	CountExhibitions(ctx context.Context, f store.ExhibitionFilter) (int64, error)
	SumExhibitionViews(ctx context.Context, artistID string) (int64, error)
	CountOrders(ctx context.Context, f store.OrderFilter) (int64, error)
	SumOrders(ctx context.Context, column string, f store.OrderFilter) (int64, error)
	FindAccount(ctx context.Context, id string) (*users.Account, error)
}

type ArtistSummary struct {
	TotalEarnings     int64 `json:"total_earnings"`
	PortfolioViews    int64 `json:"portfolio_views"`
	CompletedOrders   int64 `json:"completed_orders"`
	InProgressOrders  int64 `json:"in_progress_orders"`
	TotalOrders       int64 `json:"total_orders"`
	ActiveExhibitions int64 `json:"active_exhibitions"`
	TotalExhibitions  int64 `json:"total_exhibitions"`
	TotalArtworks     int64 `json:"total_artworks"`
	ApprovedArtworks  int64 `json:"approved_artworks"`
	PortfolioValue    int64 `json:"portfolio_value"`
}

type AdminSummary struct {
	PendingArtists     int64 `json:"pending_artists"`
	PendingArtworks    int64 `json:"pending_artworks"`
	PendingExhibitions int64 `json:"pending_exhibitions"`
	TotalUsers         int64 `json:"total_users"`
	TotalOrders        int64 `json:"total_orders"`
	TotalRevenue       int64 `json:"total_revenue"`
}

type PublicSummary struct {
	TotalArtists      int64   `json:"total_artists"`
	TotalArtworks     int64   `json:"total_artworks"`
	CompletedProjects int64   `json:"completed_projects"`
	TotalExhibitions  int64   `json:"total_exhibitions"`
	SatisfactionRate  float64 `json:"satisfaction_rate"`
}

// ArtistCounts are the public figures shown on an artist card.
type ArtistCounts struct {
	ArtworkCount      int64
	CompletedProjects int64
}

// Service aggregates read-only figures. Revenue is realized on completed
// orders only.
type Service struct {
	stats Stats
	deps  service.Deps
}

func New(stats Stats, deps service.Deps) *Service {
	return &Service{stats: stats, deps: deps.WithDefaults()}
}

// tally runs counting queries in order and keeps the first error.
type tally struct {
	ctx context.Context
	s   *Service
	err error
}

func (t *tally) n(fn func(context.Context) (int64, error)) int64 {
	if t.err != nil {
		return 0
	}
	v, err := domain.Call(t.ctx, t.s.deps.Timeout, fn)
	t.err = err
	return v
}

func completedOnly(f store.OrderFilter) store.OrderFilter {
	f.Statuses = []orders.Status{orders.StatusCompleted}
	return f
}

func (s *Service) Artist(ctx context.Context, artistID string) (*ArtistSummary, error) {
	t := &tally{ctx: ctx, s: s}
	mine := store.OrderFilter{ArtistID: artistID}
	yes := true

	out := &ArtistSummary{
		TotalEarnings: t.n(func(c context.Context) (int64, error) {
			return s.stats.SumOrders(c, "artist_receives", completedOnly(mine))
		}),
		PortfolioViews: t.n(func(c context.Context) (int64, error) {
			return s.stats.SumExhibitionViews(c, artistID)
		}),
		CompletedOrders: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountOrders(c, completedOnly(mine))
		}),
		InProgressOrders: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountOrders(c, store.OrderFilter{ArtistID: artistID, Statuses: []orders.Status{orders.StatusInProgress}})
		}),
		TotalOrders: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountOrders(c, mine)
		}),
		ActiveExhibitions: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountExhibitions(c, store.ExhibitionFilter{
				ArtistID: artistID, Statuses: []exhibitions.Status{exhibitions.StatusActive}, IsApproved: &yes,
			})
		}),
		TotalExhibitions: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountExhibitions(c, store.ExhibitionFilter{ArtistID: artistID})
		}),
		TotalArtworks: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountArtworks(c, store.ArtworkFilter{ArtistID: artistID})
		}),
		ApprovedArtworks: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountArtworks(c, store.ArtworkFilter{ArtistID: artistID, IsApproved: &yes})
		}),
		PortfolioValue: t.n(func(c context.Context) (int64, error) {
			return s.stats.SumArtworkPrices(c, artistID)
		}),
	}
	if t.err != nil {
		return nil, t.err
	}
	return out, nil
}

func (s *Service) Admin(ctx context.Context) (*AdminSummary, error) {
	t := &tally{ctx: ctx, s: s}
	no := false

	out := &AdminSummary{
		PendingArtists: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountAccounts(c, store.AccountFilter{Role: users.RoleArtist, IsApproved: &no})
		}),
		PendingArtworks: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountArtworks(c, store.ArtworkFilter{IsApproved: &no})
		}),
		PendingExhibitions: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountExhibitions(c, store.ExhibitionFilter{IsApproved: &no})
		}),
		TotalUsers: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountAccounts(c, store.AccountFilter{})
		}),
		TotalOrders: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountOrders(c, store.OrderFilter{})
		}),
		TotalRevenue: t.n(func(c context.Context) (int64, error) {
			return s.stats.SumOrders(c, "commission_fee", completedOnly(store.OrderFilter{}))
		}),
	}
	if t.err != nil {
		return nil, t.err
	}
	return out, nil
}

func (s *Service) Public(ctx context.Context) (*PublicSummary, error) {
	t := &tally{ctx: ctx, s: s}
	yes := true

	out := &PublicSummary{
		TotalArtists: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountAccounts(c, store.AccountFilter{Role: users.RoleArtist, IsApproved: &yes})
		}),
		TotalArtworks: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountArtworks(c, store.ArtworkFilter{IsApproved: &yes})
		}),
		CompletedProjects: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountOrders(c, completedOnly(store.OrderFilter{}))
		}),
		TotalExhibitions: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountExhibitions(c, store.ExhibitionFilter{IsApproved: &yes})
		}),
	}
	cancelled := t.n(func(c context.Context) (int64, error) {
		return s.stats.CountOrders(c, store.OrderFilter{Statuses: []orders.Status{orders.StatusCancelled}})
	})
	if t.err != nil {
		return nil, t.err
	}
	out.SatisfactionRate = SatisfactionRate(out.CompletedProjects, cancelled)
	return out, nil
}

// ArtistCounts counts an artist's approved artworks and completed orders.
func (s *Service) ArtistCounts(ctx context.Context, artistID string) (ArtistCounts, error) {
	t := &tally{ctx: ctx, s: s}
	yes := true
	out := ArtistCounts{
		ArtworkCount: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountArtworks(c, store.ArtworkFilter{ArtistID: artistID, IsApproved: &yes})
		}),
		CompletedProjects: t.n(func(c context.Context) (int64, error) {
			return s.stats.CountOrders(c, completedOnly(store.OrderFilter{ArtistID: artistID}))
		}),
	}
	return out, t.err
}

// ArtistNames resolves display names for ids. Missing accounts map to
// "Unknown".
func (s *Service) ArtistNames(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		acc, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (*users.Account, error) {
			return s.stats.FindAccount(c, id)
		})
		switch {
		case errors.Is(err, domain.ErrNotFound):
			out[id] = "Unknown"
		case err != nil:
			return nil, err
		default:
			out[id] = acc.Name
		}
	}
	return out, nil
}

// SatisfactionRate is the completed share of closed orders as a percentage
// with one decimal. No closed orders gives 0.
func SatisfactionRate(completed, cancelled int64) float64 {
	closed := completed + cancelled
	if closed == 0 {
		return 0
	}
	return math.Round(float64(completed)*1000/float64(closed)) / 10
}
