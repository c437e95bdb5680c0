package moderation

import (
	"context"
	"errors"
	"fmt"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/events"
	"chitrakalakar-app/internal/domain/exhibitions"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/domain/works"
	"chitrakalakar-app/internal/service"
	"chitrakalakar-app/internal/store"

	"go.uber.org/zap"
)

type Decision string

const (
	Approved Decision = "approved"
	Rejected Decision = "rejected"
	Deleted  Decision = "deleted"
)

type Store interface {
	FindAccount(ctx context.Context, id string) (*users.Account, error)
	ListAccounts(ctx context.Context, f store.AccountFilter) ([]users.Account, error)
	SetArtistApproval(ctx context.Context, artistID string, approved bool) (bool, error)
	SetArtistFeatured(ctx context.Context, artistID string, featured bool) (bool, error)
	SetAccountActive(ctx context.Context, id string, from, to bool) (bool, error)

	FindArtwork(ctx context.Context, id string) (*works.Artwork, error)
	ListArtworks(ctx context.Context, f store.ArtworkFilter) ([]works.Artwork, error)
	ApproveArtwork(ctx context.Context, id string) (bool, error)
	DeletePendingArtwork(ctx context.Context, id string) (bool, error)

	FindExhibition(ctx context.Context, id string) (*exhibitions.Exhibition, error)
	ListExhibitions(ctx context.Context, f store.ExhibitionFilter) ([]exhibitions.Exhibition, error)
	ApproveExhibition(ctx context.Context, id string) (bool, error)
	DeletePendingExhibition(ctx context.Context, id string) (bool, error)
}

// Service applies admin approval decisions.
type Service struct {
	store Store
	deps  service.Deps
}

func New(st Store, deps service.Deps) *Service {
	return &Service{store: st, deps: deps.WithDefaults()}
}

// DecideArtist approves or rejects an artist account. Rejection keeps the
// account unapproved and is only allowed while it is pending; an approved
// artist reports NotFound.
func (s *Service) DecideArtist(ctx context.Context, artistID string, approved bool) (Decision, error) {
	ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
		return s.store.SetArtistApproval(c, artistID, approved)
	})
	if err != nil {
		return "", fmt.Errorf("decide artist %s: %w", artistID, err)
	}
	if !ok {
		if approved {
			return "", fmt.Errorf("artist %s: %w", artistID, domain.ErrNotFound)
		}
		return "", fmt.Errorf("pending artist %s: %w", artistID, domain.ErrNotFound)
	}

	d, typ := Approved, events.ArtistApproved
	if !approved {
		d, typ = Rejected, events.ArtistRejected
	}
	s.record(ctx, "artist", artistID, d, typ)
	return d, nil
}

// DecideArtwork approves an artwork or deletes it while it is still pending.
func (s *Service) DecideArtwork(ctx context.Context, artworkID string, approved bool) (Decision, error) {
	if approved {
		ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
			return s.store.ApproveArtwork(c, artworkID)
		})
		if err != nil {
			return "", fmt.Errorf("approve artwork %s: %w", artworkID, err)
		}
		if !ok {
			return "", fmt.Errorf("artwork %s: %w", artworkID, domain.ErrNotFound)
		}
		s.record(ctx, "artwork", artworkID, Approved, events.ArtworkApproved)
		return Approved, nil
	}

	ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
		return s.store.DeletePendingArtwork(c, artworkID)
	})
	if err != nil {
		return "", fmt.Errorf("reject artwork %s: %w", artworkID, err)
	}
	if !ok {
		return "", s.whyNotDeleted(ctx, "artwork", artworkID, func(c context.Context) error {
			_, err := s.store.FindArtwork(c, artworkID)
			return err
		})
	}
	s.record(ctx, "artwork", artworkID, Deleted, events.ArtworkDeleted)
	return Deleted, nil
}

// DecideExhibition approves an exhibition, resetting it to upcoming, or
// deletes it while it is still pending. Artworks it referenced are kept.
func (s *Service) DecideExhibition(ctx context.Context, exhibitionID string, approved bool) (Decision, error) {
	if approved {
		ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
			return s.store.ApproveExhibition(c, exhibitionID)
		})
		if err != nil {
			return "", fmt.Errorf("approve exhibition %s: %w", exhibitionID, err)
		}
		if !ok {
			return "", fmt.Errorf("exhibition %s: %w", exhibitionID, domain.ErrNotFound)
		}
		s.record(ctx, "exhibition", exhibitionID, Approved, events.ExhibitionApproved)
		return Approved, nil
	}

	ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
		return s.store.DeletePendingExhibition(c, exhibitionID)
	})
	if err != nil {
		return "", fmt.Errorf("reject exhibition %s: %w", exhibitionID, err)
	}
	if !ok {
		return "", s.whyNotDeleted(ctx, "exhibition", exhibitionID, func(c context.Context) error {
			_, err := s.store.FindExhibition(c, exhibitionID)
			return err
		})
	}
	s.record(ctx, "exhibition", exhibitionID, Deleted, events.ExhibitionDeleted)
	return Deleted, nil
}

// whyNotDeleted tells a vanished record from one approved in the meantime.
func (s *Service) whyNotDeleted(ctx context.Context, entity, id string, find func(context.Context) error) error {
	err := domain.Do(ctx, s.deps.Timeout, find)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	case err != nil:
		return fmt.Errorf("reject %s %s: %w", entity, id, err)
	}
	return fmt.Errorf("%w: %s %s is already approved", domain.ErrInvalidTransition, entity, id)
}

func (s *Service) record(ctx context.Context, entity, id string, d Decision, typ string) {
	s.deps.Metrics.Moderation(entity, string(d))
	s.deps.Log.Info("moderation decision",
		zap.String("entity", entity), zap.String("id", id), zap.String("decision", string(d)))
	s.deps.Emit(ctx, typ, id, map[string]string{"entity": entity, "decision": string(d)})
}

// SetActive suspends or reactivates an account. Setting the current value is
// a no-op.
func (s *Service) SetActive(ctx context.Context, userID string, active bool) (*users.Account, error) {
	acc, err := s.account(ctx, userID)
	if err != nil {
		return nil, err
	}
	if acc.IsActive == active {
		return acc, nil
	}
	return s.flipActive(ctx, acc, active)
}

func (s *Service) ToggleActive(ctx context.Context, userID string) (*users.Account, error) {
	acc, err := s.account(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.flipActive(ctx, acc, !acc.IsActive)
}

func (s *Service) flipActive(ctx context.Context, acc *users.Account, to bool) (*users.Account, error) {
	ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
		return s.store.SetAccountActive(c, acc.ID, acc.IsActive, to)
	})
	if err != nil {
		return nil, fmt.Errorf("set account %s active: %w", acc.ID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: account %s changed concurrently", domain.ErrInvalidTransition, acc.ID)
	}
	acc.IsActive = to
	s.deps.Log.Info("account status changed", zap.String("user_id", acc.ID), zap.Bool("active", to))
	return acc, nil
}

// SetFeatured marks an approved artist as featured on the public pages.
func (s *Service) SetFeatured(ctx context.Context, artistID string, featured bool) error {
	ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
		return s.store.SetArtistFeatured(c, artistID, featured)
	})
	if err != nil {
		return fmt.Errorf("feature artist %s: %w", artistID, err)
	}
	if !ok {
		return fmt.Errorf("approved artist %s: %w", artistID, domain.ErrNotFound)
	}
	return nil
}

func (s *Service) account(ctx context.Context, id string) (*users.Account, error) {
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) (*users.Account, error) {
		return s.store.FindAccount(c, id)
	})
}

func (s *Service) PendingArtists(ctx context.Context) ([]users.Account, error) {
	no := false
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]users.Account, error) {
		return s.store.ListAccounts(c, store.AccountFilter{Role: users.RoleArtist, IsApproved: &no})
	})
}

func (s *Service) PendingArtworks(ctx context.Context) ([]works.Artwork, error) {
	no := false
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]works.Artwork, error) {
		return s.store.ListArtworks(c, store.ArtworkFilter{IsApproved: &no})
	})
}

func (s *Service) PendingExhibitions(ctx context.Context) ([]exhibitions.Exhibition, error) {
	no := false
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]exhibitions.Exhibition, error) {
		return s.store.ListExhibitions(c, store.ExhibitionFilter{IsApproved: &no})
	})
}

// Accounts lists accounts for the admin user table, optionally by role.
func (s *Service) Accounts(ctx context.Context, role users.Role) ([]users.Account, error) {
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]users.Account, error) {
		return s.store.ListAccounts(c, store.AccountFilter{Role: role})
	})
}

// FeaturedArtists lists approved, active artists an admin has featured.
func (s *Service) FeaturedArtists(ctx context.Context, limit int) ([]users.Account, error) {
	yes := true
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]users.Account, error) {
		return s.store.ListAccounts(c, store.AccountFilter{
			Role:       users.RoleArtist,
			IsApproved: &yes,
			IsActive:   &yes,
			IsFeatured: &yes,
			Limit:      limit,
		})
	})
}
