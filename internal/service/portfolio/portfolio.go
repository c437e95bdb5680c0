package portfolio

import (
	"context"
	"fmt"
	"strings"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/events"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/domain/works"
	"chitrakalakar-app/internal/service"
	"chitrakalakar-app/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store interface {
	FindAccount(ctx context.Context, id string) (*users.Account, error)
	CreateArtwork(ctx context.Context, a *works.Artwork) error
	FindArtwork(ctx context.Context, id string) (*works.Artwork, error)
	ListArtworks(ctx context.Context, f store.ArtworkFilter) ([]works.Artwork, error)
	UpdateOwnedArtwork(ctx context.Context, artistID, id string, fields map[string]any) (bool, error)
	DeleteOwnedArtwork(ctx context.Context, artistID, id string) (bool, error)
}

type ArtworkInput struct {
	Title       string
	Category    string
	Price       int64
	Image       string
	Description *string
}

func (in ArtworkInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}

// Service manages an artist's own artworks. Every submission and edit goes
// back through moderation.
type Service struct {
	store Store
	deps  service.Deps
}

func New(st Store, deps service.Deps) *Service {
	return &Service{store: st, deps: deps.WithDefaults()}
}

func (s *Service) Submit(ctx context.Context, artistID string, in ArtworkInput) (*works.Artwork, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	artist, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (*users.Account, error) {
		return s.store.FindAccount(c, artistID)
	})
	if err != nil {
		return nil, err
	}
	if !artist.CanActAsArtist() {
		return nil, fmt.Errorf("%w: artist %s is not approved", domain.ErrForbidden, artistID)
	}

	a := &works.Artwork{
		ID:          uuid.NewString(),
		ArtistID:    artist.ID,
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Image:       in.Image,
		Description: in.Description,
	}
	if err := domain.Do(ctx, s.deps.Timeout, func(c context.Context) error {
		return s.store.CreateArtwork(c, a)
	}); err != nil {
		return nil, fmt.Errorf("submit artwork: %w", err)
	}
	s.deps.Log.Info("artwork submitted", zap.String("artwork_id", a.ID), zap.String("artist_id", a.ArtistID))
	s.deps.Emit(ctx, events.ArtworkSubmitted, a.ID, map[string]string{"artist_id": a.ArtistID})
	return a, nil
}

// Update edits an owned artwork and returns it to the review queue.
func (s *Service) Update(ctx context.Context, artistID, artworkID string, in ArtworkInput) (*works.Artwork, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"title":       strings.TrimSpace(in.Title),
		"category":    strings.TrimSpace(in.Category),
		"price":       in.Price,
		"image":       in.Image,
		"description": in.Description,
	}
	ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
		return s.store.UpdateOwnedArtwork(c, artistID, artworkID, fields)
	})
	if err != nil {
		return nil, fmt.Errorf("update artwork %s: %w", artworkID, err)
	}
	if !ok {
		return nil, fmt.Errorf("artwork %s: %w", artworkID, domain.ErrNotFound)
	}
	s.deps.Emit(ctx, events.ArtworkSubmitted, artworkID, map[string]string{"artist_id": artistID})
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) (*works.Artwork, error) {
		return s.store.FindArtwork(c, artworkID)
	})
}

func (s *Service) Delete(ctx context.Context, artistID, artworkID string) error {
	ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
		return s.store.DeleteOwnedArtwork(c, artistID, artworkID)
	})
	if err != nil {
		return fmt.Errorf("delete artwork %s: %w", artworkID, err)
	}
	if !ok {
		return fmt.Errorf("artwork %s: %w", artworkID, domain.ErrNotFound)
	}
	s.deps.Emit(ctx, events.ArtworkDeleted, artworkID, map[string]string{"artist_id": artistID})
	return nil
}

func (s *Service) ListForArtist(ctx context.Context, artistID string) ([]works.Artwork, error) {
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]works.Artwork, error) {
		return s.store.ListArtworks(c, store.ArtworkFilter{ArtistID: artistID})
	})
}

// ListPublic lists approved artworks, optionally of one category.
func (s *Service) ListPublic(ctx context.Context, category string, limit int) ([]works.Artwork, error) {
	yes := true
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]works.Artwork, error) {
		return s.store.ListArtworks(c, store.ArtworkFilter{IsApproved: &yes, Category: category, Limit: limit})
	})
}

// GetPublic hides artworks that have not passed moderation.
func (s *Service) GetPublic(ctx context.Context, id string) (*works.Artwork, error) {
	a, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (*works.Artwork, error) {
		return s.store.FindArtwork(c, id)
	})
	if err != nil {
		return nil, err
	}
	if !a.PubliclyVisible() {
		return nil, fmt.Errorf("artwork %s: %w", id, domain.ErrNotFound)
	}
	return a, nil
}
