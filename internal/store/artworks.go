package store

import (
	"context"

	"chitrakalakar-app/internal/domain/works"
)

func (s *Store) CreateArtwork(ctx context.Context, a *works.Artwork) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *Store) FindArtwork(ctx context.Context, id string) (*works.Artwork, error) {
	var a works.Artwork
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFound(err, "artwork "+id)
	}
	return &a, nil
}

// FindArtworks loads the artworks that still exist among ids, keyed by id.
func (s *Store) FindArtworks(ctx context.Context, ids []string) (map[string]works.Artwork, error) {
	out := make(map[string]works.Artwork, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []works.Artwork
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, a := range rows {
		out[a.ID] = a
	}
	return out, nil
}

type ArtworkFilter struct {
	ArtistID   string
	IsApproved *bool
	Category   string
	Limit      int
}

func (s *Store) ListArtworks(ctx context.Context, f ArtworkFilter) ([]works.Artwork, error) {
	q := s.db.WithContext(ctx).Model(&works.Artwork{})
	if f.ArtistID != "" {
		q = q.Where("artist_id = ?", f.ArtistID)
	}
	if f.IsApproved != nil {
		q = q.Where("is_approved = ?", *f.IsApproved)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []works.Artwork
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) ApproveArtwork(ctx context.Context, id string) (bool, error) {
	return changed(s.db.WithContext(ctx).Model(&works.Artwork{}).
		Where("id = ?", id).
		Update("is_approved", true))
}

// DeletePendingArtwork removes an artwork only while it awaits review.
func (s *Store) DeletePendingArtwork(ctx context.Context, id string) (bool, error) {
	return changed(s.db.WithContext(ctx).
		Where("id = ? AND is_approved = ?", id, false).
		Delete(&works.Artwork{}))
}

// UpdateOwnedArtwork applies fields to an artwork owned by artistID and sends
// it back to review.
func (s *Store) UpdateOwnedArtwork(ctx context.Context, artistID, id string, fields map[string]any) (bool, error) {
	fields["is_approved"] = false
	return changed(s.db.WithContext(ctx).Model(&works.Artwork{}).
		Where("id = ? AND artist_id = ?", id, artistID).
		Updates(fields))
}

func (s *Store) DeleteOwnedArtwork(ctx context.Context, artistID, id string) (bool, error) {
	return changed(s.db.WithContext(ctx).
		Where("id = ? AND artist_id = ?", id, artistID).
		Delete(&works.Artwork{}))
}

func (s *Store) MarkArtworkSold(ctx context.Context, id string) error {
	return mustChange(s.db.WithContext(ctx).Model(&works.Artwork{}).
		Where("id = ?", id).
		Update("is_sold", true), "artwork "+id)
}

func (s *Store) MarkArtworksForExhibition(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&works.Artwork{}).
		Where("id IN ?", ids).
		Update("is_for_exhibition", true).Error
}
