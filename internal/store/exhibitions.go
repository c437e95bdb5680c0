package store

import (
	"context"
	"time"

	"chitrakalakar-app/internal/domain/exhibitions"
)

func (s *Store) CreateExhibition(ctx context.Context, e *exhibitions.Exhibition) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *Store) FindExhibition(ctx context.Context, id string) (*exhibitions.Exhibition, error) {
	var e exhibitions.Exhibition
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, notFound(err, "exhibition "+id)
	}
	return &e, nil
}

type ExhibitionFilter struct {
	ArtistID   string
	Statuses   []exhibitions.Status
	IsApproved *bool
	Limit      int
}

func (s *Store) ListExhibitions(ctx context.Context, f ExhibitionFilter) ([]exhibitions.Exhibition, error) {
	q := s.db.WithContext(ctx).Model(&exhibitions.Exhibition{})
	if f.ArtistID != "" {
		q = q.Where("artist_id = ?", f.ArtistID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.IsApproved != nil {
		q = q.Where("is_approved = ?", *f.IsApproved)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []exhibitions.Exhibition
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// ApproveExhibition approves and resets the schedule to upcoming. Archive
// stamps of an earlier cycle are cleared with it.
func (s *Store) ApproveExhibition(ctx context.Context, id string) (bool, error) {
	return changed(s.db.WithContext(ctx).Model(&exhibitions.Exhibition{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_approved":        true,
			"status":             exhibitions.StatusUpcoming,
			"archived_at":        nil,
			"archive_expires_at": nil,
		}))
}

func (s *Store) DeletePendingExhibition(ctx context.Context, id string) (bool, error) {
	return changed(s.db.WithContext(ctx).
		Where("id = ? AND is_approved = ?", id, false).
		Delete(&exhibitions.Exhibition{}))
}

// ArchiveExhibition stamps the archive window if the status is still from.
func (s *Store) ArchiveExhibition(ctx context.Context, id string, from exhibitions.Status, archivedAt, expiresAt time.Time) (bool, error) {
	return changed(s.db.WithContext(ctx).Model(&exhibitions.Exhibition{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":             exhibitions.StatusArchived,
			"archived_at":        archivedAt,
			"archive_expires_at": expiresAt,
		}))
}

func (s *Store) TransitionExhibition(ctx context.Context, id string, from, to exhibitions.Status) (bool, error) {
	return changed(s.db.WithContext(ctx).Model(&exhibitions.Exhibition{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to))
}

func (s *Store) MarkExhibitionPaid(ctx context.Context, id string) error {
	return mustChange(s.db.WithContext(ctx).Model(&exhibitions.Exhibition{}).
		Where("id = ?", id).
		Update("is_paid", true), "exhibition "+id)
}
