package store

import (
	"context"

	"chitrakalakar-app/internal/domain/exhibitions"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/domain/works"
)

func (s *Store) CountAccounts(ctx context.Context, f AccountFilter) (int64, error) {
	q := s.db.WithContext(ctx).Model(&users.Account{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.IsApproved != nil {
		q = q.Where("is_approved = ?", *f.IsApproved)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (s *Store) CountArtworks(ctx context.Context, f ArtworkFilter) (int64, error) {
	q := s.db.WithContext(ctx).Model(&works.Artwork{})
	if f.ArtistID != "" {
		q = q.Where("artist_id = ?", f.ArtistID)
	}
	if f.IsApproved != nil {
		q = q.Where("is_approved = ?", *f.IsApproved)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (s *Store) SumArtworkPrices(ctx context.Context, artistID string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&works.Artwork{}).
		Where("artist_id = ?", artistID).
		Select("COALESCE(SUM(price), 0)").
		Scan(&total).Error
	return total, err
}

func (s *Store) CountExhibitions(ctx context.Context, f ExhibitionFilter) (int64, error) {
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
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (s *Store) SumExhibitionViews(ctx context.Context, artistID string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&exhibitions.Exhibition{}).
		Where("artist_id = ?", artistID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}

func (s *Store) CountOrders(ctx context.Context, f OrderFilter) (int64, error) {
	var n int64
	err := ordersQuery(s.db.WithContext(ctx), f).Count(&n).Error
	return n, err
}

// SumOrders totals one of the settlement columns over the filtered orders.
func (s *Store) SumOrders(ctx context.Context, column string, f OrderFilter) (int64, error) {
	switch column {
	case "amount", "commission_fee", "artist_receives":
	default:
		column = "amount"
	}
	var total int64
	err := ordersQuery(s.db.WithContext(ctx), f).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	return total, err
}
