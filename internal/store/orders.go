package store

import (
	"context"

	"chitrakalakar-app/internal/domain/orders"

	"gorm.io/gorm"
)

func (s *Store) CreateOrder(ctx context.Context, o *orders.Order) error {
	return s.db.WithContext(ctx).Create(o).Error
}

func (s *Store) FindOrder(ctx context.Context, id string) (*orders.Order, error) {
	var o orders.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, notFound(err, "order "+id)
	}
	return &o, nil
}

// FindArtistOrder loads an order only if artistID fulfils it.
func (s *Store) FindArtistOrder(ctx context.Context, artistID, id string) (*orders.Order, error) {
	var o orders.Order
	if err := s.db.WithContext(ctx).Where("id = ? AND artist_id = ?", id, artistID).First(&o).Error; err != nil {
		return nil, notFound(err, "order "+id)
	}
	return &o, nil
}

type OrderFilter struct {
	ArtistID   string
	CustomerID string
	Statuses   []orders.Status
	Limit      int
}

func ordersQuery(db *gorm.DB, f OrderFilter) *gorm.DB {
	q := db.Model(&orders.Order{})
	if f.ArtistID != "" {
		q = q.Where("artist_id = ?", f.ArtistID)
	}
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	return q
}

func (s *Store) ListOrders(ctx context.Context, f OrderFilter) ([]orders.Order, error) {
	q := ordersQuery(s.db.WithContext(ctx), f)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []orders.Order
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// UpdateOrderStatus moves an order from -> to for its artist only.
func (s *Store) UpdateOrderStatus(ctx context.Context, artistID, id string, from, to orders.Status) (bool, error) {
	return changed(s.db.WithContext(ctx).Model(&orders.Order{}).
		Where("id = ? AND artist_id = ? AND status = ?", id, artistID, from).
		Update("status", to))
}

func (s *Store) MarkOrderPaid(ctx context.Context, id string) error {
	return mustChange(s.db.WithContext(ctx).Model(&orders.Order{}).
		Where("id = ?", id).
		Update("is_paid", true), "order "+id)
}
