package store

import (
	"context"
	"errors"
	"time"

	"chitrakalakar-app/internal/domain/billing"

	"gorm.io/gorm"
)

var errLostSettle = errors.New("payment already settled")

func (s *Store) CreatePayment(ctx context.Context, p *billing.PaymentTransaction) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Store) FindPayment(ctx context.Context, sessionID string) (*billing.PaymentTransaction, error) {
	var p billing.PaymentTransaction
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&p).Error; err != nil {
		return nil, notFound(err, "payment session "+sessionID)
	}
	return &p, nil
}

func (s *Store) ListPayments(ctx context.Context, userID string) ([]billing.PaymentTransaction, error) {
	q := s.db.WithContext(ctx).Model(&billing.PaymentTransaction{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var out []billing.PaymentTransaction
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// SettlePayment applies the domain effect and flips the session from pending
// to paid in one transaction. The effect runs first so that a crash before
// commit leaves the session pending and the whole step re-runnable. It
// reports false, with nothing committed, when another caller already flipped
// the session.
func (s *Store) SettlePayment(ctx context.Context, sessionID string, paidAt time.Time, apply func(billing.Entitlements) error) (bool, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := apply(&Store{db: tx}); err != nil {
			return err
		}
		ok, err := changed(tx.Model(&billing.PaymentTransaction{}).
			Where("session_id = ? AND payment_status = ?", sessionID, billing.PaymentPending).
			Updates(map[string]any{
				"payment_status": billing.PaymentPaid,
				"paid_at":        paidAt,
			}))
		if err != nil {
			return err
		}
		if !ok {
			return errLostSettle
		}
		return nil
	})
	if errors.Is(err, errLostSettle) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
