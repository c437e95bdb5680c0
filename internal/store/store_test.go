package store_test

import (
	"context"
	"testing"
	"time"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/billing"
	"chitrakalakar-app/internal/domain/exhibitions"
	"chitrakalakar-app/internal/domain/orders"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/domain/works"
	"chitrakalakar-app/internal/store"
	"chitrakalakar-app/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAccountIfAbsent_IsConditional(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	a, err := users.NewAccount("Admin", "admin@example.com", "hash", users.RoleAdmin, time.Now())
	require.NoError(t, err)
	inserted, err := s.InsertAccountIfAbsent(ctx, a)
	require.NoError(t, err)
	assert.True(t, inserted)

	again, err := users.NewAccount("Admin 2", "admin@example.com", "hash", users.RoleAdmin, time.Now())
	require.NoError(t, err)
	inserted, err = s.InsertAccountIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := s.FindAccountByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestFindAccount_NotFound(t *testing.T) {
	s := storetest.New(t)
	_, err := s.FindAccount(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetArtistApproval_OnlyArtists(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	customer, _ := users.NewAccount("C", "c@example.com", "h", users.RoleCustomer, time.Now())
	require.NoError(t, s.CreateAccount(ctx, customer))

	ok, err := s.SetArtistApproval(ctx, customer.ID, true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetArtistApproval_RejectOnlyPending(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	artist, _ := users.NewAccount("A", "a@example.com", "h", users.RoleArtist, time.Now())
	require.NoError(t, s.CreateAccount(ctx, artist))

	ok, err := s.SetArtistApproval(ctx, artist.ID, true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.SetArtistApproval(ctx, artist.ID, false)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.FindAccount(ctx, artist.ID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)
}

func TestDeletePendingArtwork_SparesApproved(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	a := &works.Artwork{ID: "aw-1", ArtistID: "artist-1", Title: "Lotus"}
	require.NoError(t, s.CreateArtwork(ctx, a))
	ok, err := s.ApproveArtwork(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)

	deleted, err := s.DeletePendingArtwork(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = s.FindArtwork(ctx, a.ID)
	assert.NoError(t, err)
}

func TestUpdateOrderStatus_RequiresPreState(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	o := &orders.Order{
		ID: "o-1", OrderNumber: "ORD-20260101-ABC123",
		ArtistID: "artist-1", CustomerID: "cust-1",
		Amount: 5000, CommissionFee: 500, ArtistReceives: 4500,
		Status: orders.StatusPending, StartDate: time.Now(),
	}
	require.NoError(t, s.CreateOrder(ctx, o))

	ok, err := s.UpdateOrderStatus(ctx, "artist-1", o.ID, orders.StatusPending, orders.StatusInProgress)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.UpdateOrderStatus(ctx, "artist-1", o.ID, orders.StatusPending, orders.StatusCompleted)
	require.NoError(t, err)
	assert.False(t, ok, "stale pre-state must lose")

	ok, err = s.UpdateOrderStatus(ctx, "artist-2", o.ID, orders.StatusInProgress, orders.StatusCompleted)
	require.NoError(t, err)
	assert.False(t, ok, "other artists cannot move the order")
}

func TestArchiveExhibition_StampsWindow(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	e := &exhibitions.Exhibition{
		ID: "ex-1", ArtistID: "artist-1", Name: "Monsoon",
		Status: exhibitions.StatusActive, DaysPaid: 3, Fees: 100000,
		ArtworkIDs: []string{"a", "b"},
	}
	require.NoError(t, s.CreateExhibition(ctx, e))

	at, exp := exhibitions.ArchiveWindow(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), 3)
	ok, err := s.ArchiveExhibition(ctx, e.ID, exhibitions.StatusActive, at, exp)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := s.FindExhibition(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, exhibitions.StatusArchived, got.Status)
	require.NotNil(t, got.ArchivedAt)
	require.NotNil(t, got.ArchiveExpiresAt)
	assert.True(t, got.ArchiveExpiresAt.Equal(got.ArchivedAt.Add(3*exhibitions.Day)))
	assert.Equal(t, []string{"a", "b"}, got.ArtworkIDs)

	ok, err = s.ArchiveExhibition(ctx, e.ID, exhibitions.StatusActive, at, exp)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSettlePayment_FlipsOnce(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	acc, _ := users.NewAccount("M", "m@example.com", "h", users.RoleCustomer, time.Now())
	require.NoError(t, s.CreateAccount(ctx, acc))
	require.NoError(t, s.CreatePayment(ctx, &billing.PaymentTransaction{
		SessionID: "cs_1", OrderType: billing.OrderMembership,
		PaymentStatus: billing.PaymentPending, UserID: acc.ID,
		Amount: 49900, Currency: "inr",
	}))

	grant := func(e billing.Entitlements) error { return e.GrantMembership(ctx, acc.ID) }

	settled, err := s.SettlePayment(ctx, "cs_1", time.Now(), grant)
	require.NoError(t, err)
	assert.True(t, settled)

	settled, err = s.SettlePayment(ctx, "cs_1", time.Now(), grant)
	require.NoError(t, err)
	assert.False(t, settled)

	p, err := s.FindPayment(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, billing.PaymentPaid, p.PaymentStatus)
	assert.NotNil(t, p.PaidAt)

	got, err := s.FindAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, got.IsMember)
}

func TestSettlePayment_EffectFailureKeepsPending(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePayment(ctx, &billing.PaymentTransaction{
		SessionID: "cs_2", OrderType: billing.OrderExhibition,
		PaymentStatus: billing.PaymentPending, UserID: "u",
		Amount: 100000, Currency: "inr",
	}))

	settled, err := s.SettlePayment(ctx, "cs_2", time.Now(), func(e billing.Entitlements) error {
		return e.MarkExhibitionPaid(ctx, "gone")
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, settled)

	p, err := s.FindPayment(ctx, "cs_2")
	require.NoError(t, err)
	assert.Equal(t, billing.PaymentPending, p.PaymentStatus)
}

func TestSumOrders_CompletedOnly(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	for i, st := range []orders.Status{orders.StatusCompleted, orders.StatusInProgress, orders.StatusCompleted} {
		require.NoError(t, s.CreateOrder(ctx, &orders.Order{
			ID: string(rune('a' + i)), OrderNumber: "ORD-" + string(rune('a'+i)),
			ArtistID: "artist-1", CustomerID: "c",
			Amount: 1000, CommissionFee: 100, ArtistReceives: 900,
			Status: st, StartDate: time.Now(),
		}))
	}

	total, err := s.SumOrders(ctx, "artist_receives", store.OrderFilter{ArtistID: "artist-1", Statuses: []orders.Status{orders.StatusCompleted}})
	require.NoError(t, err)
	assert.Equal(t, int64(1800), total)
}
