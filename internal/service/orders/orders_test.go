package orders_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"chitrakalakar-app/internal/domain"
	domorders "chitrakalakar-app/internal/domain/orders"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/domain/works"
	"chitrakalakar-app/internal/service"
	"chitrakalakar-app/internal/service/orders"
	"chitrakalakar-app/internal/store"
	"chitrakalakar-app/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *orders.Service
	st       *store.Store
	artist   *users.Account
	customer *users.Account
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	st := storetest.New(t)

	artist, err := users.NewAccount("Asha", "asha@example.com", "h", users.RoleArtist, fixedNow)
	require.NoError(t, err)
	artist.IsApproved = true
	require.NoError(t, st.CreateAccount(ctx, artist))

	customer, err := users.NewAccount("Dev", "dev@example.com", "h", users.RoleCustomer, fixedNow)
	require.NoError(t, err)
	require.NoError(t, st.CreateAccount(ctx, customer))

	svc, err := orders.New(st, 1000, service.Deps{Timeout: time.Second, Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	return fixture{svc: svc, st: st, artist: artist, customer: customer}
}

func (f fixture) create(t *testing.T, amount int64) *domorders.Order {
	t.Helper()
	o, err := f.svc.Create(context.Background(), orders.CreateInput{
		ArtistID: f.artist.ID, CustomerID: f.customer.ID,
		ArtworkTitle: "Portrait", Amount: amount,
	})
	require.NoError(t, err)
	return o
}

func TestNew_RejectsBadRate(t *testing.T) {
	_, err := orders.New(nil, 10001, service.Deps{})
	assert.Error(t, err)
	_, err = orders.New(nil, -1, service.Deps{})
	assert.Error(t, err)
}

func TestCreate_FreezesSplit(t *testing.T) {
	f := setup(t)
	o := f.create(t, 5000)

	assert.Equal(t, domorders.StatusPending, o.Status)
	assert.Equal(t, int64(500), o.CommissionFee)
	assert.Equal(t, int64(4500), o.ArtistReceives)
	assert.True(t, o.Balanced())
	assert.Equal(t, f.customer.Email, o.CustomerEmail)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20260314-[0-9A-F]{6}$`), o.OrderNumber)
}

func TestCreate_RoundsHalfUp(t *testing.T) {
	f := setup(t)
	// 10% of 12345 is 1234.5
	o := f.create(t, 12345)
	assert.Equal(t, int64(1235), o.CommissionFee)
	assert.Equal(t, int64(11110), o.ArtistReceives)
}

func TestCreate_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, orders.CreateInput{ArtistID: f.artist.ID, CustomerID: f.customer.ID, ArtworkTitle: "x", Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Create(ctx, orders.CreateInput{ArtistID: f.customer.ID, CustomerID: f.customer.ID, ArtworkTitle: "x", Amount: 100})
	assert.ErrorIs(t, err, domain.ErrNotFound, "customers cannot take orders")

	_, err = f.svc.Create(ctx, orders.CreateInput{ArtistID: f.artist.ID, CustomerID: f.customer.ID, Amount: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "title required without artwork")
}

func TestCreate_TitleFromArtwork(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.st.CreateArtwork(ctx, &works.Artwork{ID: "aw-1", ArtistID: f.artist.ID, Title: "Tide"}))
	require.NoError(t, f.st.CreateArtwork(ctx, &works.Artwork{ID: "aw-2", ArtistID: "someone-else", Title: "Other"}))

	id := "aw-1"
	o, err := f.svc.Create(ctx, orders.CreateInput{ArtistID: f.artist.ID, CustomerID: f.customer.ID, ArtworkID: &id, Amount: 900})
	require.NoError(t, err)
	assert.Equal(t, "Tide", o.ArtworkTitle)

	other := "aw-2"
	_, err = f.svc.Create(ctx, orders.CreateInput{ArtistID: f.artist.ID, CustomerID: f.customer.ID, ArtworkID: &other, Amount: 900})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_ForwardPath(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	o := f.create(t, 5000)

	for _, s := range []domorders.Status{
		domorders.StatusInProgress,
		domorders.StatusPendingApproval,
		domorders.StatusCompleted,
	} {
		got, err := f.svc.UpdateStatus(ctx, f.artist.ID, o.ID, s)
		require.NoError(t, err)
		assert.Equal(t, s, got.Status)
	}

	stored, err := f.st.FindOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), stored.CommissionFee, "completion never recomputes the split")
	assert.Equal(t, int64(4500), stored.ArtistReceives)

	earned, err := f.svc.Earnings(ctx, f.artist.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), earned)
}

func TestUpdateStatus_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	o := f.create(t, 5000)

	_, err := f.svc.UpdateStatus(ctx, f.artist.ID, o.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.UpdateStatus(ctx, f.artist.ID, o.ID, domorders.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "pending is never a target")

	_, err = f.svc.UpdateStatus(ctx, "other-artist", o.ID, domorders.StatusInProgress)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.UpdateStatus(ctx, f.artist.ID, o.ID, domorders.StatusPendingApproval)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, f.artist.ID, o.ID, domorders.StatusInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no moving backwards")

	got, err := f.svc.UpdateStatus(ctx, f.artist.ID, o.ID, domorders.StatusPendingApproval)
	require.NoError(t, err, "same status is a no-op")
	assert.Equal(t, domorders.StatusPendingApproval, got.Status)

	_, err = f.svc.UpdateStatus(ctx, f.artist.ID, o.ID, domorders.StatusCancelled)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, f.artist.ID, o.ID, domorders.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "cancelled is terminal")

	earned, err := f.svc.Earnings(ctx, f.artist.ID)
	require.NoError(t, err)
	assert.Zero(t, earned)
}

type racingStore struct {
	*store.Store
}

func (racingStore) UpdateOrderStatus(context.Context, string, string, domorders.Status, domorders.Status) (bool, error) {
	return false, nil
}

func TestUpdateStatus_LostRace(t *testing.T) {
	f := setup(t)
	o := f.create(t, 5000)

	svc, err := orders.New(racingStore{f.st}, 1000, service.Deps{})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), f.artist.ID, o.ID, domorders.StatusInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestListsAndGet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	o := f.create(t, 1000)
	f.create(t, 2000)

	mine, err := f.svc.ListForArtist(ctx, f.artist.ID, "")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pending, err := f.svc.ListForArtist(ctx, f.artist.ID, domorders.StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, pending)

	theirs, err := f.svc.ListForCustomer(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 2)

	_, err = f.svc.Get(ctx, f.customer.ID, o.ID)
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, "stranger", o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
