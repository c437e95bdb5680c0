package dashboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"chitrakalakar-app/internal/domain/orders"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/domain/works"
	"chitrakalakar-app/internal/service"
	"chitrakalakar-app/internal/service/dashboard"
	"chitrakalakar-app/internal/store"
	"chitrakalakar-app/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatisfactionRate(t *testing.T) {
	assert.Equal(t, 0.0, dashboard.SatisfactionRate(0, 0))
	assert.Equal(t, 100.0, dashboard.SatisfactionRate(4, 0))
	assert.Equal(t, 66.7, dashboard.SatisfactionRate(2, 1))
	assert.Equal(t, 33.3, dashboard.SatisfactionRate(1, 2))
}

func seedOrders(t *testing.T, st *store.Store, artistID string, statuses ...orders.Status) {
	t.Helper()
	for i, s := range statuses {
		require.NoError(t, st.CreateOrder(context.Background(), &orders.Order{
			ID: fmt.Sprintf("%s-o%d", artistID, i), OrderNumber: fmt.Sprintf("ORD-%s-%d", artistID, i),
			ArtistID: artistID, CustomerID: "cust",
			Amount: 10000, CommissionFee: 1000, ArtistReceives: 9000,
			Status: s, StartDate: time.Now(),
		}))
	}
}

func TestDashboards_CountCompletedRevenueOnly(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	svc := dashboard.New(st, service.Deps{Timeout: time.Second})

	artist, err := users.NewAccount("Tara", "tara@example.com", "h", users.RoleArtist, time.Now())
	require.NoError(t, err)
	require.NoError(t, st.CreateAccount(ctx, artist))
	require.NoError(t, st.CreateArtwork(ctx, &works.Artwork{ID: "w1", ArtistID: artist.ID, Title: "A", Price: 500, IsApproved: true}))
	require.NoError(t, st.CreateArtwork(ctx, &works.Artwork{ID: "w2", ArtistID: artist.ID, Title: "B", Price: 700}))

	seedOrders(t, st, artist.ID,
		orders.StatusCompleted, orders.StatusCompleted,
		orders.StatusInProgress, orders.StatusCancelled, orders.StatusPendingApproval)

	a, err := svc.Artist(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(18000), a.TotalEarnings)
	assert.Equal(t, int64(2), a.CompletedOrders)
	assert.Equal(t, int64(1), a.InProgressOrders)
	assert.Equal(t, int64(5), a.TotalOrders)
	assert.Equal(t, int64(2), a.TotalArtworks)
	assert.Equal(t, int64(1), a.ApprovedArtworks)
	assert.Equal(t, int64(1200), a.PortfolioValue)

	adm, err := svc.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), adm.PendingArtists)
	assert.Equal(t, int64(1), adm.PendingArtworks)
	assert.Equal(t, int64(2000), adm.TotalRevenue)
	assert.Equal(t, int64(5), adm.TotalOrders)

	pub, err := svc.Public(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pub.TotalArtists)
	assert.Equal(t, int64(2), pub.CompletedProjects)
	assert.Equal(t, 66.7, pub.SatisfactionRate)
}

func TestArtistCountsAndNames(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	svc := dashboard.New(st, service.Deps{Timeout: time.Second})

	artist, err := users.NewAccount("Uma", "uma@example.com", "h", users.RoleArtist, time.Now())
	require.NoError(t, err)
	require.NoError(t, st.CreateAccount(ctx, artist))
	require.NoError(t, st.CreateArtwork(ctx, &works.Artwork{ID: "u1", ArtistID: artist.ID, Title: "A", Price: 500, IsApproved: true}))
	require.NoError(t, st.CreateArtwork(ctx, &works.Artwork{ID: "u2", ArtistID: artist.ID, Title: "B", Price: 700}))
	seedOrders(t, st, artist.ID, orders.StatusCompleted, orders.StatusInProgress)

	counts, err := svc.ArtistCounts(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.ArtworkCount)
	assert.Equal(t, int64(1), counts.CompletedProjects)

	names, err := svc.ArtistNames(ctx, []string{artist.ID, "gone", artist.ID})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{artist.ID: "Uma", "gone": "Unknown"}, names)
}
