package portfolio_test

import (
	"context"
	"testing"
	"time"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/service"
	"chitrakalakar-app/internal/service/moderation"
	"chitrakalakar-app/internal/service/portfolio"
	"chitrakalakar-app/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitApproveRejectScenario(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	deps := service.Deps{Timeout: time.Second}
	works := portfolio.New(st, deps)
	gate := moderation.New(st, deps)

	artist, err := users.NewAccount("Nila", "nila@example.com", "h", users.RoleArtist, time.Now())
	require.NoError(t, err)
	require.NoError(t, st.CreateAccount(ctx, artist))

	_, err = works.Submit(ctx, artist.ID, portfolio.ArtworkInput{Title: "Early"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "unapproved artists cannot submit")

	_, err = gate.DecideArtist(ctx, artist.ID, true)
	require.NoError(t, err)

	first, err := works.Submit(ctx, artist.ID, portfolio.ArtworkInput{Title: "Harbour", Category: "oil", Price: 120000})
	require.NoError(t, err)
	assert.False(t, first.IsApproved)

	listed, err := works.ListPublic(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = gate.DecideArtwork(ctx, first.ID, true)
	require.NoError(t, err)

	listed, err = works.ListPublic(ctx, "oil", 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, first.ID, listed[0].ID)

	second, err := works.Submit(ctx, artist.ID, portfolio.ArtworkInput{Title: "Smudge"})
	require.NoError(t, err)
	_, err = gate.DecideArtwork(ctx, second.ID, false)
	require.NoError(t, err)

	_, err = works.GetPublic(ctx, second.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_SendsBackToReview(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	svc := portfolio.New(st, service.Deps{})

	artist, err := users.NewAccount("Om", "om@example.com", "h", users.RoleArtist, time.Now())
	require.NoError(t, err)
	artist.IsApproved = true
	require.NoError(t, st.CreateAccount(ctx, artist))

	a, err := svc.Submit(ctx, artist.ID, portfolio.ArtworkInput{Title: "Draft", Price: 100})
	require.NoError(t, err)
	ok, err := st.ApproveArtwork(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)

	updated, err := svc.Update(ctx, artist.ID, a.ID, portfolio.ArtworkInput{Title: "Final", Price: 200})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, int64(200), updated.Price)
	assert.False(t, updated.IsApproved)

	_, err = svc.Update(ctx, "someone-else", a.ID, portfolio.ArtworkInput{Title: "Hijack"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, artist.ID, a.ID, portfolio.ArtworkInput{Title: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, svc.Delete(ctx, "someone-else", a.ID), domain.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, artist.ID, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, artist.ID, a.ID), domain.ErrNotFound)
}
