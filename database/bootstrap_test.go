package database

import (
	"context"
	"testing"

	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/store"
	"chitrakalakar-app/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestEnsureDefaultAdmin_Idempotent(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	log := zap.NewNop()

	require.NoError(t, EnsureDefaultAdmin(ctx, st, "root@example.com", "first", log))
	require.NoError(t, EnsureDefaultAdmin(ctx, st, "root@example.com", "second", log))

	admins, err := st.ListAccounts(ctx, store.AccountFilter{Role: users.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsApproved)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].Password), []byte("first")))
}

func TestEnsureDefaultAdmin_SkipsWithoutPassword(t *testing.T) {
	st := storetest.New(t)
	require.NoError(t, EnsureDefaultAdmin(context.Background(), st, "root@example.com", "", zap.NewNop()))

	_, err := st.FindAccountByEmail(context.Background(), "root@example.com")
	assert.Error(t, err)
}
