package username

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/craftable/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multiauth-service/internal/user"
)

func seedUser(t *testing.T, store *user.MemoryStore) *user.User {
	t.Helper()
	now := time.Now().UTC().Add(-time.Hour)
	u, err := store.Save(context.Background(), &user.User{
		Email:        "a@x.com",
		PasswordHash: "h",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return u
}

func TestUsernameLifecycle(t *testing.T) {
	store := user.NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()
	u := seedUser(t, store)

	res, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Username)

	res, err = svc.Set(ctx, u.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, u.ID, res.UserID)

	res, err = svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)

	require.NoError(t, svc.Delete(ctx, u.ID))

	res, err = svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Username)
}

func TestSetRefreshesUpdatedAtOnly(t *testing.T) {
	store := user.NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()
	u := seedUser(t, store)

	_, err := svc.Set(ctx, u.ID, "alice")
	require.NoError(t, err)

	after, err := store.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(u.UpdatedAt))
	assert.Equal(t, u.CreatedAt, after.CreatedAt)
	// identity fields untouched
	assert.Equal(t, u.Email, after.Email)
	assert.Equal(t, u.PasswordHash, after.PasswordHash)
}

func TestUnknownUserIs404(t *testing.T) {
	svc := NewService(user.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.Get(ctx, "ghost")
	assert.True(t, errx.IsCode(err, user.ErrNotFound))
	assert.True(t, errx.IsHTTPStatus(err, 404))

	_, err = svc.Set(ctx, "ghost", "alice")
	assert.True(t, errx.IsCode(err, user.ErrNotFound))

	err = svc.Delete(ctx, "ghost")
	assert.True(t, errx.IsCode(err, user.ErrNotFound))
}

func TestDeleteKeepsIdentityRecord(t *testing.T) {
	store := user.NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()
	u := seedUser(t, store)

	_, err := svc.Set(ctx, u.ID, "alice")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, u.ID))

	assert.Equal(t, 1, store.Count())
}
