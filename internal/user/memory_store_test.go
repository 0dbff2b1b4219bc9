package user

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/craftable/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSaveAssignsID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u, err := s.Save(ctx, &User{Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	// id is preserved on re-save
	u.Username = "alice"
	again, err := s.Save(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, 1, s.Count())
}

func TestMemoryStoreEmailUniqueness(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Save(ctx, &User{Email: "a@x.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = s.Save(ctx, &User{Email: "a@x.com", PasswordHash: "h2"})
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrEmailExists))
	assert.Equal(t, 1, s.Count())
}

func TestMemoryStoreSparseUniqueness(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	// many records may lack email and mobile simultaneously
	_, err := s.Save(ctx, &User{GoogleID: "sub-1"})
	require.NoError(t, err)
	_, err = s.Save(ctx, &User{GoogleID: "sub-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count())

	_, err = s.Save(ctx, &User{GoogleID: "sub-1"})
	assert.True(t, errx.IsCode(err, ErrGoogleIDExists))
}

func TestMemoryStoreGoogleRecordMaySharePasswordAccountEmail(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Save(ctx, &User{Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	// provider-linked record, no password hash: outside the email index
	_, err = s.Save(ctx, &User{Email: "a@x.com", GoogleID: "sub-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count())
}

func TestMemoryStoreFindSemantics(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now().UTC()
	saved, err := s.Save(ctx, &User{
		Mobile:       "5551234",
		PasswordHash: "h",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	byMobile, err := s.FindByMobile(ctx, "5551234")
	require.NoError(t, err)
	require.NotNil(t, byMobile)
	assert.Equal(t, saved.ID, byMobile.ID)

	byID, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)

	missing, err := s.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := s.ExistsByMobile(ctx, "5551234")
	require.NoError(t, err)
	assert.True(t, ok)
}
