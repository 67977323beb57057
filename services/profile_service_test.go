package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-marketplace/internal/status"
	"ticket-marketplace/models"
)

func TestProfileService_DefaultProfile(t *testing.T) {
	env := newTestEnv(t)

	profile, err := env.profile.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, profile.Balance.Equal(decimal.Zero))
	assert.Empty(t, profile.DisplayName)
}

func TestProfileService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile, err := env.profile.Update(ctx, ProfileUpdate{
		UserID:      "user-1",
		DisplayName: "Alex Doe",
		Email:       "alex@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex Doe", profile.DisplayName)
	assert.False(t, profile.UpdatedAt.IsZero())

	// Empty fields keep their previous values.
	profile, err = env.profile.Update(ctx, ProfileUpdate{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alex Doe", profile.DisplayName)
	assert.Equal(t, "new@example.com", profile.Email)
}

func TestProfileService_AccessCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Nothing set yet.
	ok, err := env.profile.VerifyAccessCode(ctx, "1234")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, env.profile.SetAccessCode(ctx, "1234"))

	ok, err = env.profile.VerifyAccessCode(ctx, "1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.profile.VerifyAccessCode(ctx, "9999")
	require.NoError(t, err)
	assert.False(t, ok)

	// The stored value is a hash, not the code.
	profile, err := env.profile.Get(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, profile.AccessCodeHash)
	assert.NotEqual(t, "1234", profile.AccessCodeHash)

	assert.ErrorIs(t, env.profile.SetAccessCode(ctx, ""), status.ErrInvalidInput)
}

func TestProfileService_Credit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	balance, err := env.profile.Credit(ctx, decimal.RequireFromString("98.80"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("98.80")))

	balance, err = env.profile.Credit(ctx, decimal.RequireFromString("47.50"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("146.30")))

	_, err = env.profile.Credit(ctx, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, status.ErrInvalidInput)
}

func TestProfileService_Settings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Defaults before anything is stored.
	settings, err := env.profile.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EUR", settings.Currency)
	assert.True(t, settings.Notifications)

	require.NoError(t, env.profile.UpdateSettings(ctx, models.Settings{Currency: "USD", Notifications: false}))

	settings, err = env.profile.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", settings.Currency)
	assert.False(t, settings.Notifications)

	assert.ErrorIs(t, env.profile.UpdateSettings(ctx, models.Settings{}), status.ErrInvalidInput)
}
