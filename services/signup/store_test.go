package signup

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visionpay/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()
	w := NewWizard("s1", true, time.Now())

	require.NoError(t, store.Save(ctx, w.Session()))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, w.Session().Steps, got.Steps)

	// Callers get copies.
	got.Steps[0] = models.StepSuccess
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StepBasicInfo, again.Steps[0])

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, NewWizard("s1", false, now).Session()))

	now = now.Add(59 * time.Second)
	_, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, 30*time.Minute, nil)
	ctx := context.Background()
	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	w := NewWizard("s1", true, created)
	w.UpdateFormData(models.SignupFormUpdate{Email: strPtr("ada@example.com")})
	w.Advance()

	require.NoError(t, store.Save(ctx, w.Session()))
	assert.True(t, mr.Exists("signup:session:s1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("signup:session:s1"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, w.Session().Steps, got.Steps)
	assert.Equal(t, 1, got.Position)
	assert.Equal(t, "ada@example.com", got.FormData.Email)
	assert.True(t, created.Equal(got.CreatedAt))

	mr.FastForward(31 * time.Minute)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, time.Minute, nil)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, NewWizard("s2", false, time.Now()).Session()))
	require.NoError(t, store.Delete(ctx, "s2"))

	_, err := store.Get(ctx, "s2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
