package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ack-hub/internal/domain"
)

func exerciseDraftRepository(t *testing.T, repo DraftRepository) {
	t.Helper()
	ctx := context.Background()

	draft := &domain.Draft{
		ID:          "draft-1",
		OwnerEmail:  "sara.ahmed@domain.com",
		TypeID:      "safety",
		State:       domain.FormStateFormOpen,
		FieldErrors: map[string]string{domain.FieldAcknowledged: "required"},
		CreatedAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, draft))

	draft.FieldErrors["other"] = "mutated after save"

	got, err := repo.Get(ctx, "draft-1")
	require.NoError(t, err)
	assert.Equal(t, "safety", got.TypeID)
	assert.Equal(t, map[string]string{domain.FieldAcknowledged: "required"}, got.FieldErrors)

	claimed, err := repo.Claim(ctx, "draft-1")
	require.NoError(t, err)
	assert.True(t, claimed)
	claimed, err = repo.Claim(ctx, "draft-1")
	require.NoError(t, err)
	assert.False(t, claimed, "second claim must wait for release")

	require.NoError(t, repo.Release(ctx, "draft-1"))
	claimed, err = repo.Claim(ctx, "draft-1")
	require.NoError(t, err)
	assert.True(t, claimed)
	require.NoError(t, repo.Release(ctx, "draft-1"))

	require.NoError(t, repo.Delete(ctx, "draft-1"))
	_, err = repo.Get(ctx, "draft-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDraftRepository(t *testing.T) {
	exerciseDraftRepository(t, NewMemoryDraftRepository(time.Minute, time.Minute))
}

func TestMemoryDraftRepositoryExpires(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDraftRepository(20*time.Millisecond, time.Minute)

	require.NoError(t, repo.Save(ctx, &domain.Draft{ID: "short"}))
	time.Sleep(50 * time.Millisecond)

	_, err := repo.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisDraftRepository(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	exerciseDraftRepository(t, NewRedisDraftRepository(client, time.Minute))
}
