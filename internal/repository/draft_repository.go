package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/ack-hub/internal/domain"
)

const (
	draftKeyPrefix     = "ackhub:draft:"
	draftLockKeyPrefix = "ackhub:draft:lock:"
)

// DraftRepository keeps in-progress forms. Save refreshes the expiry.
// Claim takes an exclusive submit lock on a draft and reports false when
// another caller already holds it; Release drops the lock.
type DraftRepository interface {
	Save(ctx context.Context, draft *domain.Draft) error
	Get(ctx context.Context, id string) (*domain.Draft, error)
	Delete(ctx context.Context, id string) error
	Claim(ctx context.Context, id string) (bool, error)
	Release(ctx context.Context, id string) error
}

type memoryDraftRepository struct {
	c   *cache.Cache
	ttl time.Duration
}

// NewMemoryDraftRepository stores drafts in a local expiring cache.
func NewMemoryDraftRepository(ttl, cleanupInterval time.Duration) DraftRepository {
	return &memoryDraftRepository{c: cache.New(ttl, cleanupInterval), ttl: ttl}
}

func (r *memoryDraftRepository) Save(_ context.Context, draft *domain.Draft) error {
	r.c.Set(draftKeyPrefix+draft.ID, *cloneDraft(draft), r.ttl)
	return nil
}

func (r *memoryDraftRepository) Get(_ context.Context, id string) (*domain.Draft, error) {
	val, ok := r.c.Get(draftKeyPrefix + id)
	if !ok {
		return nil, ErrNotFound
	}
	draft, ok := val.(domain.Draft)
	if !ok {
		return nil, errors.New("draft cache holds unexpected type")
	}
	return cloneDraft(&draft), nil
}

func (r *memoryDraftRepository) Delete(_ context.Context, id string) error {
	r.c.Delete(draftKeyPrefix + id)
	return nil
}

func (r *memoryDraftRepository) Claim(_ context.Context, id string) (bool, error) {
	// Add fails when the key is already present and unexpired.
	return r.c.Add(draftLockKeyPrefix+id, struct{}{}, r.ttl) == nil, nil
}

func (r *memoryDraftRepository) Release(_ context.Context, id string) error {
	r.c.Delete(draftLockKeyPrefix + id)
	return nil
}

// cloneDraft detaches the field error map from the caller's copy.
func cloneDraft(draft *domain.Draft) *domain.Draft {
	out := *draft
	if draft.FieldErrors != nil {
		out.FieldErrors = make(map[string]string, len(draft.FieldErrors))
		for k, v := range draft.FieldErrors {
			out.FieldErrors[k] = v
		}
	}
	return &out
}

type redisDraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftRepository stores drafts as JSON documents with a Redis TTL.
func NewRedisDraftRepository(client *redis.Client, ttl time.Duration) DraftRepository {
	return &redisDraftRepository{client: client, ttl: ttl}
}

func (r *redisDraftRepository) Save(ctx context.Context, draft *domain.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return r.client.Set(ctx, draftKeyPrefix+draft.ID, raw, r.ttl).Err()
}

func (r *redisDraftRepository) Get(ctx context.Context, id string) (*domain.Draft, error) {
	raw, err := r.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var draft domain.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return &draft, nil
}

func (r *redisDraftRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, draftKeyPrefix+id).Err()
}

func (r *redisDraftRepository) Claim(ctx context.Context, id string) (bool, error) {
	ok, err := r.client.SetNX(ctx, draftLockKeyPrefix+id, 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim draft %s: %w", id, err)
	}
	return ok, nil
}

func (r *redisDraftRepository) Release(ctx context.Context, id string) error {
	return r.client.Del(ctx, draftLockKeyPrefix+id).Err()
}
