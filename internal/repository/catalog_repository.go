package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/ack-hub/internal/domain"
)

// CatalogRepository stores acknowledgment types. List returns built-ins in
// seed order followed by custom types in creation order.
type CatalogRepository interface {
	SeedBuiltins(ctx context.Context, types []domain.AcknowledgmentType) error
	List(ctx context.Context) ([]domain.AcknowledgmentType, error)
	GetByID(ctx context.Context, id string) (*domain.AcknowledgmentType, error)
	Create(ctx context.Context, t *domain.AcknowledgmentType) error
	Update(ctx context.Context, t *domain.AcknowledgmentType) error
	Delete(ctx context.Context, id string) (bool, error)
}

type memoryCatalogRepository struct {
	mu       sync.RWMutex
	builtins []domain.AcknowledgmentType
	custom   []domain.AcknowledgmentType
}

// NewMemoryCatalogRepository returns an empty process-local catalog.
func NewMemoryCatalogRepository() CatalogRepository {
	return &memoryCatalogRepository{}
}

func (r *memoryCatalogRepository) SeedBuiltins(_ context.Context, types []domain.AcknowledgmentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range types {
		if r.indexLocked(t.ID) >= 0 {
			continue
		}
		seeded := t.Clone()
		seeded.Builtin = true
		r.builtins = append(r.builtins, seeded)
	}
	return nil
}

func (r *memoryCatalogRepository) List(_ context.Context) ([]domain.AcknowledgmentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.AcknowledgmentType, 0, len(r.builtins)+len(r.custom))
	for _, t := range r.builtins {
		out = append(out, t.Clone())
	}
	for _, t := range r.custom {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (r *memoryCatalogRepository) GetByID(_ context.Context, id string) (*domain.AcknowledgmentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.builtins {
		if t.ID == id {
			clone := t.Clone()
			return &clone, nil
		}
	}
	for _, t := range r.custom {
		if t.ID == id {
			clone := t.Clone()
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryCatalogRepository) Create(_ context.Context, t *domain.AcknowledgmentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(t.ID) >= 0 {
		return ErrDuplicateID
	}
	r.custom = append(r.custom, t.Clone())
	return nil
}

func (r *memoryCatalogRepository) Update(_ context.Context, t *domain.AcknowledgmentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.custom {
		if r.custom[i].ID == t.ID {
			updated := t.Clone()
			updated.CreatedAt = r.custom[i].CreatedAt
			r.custom[i] = updated
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryCatalogRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.custom {
		if r.custom[i].ID == id {
			r.custom = append(r.custom[:i], r.custom[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// indexLocked reports the position of id across both slices, or -1.
func (r *memoryCatalogRepository) indexLocked(id string) int {
	for i, t := range r.builtins {
		if t.ID == id {
			return i
		}
	}
	for i, t := range r.custom {
		if t.ID == id {
			return len(r.builtins) + i
		}
	}
	return -1
}
