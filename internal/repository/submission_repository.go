package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/spec-kit/ack-hub/internal/domain"
)

// SubmissionFilter narrows a listing. Nil fields are ignored.
type SubmissionFilter struct {
	Unit *string
	// Employee matches records by email, or by EmployeeName for records
	// stored without an email.
	Employee *EmployeeMatch
}

// EmployeeMatch identifies the submitter of a record.
type EmployeeMatch struct {
	Email string
	Name  string
}

// SubmissionRepository is an append-only store of submissions in insertion order.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) error
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error)
}

type memorySubmissionRepository struct {
	mu    sync.RWMutex
	items []domain.Submission
	index map[string]int
}

// NewMemorySubmissionRepository returns an empty process-local store.
func NewMemorySubmissionRepository() SubmissionRepository {
	return &memorySubmissionRepository{index: make(map[string]int)}
}

func (r *memorySubmissionRepository) Create(_ context.Context, sub *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[sub.ID]; exists {
		return ErrDuplicateID
	}
	r.index[sub.ID] = len(r.items)
	r.items = append(r.items, *sub)
	return nil
}

func (r *memorySubmissionRepository) GetByID(_ context.Context, id string) (*domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	sub := r.items[pos]
	return &sub, nil
}

func (r *memorySubmissionRepository) List(_ context.Context, filter SubmissionFilter) ([]domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Submission, 0, len(r.items))
	for _, sub := range r.items {
		if filter.matches(sub) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f SubmissionFilter) matches(sub domain.Submission) bool {
	if f.Unit != nil && sub.Unit != *f.Unit {
		return false
	}
	if f.Employee != nil {
		if sub.EmployeeEmail != "" {
			return strings.EqualFold(sub.EmployeeEmail, f.Employee.Email)
		}
		return sub.EmployeeName == f.Employee.Name
	}
	return true
}
