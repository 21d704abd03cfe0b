package service

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ack-hub/internal/auth"
	"github.com/spec-kit/ack-hub/internal/directory"
	"github.com/spec-kit/ack-hub/internal/domain"
	"github.com/spec-kit/ack-hub/internal/events"
	"github.com/spec-kit/ack-hub/internal/repository"
)

var fixedNow = time.Date(2025, time.March, 4, 9, 30, 0, 0, time.UTC)

// sequenceIDs hands out "1", "2", ... so tests do not depend on the clock.
type sequenceIDs struct {
	n atomic.Uint64
}

func (s *sequenceIDs) NextID() (string, error) {
	return strconv.FormatUint(s.n.Add(1), 10), nil
}

type fixture struct {
	dir         *directory.Directory
	resolver    *auth.Resolver
	dispatcher  events.Dispatcher
	catalogRepo repository.CatalogRepository
	subRepo     repository.SubmissionRepository
	drafts      repository.DraftRepository
	catalog     *CatalogService
	submissions *SubmissionService
	workflow    *WorkflowService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		dir:         directory.Default(""),
		dispatcher:  events.NewInMemoryDispatcher(),
		catalogRepo: repository.NewMemoryCatalogRepository(),
		subRepo:     repository.NewMemorySubmissionRepository(),
		drafts:      repository.NewMemoryDraftRepository(time.Minute, time.Minute),
	}
	f.resolver = auth.NewResolver(f.dir)
	now := func() time.Time { return fixedNow }

	f.catalog = NewCatalogService(CatalogDependencies{Repo: f.catalogRepo, Dispatcher: f.dispatcher, Now: now})
	require.NoError(t, f.catalog.EnsureBuiltins(context.Background()))

	f.submissions = NewSubmissionService(SubmissionDependencies{
		Repo:       f.subRepo,
		Catalog:    f.catalogRepo,
		Resolver:   f.resolver,
		IDs:        &sequenceIDs{},
		Dispatcher: f.dispatcher,
		Now:        now,
	})
	f.workflow = NewWorkflowService(WorkflowDependencies{
		Drafts:        f.drafts,
		Catalog:       f.catalog,
		Submissions:   f.submissions,
		Now:           now,
		RequestNumber: func(time.Time) string { return "2025/42" },
	})
	return f
}

func (f *fixture) identity(t *testing.T, email string) *domain.Identity {
	t.Helper()
	identity, err := f.resolver.Resolve(email)
	require.NoError(t, err)
	return identity
}

func (f *fixture) admin(t *testing.T) *domain.Identity {
	return f.identity(t, "amer.alsomali@domain.com")
}
