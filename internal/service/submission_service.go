package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/spec-kit/ack-hub/internal/auth"
	"github.com/spec-kit/ack-hub/internal/domain"
	"github.com/spec-kit/ack-hub/internal/events"
	"github.com/spec-kit/ack-hub/internal/idgen"
	"github.com/spec-kit/ack-hub/internal/observability"
	"github.com/spec-kit/ack-hub/internal/repository"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

// SubmissionService is the append-only submission store with role scoped reads.
type SubmissionService struct {
	repo       repository.SubmissionRepository
	catalog    repository.CatalogRepository
	resolver   *auth.Resolver
	ids        idgen.Generator
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// SubmissionDependencies bundles collaborators for the submission service.
type SubmissionDependencies struct {
	Repo       repository.SubmissionRepository
	Catalog    repository.CatalogRepository
	Resolver   *auth.Resolver
	IDs        idgen.Generator
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// SubmissionInput is the accepted form content plus the submitter, if any.
type SubmissionInput struct {
	TypeID        string
	RequestNumber string
	EmployeeName  string
	Acknowledged  bool
	Submitter     *domain.Identity
}

// NewSubmissionService constructs the service.
func NewSubmissionService(deps SubmissionDependencies) *SubmissionService {
	svc := &SubmissionService{
		repo:       deps.Repo,
		catalog:    deps.Catalog,
		resolver:   deps.Resolver,
		ids:        deps.IDs,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// Append validates and stores a submission. Request numbers are not required
// to be unique.
func (s *SubmissionService) Append(ctx context.Context, input SubmissionInput) (*domain.Submission, error) {
	if !input.Acknowledged {
		return nil, apperrors.NewValidationError("the acknowledgment must be accepted",
			map[string]any{domain.FieldAcknowledged: "required"})
	}
	name := strings.TrimSpace(input.EmployeeName)
	if name == "" {
		return nil, apperrors.NewValidationError("employee name is required",
			map[string]any{domain.FieldEmployeeName: "required"})
	}

	t, err := s.catalog.GetByID(ctx, input.TypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidationError("unknown acknowledgment type",
				map[string]any{"type_id": input.TypeID})
		}
		return nil, fmt.Errorf("get type: %w", err)
	}

	id, err := s.ids.NextID()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	sub := &domain.Submission{
		ID:                   id,
		AcknowledgmentTypeID: t.ID,
		TypeTitle:            t.Title,
		EmployeeName:         name,
		RequestNumber:        strings.TrimSpace(input.RequestNumber),
		SubmittedAtDate:      now.Format(domain.SubmittedAtDateLayout),
		SubmittedAt:          now,
		Acknowledged:         true,
	}
	if who := input.Submitter; who != nil {
		sub.EmployeeEmail = who.Email
		sub.Unit = who.Unit
		sub.SupervisorEmail = who.SupervisorEmail
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	s.metrics.RecordSubmission(sub.Unit)
	s.logger.Info("submission stored",
		zap.String("submission_id", sub.ID),
		zap.String("type_id", sub.AcknowledgmentTypeID),
		zap.String("unit", sub.Unit))

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventSubmissionCreated,
		SubjectID: sub.ID,
		Actor:     events.ActorFor(input.Submitter),
		Payload: events.SubmissionCreatedPayload{
			TypeID:          sub.AcknowledgmentTypeID,
			TypeTitle:       sub.TypeTitle,
			EmployeeName:    sub.EmployeeName,
			EmployeeEmail:   sub.EmployeeEmail,
			RequestNumber:   sub.RequestNumber,
			Unit:            sub.Unit,
			SupervisorEmail: sub.SupervisorEmail,
		},
	})
	return sub, nil
}

// ListVisibleTo returns the submissions the identity may see, in insertion
// order, optionally narrowed to employee names containing search.
func (s *SubmissionService) ListVisibleTo(ctx context.Context, identity *domain.Identity, search string) ([]domain.Submission, error) {
	filter, err := visibilityFilter(identity)
	if err != nil {
		return nil, err
	}
	subs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	term := strings.TrimSpace(search)
	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]domain.Submission, 0, len(subs))
	for _, sub := range subs {
		if !auth.CanViewSubmission(identity, sub) {
			continue
		}
		if term != "" && !strings.Contains(fold.String(sub.EmployeeName), needle) {
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

// GetByID returns one submission, enforcing the same visibility as listing.
func (s *SubmissionService) GetByID(ctx context.Context, identity *domain.Identity, id string) (*domain.Submission, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("submission", map[string]any{"id": id})
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if !auth.CanViewSubmission(identity, *sub) {
		return nil, apperrors.NewPermissionDenied("submission is not visible to the caller")
	}
	return sub, nil
}

// Stats summarizes the caller's visible submissions.
func (s *SubmissionService) Stats(ctx context.Context, identity *domain.Identity) (*domain.SubmissionStats, error) {
	subs, err := s.ListVisibleTo(ctx, identity, "")
	if err != nil {
		return nil, err
	}

	stats := &domain.SubmissionStats{
		Total:  len(subs),
		ByUnit: make(map[string]int),
		ByType: make(map[string]int),
	}
	for _, sub := range subs {
		stats.ByUnit[sub.Unit]++
		stats.ByType[sub.TypeTitle]++
	}
	if identity.Role == domain.RoleSupervisor && s.resolver != nil {
		managed := len(s.resolver.SupervisedUnits(identity.Email))
		stats.UnitsManaged = &managed
	}
	return stats, nil
}

func visibilityFilter(identity *domain.Identity) (repository.SubmissionFilter, error) {
	if identity == nil {
		return repository.SubmissionFilter{}, apperrors.NewUnauthorized("authentication required")
	}
	switch identity.Role {
	case domain.RoleAdmin:
		return repository.SubmissionFilter{}, nil
	case domain.RoleSupervisor:
		unit := identity.Unit
		return repository.SubmissionFilter{Unit: &unit}, nil
	case domain.RoleEmployee:
		return repository.SubmissionFilter{Employee: &repository.EmployeeMatch{
			Email: identity.Email,
			Name:  identity.DisplayName,
		}}, nil
	}
	return repository.SubmissionFilter{}, apperrors.NewPermissionDenied("unknown role")
}
