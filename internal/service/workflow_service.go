package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ack-hub/internal/domain"
	"github.com/spec-kit/ack-hub/internal/repository"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

const requestSuffixLimit = 1000000

// WorkflowService drives a form from type selection to submission.
type WorkflowService struct {
	drafts        repository.DraftRepository
	catalog       *CatalogService
	submissions   *SubmissionService
	logger        *zap.Logger
	now           func() time.Time
	requestNumber func(time.Time) string
}

// WorkflowDependencies bundles collaborators for the workflow service.
type WorkflowDependencies struct {
	Drafts      repository.DraftRepository
	Catalog     *CatalogService
	Submissions *SubmissionService
	Logger      *zap.Logger
	Now         func() time.Time
	// RequestNumber overrides the "{year}/{n}" generator.
	RequestNumber func(time.Time) string
}

// FieldUpdate carries a partial edit of an open form. Nil fields are untouched.
type FieldUpdate struct {
	RequestNumber *string
	EmployeeName  *string
	Acknowledged  *bool
}

// NewWorkflowService constructs the service.
func NewWorkflowService(deps WorkflowDependencies) *WorkflowService {
	svc := &WorkflowService{
		drafts:        deps.Drafts,
		catalog:       deps.Catalog,
		submissions:   deps.Submissions,
		logger:        deps.Logger,
		now:           deps.Now,
		requestNumber: deps.RequestNumber,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.requestNumber == nil {
		svc.requestNumber = RandomRequestNumber
	}
	return svc
}

// RandomRequestNumber returns "{year}/{0..999999}". Collisions are allowed.
func RandomRequestNumber(now time.Time) string {
	return fmt.Sprintf("%d/%d", now.Year(), rand.Intn(requestSuffixLimit))
}

// SelectType opens a new form for typeID.
func (s *WorkflowService) SelectType(ctx context.Context, identity *domain.Identity, typeID string) (*domain.Draft, error) {
	t, err := s.catalog.Get(ctx, typeID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	draft := &domain.Draft{
		ID:            uuid.NewString(),
		TypeID:        t.ID,
		TypeTitle:     t.Title,
		RequestNumber: s.requestNumber(now),
		State:         domain.FormStateFormOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if identity != nil {
		draft.OwnerEmail = identity.Email
		draft.EmployeeName = identity.DisplayName
		draft.NameLocked = true
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return draft, nil
}

// Get returns the caller's draft.
func (s *WorkflowService) Get(ctx context.Context, identity *domain.Identity, draftID string) (*domain.Draft, error) {
	return s.load(ctx, identity, draftID)
}

// UpdateFields edits an open form.
func (s *WorkflowService) UpdateFields(ctx context.Context, identity *domain.Identity, draftID string, update FieldUpdate) (*domain.Draft, error) {
	draft, err := s.load(ctx, identity, draftID)
	if err != nil {
		return nil, err
	}
	if draft.State != domain.FormStateFormOpen {
		return nil, apperrors.NewConflict("form is not open for editing", map[string]any{"state": draft.State})
	}

	if update.EmployeeName != nil {
		if draft.NameLocked && *update.EmployeeName != draft.EmployeeName {
			return nil, apperrors.NewValidationError("employee name is taken from the signed-in user",
				map[string]any{domain.FieldEmployeeName: "read only"})
		}
		draft.EmployeeName = *update.EmployeeName
	}
	if update.RequestNumber != nil {
		draft.RequestNumber = *update.RequestNumber
	}
	if update.Acknowledged != nil {
		draft.Acknowledged = *update.Acknowledged
	}
	draft.FieldErrors = nil
	draft.UpdatedAt = s.now().UTC()

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return draft, nil
}

// Submit validates the form and appends it to the store. Validation failures
// keep the form open with field errors. The draft is claimed for the duration
// of the append so one form run yields at most one submission.
func (s *WorkflowService) Submit(ctx context.Context, identity *domain.Identity, draftID string) (*domain.Submission, error) {
	draft, err := s.load(ctx, identity, draftID)
	if err != nil {
		return nil, err
	}
	if draft.State != domain.FormStateFormOpen {
		return nil, apperrors.NewConflict("form is not open for submission", map[string]any{"state": draft.State})
	}

	if fieldErrors := validateDraft(draft); len(fieldErrors) > 0 {
		s.logger.Debug("form rejected", zap.String("draft_id", draft.ID), zap.Any("fields", fieldErrors))

		draft.FieldErrors = fieldErrors
		draft.UpdatedAt = s.now().UTC()
		if err := s.drafts.Save(ctx, draft); err != nil {
			return nil, fmt.Errorf("save draft: %w", err)
		}

		details := make(map[string]any, len(fieldErrors))
		for k, v := range fieldErrors {
			details[k] = v
		}
		return nil, apperrors.NewValidationError(firstFieldMessage(fieldErrors), details)
	}

	claimed, err := s.drafts.Claim(ctx, draft.ID)
	if err != nil {
		return nil, fmt.Errorf("claim draft: %w", err)
	}
	if !claimed {
		return nil, apperrors.NewConflict("form is already being submitted", map[string]any{"id": draft.ID})
	}
	defer s.release(draft.ID)

	// Re-read under the claim: an earlier holder may have accepted the form already.
	draft, err = s.load(ctx, identity, draftID)
	if err != nil {
		return nil, err
	}
	if draft.State != domain.FormStateFormOpen {
		return nil, apperrors.NewConflict("form is not open for submission", map[string]any{"state": draft.State})
	}

	draft.State = domain.FormStateValidating
	draft.FieldErrors = nil
	draft.UpdatedAt = s.now().UTC()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	sub, err := s.submissions.Append(ctx, SubmissionInput{
		TypeID:        draft.TypeID,
		RequestNumber: draft.RequestNumber,
		EmployeeName:  draft.EmployeeName,
		Acknowledged:  draft.Acknowledged,
		Submitter:     identity,
	})
	if err != nil {
		draft.State = domain.FormStateFormOpen
		if saveErr := s.drafts.Save(ctx, draft); saveErr != nil {
			s.logger.Warn("failed to reopen draft", zap.String("draft_id", draft.ID), zap.Error(saveErr))
		}
		return nil, err
	}

	if err := s.drafts.Delete(ctx, draft.ID); err != nil {
		s.logger.Warn("failed to discard accepted draft", zap.String("draft_id", draft.ID), zap.Error(err))
	}
	return sub, nil
}

// release drops the submit claim even when the request context is done.
func (s *WorkflowService) release(draftID string) {
	if err := s.drafts.Release(context.Background(), draftID); err != nil {
		s.logger.Warn("failed to release draft claim", zap.String("draft_id", draftID), zap.Error(err))
	}
}

// Cancel discards the draft without persisting anything.
func (s *WorkflowService) Cancel(ctx context.Context, identity *domain.Identity, draftID string) error {
	if _, err := s.load(ctx, identity, draftID); err != nil {
		return err
	}
	if err := s.drafts.Delete(ctx, draftID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func (s *WorkflowService) load(ctx context.Context, identity *domain.Identity, draftID string) (*domain.Draft, error) {
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("form", map[string]any{"id": draftID})
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}
	caller := ""
	if identity != nil {
		caller = identity.Email
	}
	if draft.OwnerEmail != caller {
		return nil, apperrors.NewPermissionDenied("form belongs to another user")
	}
	return draft, nil
}

// validateDraft checks the acknowledgment before the name, reporting only the
// first failure.
func validateDraft(draft *domain.Draft) map[string]string {
	if !draft.Acknowledged {
		return map[string]string{domain.FieldAcknowledged: "please confirm the acknowledgment"}
	}
	if strings.TrimSpace(draft.EmployeeName) == "" {
		return map[string]string{domain.FieldEmployeeName: "please enter the employee name"}
	}
	return nil
}

func firstFieldMessage(fieldErrors map[string]string) string {
	for _, field := range []string{domain.FieldAcknowledged, domain.FieldEmployeeName, domain.FieldRequestNumber} {
		if msg, ok := fieldErrors[field]; ok {
			return msg
		}
	}
	return "form validation failed"
}
