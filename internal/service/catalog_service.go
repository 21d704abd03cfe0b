package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ack-hub/internal/auth"
	"github.com/spec-kit/ack-hub/internal/domain"
	"github.com/spec-kit/ack-hub/internal/events"
	"github.com/spec-kit/ack-hub/internal/repository"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

// CatalogService manages acknowledgment types.
type CatalogService struct {
	repo       repository.CatalogRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// CatalogDependencies bundles collaborators for the catalog service.
type CatalogDependencies struct {
	Repo       repository.CatalogRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// TypeInput carries the editable fields of a custom type.
type TypeInput struct {
	Title            string
	ShortDescription string
	PrimaryStatement string
	Subtitle         string
	BodyText         string
	Rules            []string
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	svc := &CatalogService{
		repo:       deps.Repo,
		dispatcher: deps.Dispatcher,
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

// EnsureBuiltins seeds the protected types. Safe to call on every start.
func (s *CatalogService) EnsureBuiltins(ctx context.Context) error {
	if err := s.repo.SeedBuiltins(ctx, BuiltinTypes(s.now().UTC())); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

// List returns built-ins first, then custom types in creation order.
func (s *CatalogService) List(ctx context.Context) ([]domain.AcknowledgmentType, error) {
	return s.repo.List(ctx)
}

// Get returns a single type or NOT_FOUND.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.AcknowledgmentType, error) {
	t, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("acknowledgment type", map[string]any{"id": id})
		}
		return nil, fmt.Errorf("get type: %w", err)
	}
	return t, nil
}

// Create adds a custom type. Admin only.
func (s *CatalogService) Create(ctx context.Context, actor *domain.Identity, input TypeInput) (*domain.AcknowledgmentType, error) {
	if !auth.CanManageCatalog(actor) {
		return nil, apperrors.NewPermissionDenied("only admins can create acknowledgment types")
	}
	if err := validateTypeInput(input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	t := &domain.AcknowledgmentType{
		ID:               domain.CustomTypePrefix + uuid.NewString(),
		Title:            strings.TrimSpace(input.Title),
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		Content:          buildContent(input),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create type: %w", err)
	}

	s.publish(ctx, events.EventTypeCreated, actor, t)
	return t, nil
}

// Update replaces the fields of a custom type in place. Admin only.
func (s *CatalogService) Update(ctx context.Context, actor *domain.Identity, id string, input TypeInput) (*domain.AcknowledgmentType, error) {
	if !auth.CanManageCatalog(actor) {
		return nil, apperrors.NewPermissionDenied("only admins can update acknowledgment types")
	}
	id = strings.TrimSpace(id)
	if IsBuiltinTypeID(id) {
		return nil, apperrors.NewPermissionDenied("built-in acknowledgment types cannot be modified")
	}
	if err := validateTypeInput(input); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Builtin {
		return nil, apperrors.NewPermissionDenied("built-in acknowledgment types cannot be modified")
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.ShortDescription = strings.TrimSpace(input.ShortDescription)
	existing.Content = buildContent(input)
	existing.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("acknowledgment type", map[string]any{"id": id})
		}
		return nil, fmt.Errorf("update type: %w", err)
	}

	s.publish(ctx, events.EventTypeUpdated, actor, existing)
	return existing, nil
}

// Delete removes a custom type. Built-ins are refused; unknown ids are a no-op.
func (s *CatalogService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	if !auth.CanManageCatalog(actor) {
		return apperrors.NewPermissionDenied("only admins can delete acknowledgment types")
	}
	id = strings.TrimSpace(id)
	if IsBuiltinTypeID(id) {
		return apperrors.NewPermissionDenied("built-in acknowledgment types cannot be deleted")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get type: %w", err)
	}
	if existing.Builtin {
		return apperrors.NewPermissionDenied("built-in acknowledgment types cannot be deleted")
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete type: %w", err)
	}
	if removed {
		s.publish(ctx, events.EventTypeDeleted, actor, existing)
	}
	return nil
}

func (s *CatalogService) publish(ctx context.Context, eventType events.EventType, actor *domain.Identity, t *domain.AcknowledgmentType) {
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      eventType,
		SubjectID: t.ID,
		Actor:     events.ActorFor(actor),
		Payload:   events.TypeChangedPayload{Title: t.Title},
	})
}

func validateTypeInput(input TypeInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(input.ShortDescription) == "" {
		details["short_description"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("title and short description are required", details)
	}
	return nil
}

// buildContent returns nil when the input carries no long-form text.
func buildContent(input TypeInput) *domain.TypeContent {
	rules := make([]string, 0, len(input.Rules))
	for _, rule := range input.Rules {
		if trimmed := strings.TrimSpace(rule); trimmed != "" {
			rules = append(rules, trimmed)
		}
	}
	primary := strings.TrimSpace(input.PrimaryStatement)
	subtitle := strings.TrimSpace(input.Subtitle)
	body := strings.TrimSpace(input.BodyText)

	if primary == "" && subtitle == "" && body == "" && len(rules) == 0 {
		return nil
	}

	content := &domain.TypeContent{PrimaryStatement: primary, NumberedRules: rules}
	if subtitle != "" {
		content.Subtitle = &subtitle
	}
	if body != "" {
		content.BodyText = &body
	}
	return content
}
