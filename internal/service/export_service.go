package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ack-hub/internal/domain"
	"github.com/spec-kit/ack-hub/internal/export"
	"github.com/spec-kit/ack-hub/internal/observability"
	"github.com/spec-kit/ack-hub/internal/repository"
)

// Renderer turns a submission and its type into a document.
type Renderer interface {
	Render(sub domain.Submission, ackType *domain.AcknowledgmentType) (*export.Document, error)
}

// ExportService produces downloadable documents for visible submissions.
type ExportService struct {
	submissions *SubmissionService
	catalog     repository.CatalogRepository
	renderer    Renderer
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// ExportDependencies bundles collaborators for the export service.
type ExportDependencies struct {
	Submissions *SubmissionService
	Catalog     repository.CatalogRepository
	Renderer    Renderer
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(deps ExportDependencies) *ExportService {
	svc := &ExportService{
		submissions: deps.Submissions,
		catalog:     deps.Catalog,
		renderer:    deps.Renderer,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Detail returns a visible submission with its current type, which is nil
// when the type was deleted after submission.
func (s *ExportService) Detail(ctx context.Context, identity *domain.Identity, submissionID string) (*domain.Submission, *domain.AcknowledgmentType, error) {
	sub, err := s.submissions.GetByID(ctx, identity, submissionID)
	if err != nil {
		return nil, nil, err
	}
	ackType, err := s.catalog.GetByID(ctx, sub.AcknowledgmentTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return sub, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get type: %w", err)
	}
	return sub, ackType, nil
}

// Export renders the submission for download.
func (s *ExportService) Export(ctx context.Context, identity *domain.Identity, submissionID string) (*export.Document, error) {
	sub, ackType, err := s.Detail(ctx, identity, submissionID)
	if err != nil {
		return nil, err
	}

	doc, err := s.renderer.Render(*sub, ackType)
	if err != nil {
		return nil, fmt.Errorf("export submission %s: %w", sub.ID, err)
	}

	s.metrics.RecordExport()
	s.logger.Info("submission exported",
		zap.String("submission_id", sub.ID),
		zap.String("filename", doc.Filename),
		zap.Int("bytes", len(doc.Body)))
	return doc, nil
}
