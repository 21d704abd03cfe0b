package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ack-hub/internal/domain"
	"github.com/spec-kit/ack-hub/internal/export"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

type recordingRenderer struct {
	sub     domain.Submission
	ackType *domain.AcknowledgmentType
}

func (r *recordingRenderer) Render(sub domain.Submission, ackType *domain.AcknowledgmentType) (*export.Document, error) {
	r.sub = sub
	r.ackType = ackType
	return &export.Document{Filename: export.Filename(sub.RequestNumber), ContentType: export.ContentTypePDF, Body: []byte("%PDF-")}, nil
}

func newExportService(f *fixture, renderer Renderer) *ExportService {
	return NewExportService(ExportDependencies{
		Submissions: f.submissions,
		Catalog:     f.catalogRepo,
		Renderer:    renderer,
	})
}

func TestExportPassesTypeContent(t *testing.T) {
	f := newFixture(t)
	renderer := &recordingRenderer{}
	svc := newExportService(f, renderer)
	sub := f.submitAs(t, "ahmed.khaled@domain.com", "remote-work")

	doc, err := svc.Export(context.Background(), f.identity(t, "ahmed.khaled@domain.com"), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "acknowledgment_2025_1.pdf", doc.Filename)
	assert.Equal(t, sub.ID, renderer.sub.ID)
	require.NotNil(t, renderer.ackType)
	require.NotNil(t, renderer.ackType.Content)
	assert.Len(t, renderer.ackType.Content.NumberedRules, 3)
}

func TestExportEnforcesVisibility(t *testing.T) {
	f := newFixture(t)
	svc := newExportService(f, &recordingRenderer{})
	sub := f.submitAs(t, "ahmed.khaled@domain.com", "safety")

	_, err := svc.Export(context.Background(), f.identity(t, "supervisorB@domain.com"), sub.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodePermissionDenied))
}

func TestExportWithDeletedType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	renderer := &recordingRenderer{}
	svc := newExportService(f, renderer)

	custom, err := f.catalog.Create(ctx, admin, TypeInput{Title: "Gone", ShortDescription: "soon", Rules: []string{"x"}})
	require.NoError(t, err)
	sub := f.submitAs(t, "nour.ali@domain.com", custom.ID)
	require.NoError(t, f.catalog.Delete(ctx, admin, custom.ID))

	_, err = svc.Export(ctx, admin, sub.ID)
	require.NoError(t, err)
	assert.Nil(t, renderer.ackType)
	assert.Equal(t, "Gone", renderer.sub.TypeTitle)
}

func TestExportRendersRealPDF(t *testing.T) {
	f := newFixture(t)
	renderer, err := export.NewPDFRenderer(export.Options{})
	require.NoError(t, err)
	svc := newExportService(f, renderer)
	sub := f.submitAs(t, "sara.ahmed@domain.com", "remote-work")

	doc, err := svc.Export(context.Background(), f.admin(t), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, export.ContentTypePDF, doc.ContentType)
	assert.NotEmpty(t, doc.Body)
}
