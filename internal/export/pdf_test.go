package export

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ack-hub/internal/domain"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "year and number", in: "2025/123456", want: "acknowledgment_2025_123456.pdf"},
		{name: "path traversal", in: "../etc/passwd", want: "acknowledgment_.._etc_passwd.pdf"},
		{name: "unicode", in: "طلب-7", want: "acknowledgment____-7.pdf"},
		{name: "empty", in: "", want: "acknowledgment_submission.pdf"},
		{name: "allowed punctuation kept", in: "A.b_c-1", want: "acknowledgment_A.b_c-1.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.in))
		})
	}
}

func newTestRenderer(t *testing.T) *PDFRenderer {
	t.Helper()
	r, err := NewPDFRenderer(Options{
		DisableCompression: true,
		Now:                func() time.Time { return time.Date(2025, 3, 4, 15, 4, 5, 0, time.UTC) },
	})
	require.NoError(t, err)
	return r
}

func testSubmission() domain.Submission {
	return domain.Submission{
		ID:              "1",
		TypeTitle:       "Safety Acknowledgment",
		EmployeeName:    "Nour Ali",
		RequestNumber:   "2025/12",
		SubmittedAtDate: "3/4/2025",
		Acknowledged:    true,
	}
}

func TestRenderWithoutContent(t *testing.T) {
	doc, err := newTestRenderer(t).Render(testSubmission(), nil)
	require.NoError(t, err)

	assert.Equal(t, "acknowledgment_2025_12.pdf", doc.Filename)
	assert.Equal(t, ContentTypePDF, doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")))

	body := string(doc.Body)
	assert.Contains(t, body, "(Request No: 2025/12)")
	assert.Contains(t, body, "(Employee Name: Nour Ali)")
	assert.Contains(t, body, "(Status: Acknowledged)")
	assert.Contains(t, body, "(Generated on: 3/4/2025, 3:04:05 PM)")
	assert.NotContains(t, body, "(Content:)")
}

func TestRenderWithContentAndPageBreaks(t *testing.T) {
	body := "Employees must read the guidance carefully before signing."
	rules := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		rules = append(rules, fmt.Sprintf("Rule number %d applies to every shift worked on site.", i+1))
	}
	ackType := &domain.AcknowledgmentType{
		ID:    "custom-x",
		Title: "Safety Acknowledgment",
		Content: &domain.TypeContent{
			PrimaryStatement: "Site safety",
			BodyText:         &body,
			NumberedRules:    rules,
		},
	}

	doc, err := newTestRenderer(t).Render(testSubmission(), ackType)
	require.NoError(t, err)

	out := string(doc.Body)
	assert.Contains(t, out, "(Content:)")
	assert.Contains(t, out, "(Rules/Sections:)")
	assert.Contains(t, out, "(1. Rule number 1 applies to every shift worked on site.)")
	assert.Contains(t, out, "(40. Rule number 40 applies to every shift worked on site.)")
	assert.Greater(t, bytes.Count(doc.Body, []byte("/Type /Page\n")), 1)
}

func TestWrapKeepsLinesWithinWidth(t *testing.T) {
	rule := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu nu xi omicron pi rho sigma tau upsilon phi chi psi omega"
	doc, err := newTestRenderer(t).Render(testSubmission(), &domain.AcknowledgmentType{
		Content: &domain.TypeContent{NumberedRules: []string{rule}},
	})
	require.NoError(t, err)

	out := string(doc.Body)
	assert.Contains(t, out, "(1. alpha beta")
	assert.NotContains(t, out, "(1. "+rule+")")
	assert.Contains(t, out, "omega)")
}

func TestNewPDFRendererRejectsMissingFont(t *testing.T) {
	_, err := NewPDFRenderer(Options{FontPath: "/nonexistent/font.ttf"})
	assert.Error(t, err)
}

func TestRenderOmitsArabicWithCoreFont(t *testing.T) {
	subtitle := "Remote Area Working Acknowledgement"
	doc, err := newTestRenderer(t).Render(testSubmission(), &domain.AcknowledgmentType{
		Content: &domain.TypeContent{
			PrimaryStatement: "أقر بأنني اطلعت على الشروط",
			Subtitle:         &subtitle,
			NumberedRules:    []string{"إستخدام السكن الموفر", "Report to the site office"},
		},
	})
	require.NoError(t, err)

	out := string(doc.Body)
	assert.Contains(t, out, "(Content:)")
	assert.Contains(t, out, "(Remote Area Working Acknowledgement)")
	assert.Contains(t, out, "(2. Report to the site office)")
	assert.NotContains(t, out, "(1. ")
	assert.Contains(t, out, "("+OmittedTextNote+")")
	assert.NotContains(t, out, "....")
}
