package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ack-hub/internal/api/dto"
	"github.com/spec-kit/ack-hub/internal/auth"
	"github.com/spec-kit/ack-hub/internal/domain"
	"github.com/spec-kit/ack-hub/internal/service"
)

// SubmissionsHandler serves the submission history, statistics and export.
type SubmissionsHandler struct {
	submissions *service.SubmissionService
	export      *service.ExportService
}

// NewSubmissionsHandler constructs handler.
func NewSubmissionsHandler(submissions *service.SubmissionService, export *service.ExportService) *SubmissionsHandler {
	return &SubmissionsHandler{submissions: submissions, export: export}
}

// List handles GET /submissions.
func (h *SubmissionsHandler) List(c *fiber.Ctx) error {
	subs, err := h.submissions.ListVisibleTo(c.UserContext(), auth.IdentityFromContext(c), c.Query("search"))
	if err != nil {
		return err
	}
	resp := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		resp = append(resp, submissionResponse(&subs[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Stats handles GET /submissions/stats.
func (h *SubmissionsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.submissions.Stats(c.UserContext(), auth.IdentityFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		Total:        stats.Total,
		ByUnit:       stats.ByUnit,
		ByType:       stats.ByType,
		UnitsManaged: stats.UnitsManaged,
	}})
}

// Get handles GET /submissions/:id.
func (h *SubmissionsHandler) Get(c *fiber.Ctx) error {
	sub, ackType, err := h.export.Detail(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	resp := dto.SubmissionDetailResponse{SubmissionResponse: submissionResponse(sub)}
	if ackType != nil {
		resp.Content = ackType.Content
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Export handles GET /submissions/:id/export.
func (h *SubmissionsHandler) Export(c *fiber.Ctx) error {
	doc, err := h.export.Export(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Send(doc.Body)
}

func submissionResponse(sub *domain.Submission) dto.SubmissionResponse {
	return dto.SubmissionResponse{
		ID:                   sub.ID,
		AcknowledgmentTypeID: sub.AcknowledgmentTypeID,
		TypeTitle:            sub.TypeTitle,
		EmployeeName:         sub.EmployeeName,
		EmployeeEmail:        sub.EmployeeEmail,
		RequestNumber:        sub.RequestNumber,
		Date:                 sub.SubmittedAtDate,
		SubmittedAt:          sub.SubmittedAt,
		Acknowledged:         sub.Acknowledged,
		Unit:                 sub.Unit,
		SupervisorEmail:      sub.SupervisorEmail,
	}
}
