package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ack-hub/internal/api/dto"
	"github.com/spec-kit/ack-hub/internal/auth"
	"github.com/spec-kit/ack-hub/internal/domain"
	"github.com/spec-kit/ack-hub/internal/service"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

// FormsHandler drives the select, fill, submit workflow.
type FormsHandler struct {
	workflow *service.WorkflowService
}

// NewFormsHandler constructs handler.
func NewFormsHandler(workflow *service.WorkflowService) *FormsHandler {
	return &FormsHandler{workflow: workflow}
}

// Open handles POST /forms.
func (h *FormsHandler) Open(c *fiber.Ctx) error {
	var req dto.OpenFormRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	draft, err := h.workflow.SelectType(c.UserContext(), auth.IdentityFromContext(c), req.TypeID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": formResponse(draft)})
}

// Get handles GET /forms/:id.
func (h *FormsHandler) Get(c *fiber.Ctx) error {
	draft, err := h.workflow.Get(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": formResponse(draft)})
}

// Update handles PATCH /forms/:id.
func (h *FormsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	draft, err := h.workflow.UpdateFields(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"), service.FieldUpdate{
		RequestNumber: req.RequestNumber,
		EmployeeName:  req.EmployeeName,
		Acknowledged:  req.Acknowledged,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": formResponse(draft)})
}

// Submit handles POST /forms/:id/submit.
func (h *FormsHandler) Submit(c *fiber.Ctx) error {
	sub, err := h.workflow.Submit(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": submissionResponse(sub)})
}

// Cancel handles DELETE /forms/:id.
func (h *FormsHandler) Cancel(c *fiber.Ctx) error {
	if err := h.workflow.Cancel(c.UserContext(), auth.IdentityFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func formResponse(draft *domain.Draft) dto.FormResponse {
	return dto.FormResponse{
		ID:            draft.ID,
		TypeID:        draft.TypeID,
		TypeTitle:     draft.TypeTitle,
		RequestNumber: draft.RequestNumber,
		EmployeeName:  draft.EmployeeName,
		NameLocked:    draft.NameLocked,
		Acknowledged:  draft.Acknowledged,
		State:         draft.State,
		FieldErrors:   draft.FieldErrors,
		UpdatedAt:     draft.UpdatedAt,
	}
}
