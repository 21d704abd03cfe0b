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

// CatalogHandler serves acknowledgment type endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List handles GET /acknowledgment-types.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	types, err := h.catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.TypeResponse, 0, len(types))
	for i := range types {
		resp = append(resp, typeResponse(&types[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /acknowledgment-types/:id.
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	t, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": typeResponse(t)})
}

// Create handles POST /acknowledgment-types.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var req dto.TypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	t, err := h.catalog.Create(c.UserContext(), auth.IdentityFromContext(c), typeInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": typeResponse(t)})
}

// Update handles PUT /acknowledgment-types/:id.
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var req dto.TypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	t, err := h.catalog.Update(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"), typeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": typeResponse(t)})
}

// Delete handles DELETE /acknowledgment-types/:id.
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.UserContext(), auth.IdentityFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func typeInput(req dto.TypeRequest) service.TypeInput {
	return service.TypeInput{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		PrimaryStatement: req.PrimaryStatement,
		Subtitle:         req.Subtitle,
		BodyText:         req.BodyText,
		Rules:            req.Rules,
	}
}

func typeResponse(t *domain.AcknowledgmentType) dto.TypeResponse {
	return dto.TypeResponse{
		ID:               t.ID,
		Title:            t.Title,
		ShortDescription: t.ShortDescription,
		Content:          t.Content,
		Builtin:          t.Builtin,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
