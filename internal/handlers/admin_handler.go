package handlers

import (
	"errors"

	"github.com/estateflow/estateflow-backend/internal/dto"
	"github.com/estateflow/estateflow-backend/internal/plan"
	"github.com/estateflow/estateflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler is the master admin's directory view: every registry entry,
// any tenant's leads, and the single permitted mutation (plan toggling).
// Route-level middleware guarantees the caller is the admin identity.
type AdminHandler struct {
	directory      *services.DirectoryService
	leadService    *services.LeadService
	billingService *services.BillingService
}

func NewAdminHandler(directory *services.DirectoryService, leadService *services.LeadService, billingService *services.BillingService) *AdminHandler {
	return &AdminHandler{
		directory:      directory,
		leadService:    leadService,
		billingService: billingService,
	}
}

func (h *AdminHandler) ListTenants(c *fiber.Ctx) error {
	tenants, err := h.directory.ListTenants()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list tenants",
		})
	}
	return c.JSON(tenants)
}

func (h *AdminHandler) TenantLeads(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tenant id",
		})
	}

	leads, err := h.leadService.List(tenantID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list tenant leads",
		})
	}
	return c.JSON(leads)
}

func (h *AdminHandler) SetTenantPlan(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tenant id",
		})
	}

	var req dto.SetPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.billingService.SetPlan(tenantID, plan.Plan(req.Plan))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Tenant not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(resp)
}
