package handlers

import (
	"errors"

	"github.com/estateflow/estateflow-backend/internal/dto"
	"github.com/estateflow/estateflow-backend/internal/services"
	"github.com/estateflow/estateflow-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type BillingHandler struct {
	billingService *services.BillingService
}

func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Checkout runs the simulated payment flow and upgrades the tenant to PRO.
func (h *BillingHandler) Checkout(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.billingService.Checkout(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Checkout failed",
		})
	}
	return c.JSON(resp)
}
