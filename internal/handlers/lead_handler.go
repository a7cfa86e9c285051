package handlers

import (
	"errors"

	"github.com/estateflow/estateflow-backend/internal/contact"
	"github.com/estateflow/estateflow-backend/internal/dto"
	"github.com/estateflow/estateflow-backend/internal/schedule"
	"github.com/estateflow/estateflow-backend/internal/services"
	"github.com/estateflow/estateflow-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LeadHandler struct {
	leadService *services.LeadService
}

func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

func (h *LeadHandler) List(c *fiber.Ctx) error {
	ownerID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	leads, err := h.leadService.List(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list leads",
		})
	}
	return c.JSON(leads)
}

func (h *LeadHandler) Create(c *fiber.Ctx) error {
	ownerID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	lead, err := h.leadService.Create(ownerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrQuotaExceeded) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(lead)
}

func (h *LeadHandler) Get(c *fiber.Ctx) error {
	ownerID, id, err := leadTarget(c)
	if err != nil {
		return badTarget(c, err)
	}

	lead, err := h.leadService.Get(ownerID, id)
	if err != nil {
		return leadError(c, err)
	}
	return c.JSON(lead)
}

func (h *LeadHandler) Update(c *fiber.Ctx) error {
	ownerID, id, err := leadTarget(c)
	if err != nil {
		return badTarget(c, err)
	}

	var req dto.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	lead, err := h.leadService.Update(ownerID, id, &req)
	if err != nil {
		return leadError(c, err)
	}
	return c.JSON(lead)
}

func (h *LeadHandler) SetStatus(c *fiber.Ctx) error {
	ownerID, id, err := leadTarget(c)
	if err != nil {
		return badTarget(c, err)
	}

	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	lead, err := h.leadService.SetStatus(ownerID, id, req.Status)
	if err != nil {
		return leadError(c, err)
	}
	return c.JSON(lead)
}

func (h *LeadHandler) CompleteFollowUp(c *fiber.Ctx) error {
	ownerID, id, err := leadTarget(c)
	if err != nil {
		return badTarget(c, err)
	}

	lead, rescheduled, err := h.leadService.CompleteFollowUp(ownerID, id)
	if err != nil {
		return leadError(c, err)
	}
	return c.JSON(dto.CompleteFollowUpResponse{Lead: *lead, Rescheduled: rescheduled})
}

func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	ownerID, id, err := leadTarget(c)
	if err != nil {
		return badTarget(c, err)
	}

	if err := h.leadService.Delete(ownerID, id); err != nil {
		return leadError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Lead deleted"})
}

func (h *LeadHandler) Quota(c *fiber.Ctx) error {
	ownerID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	quota, err := h.leadService.Quota(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute quota",
		})
	}
	return c.JSON(quota)
}

func (h *LeadHandler) Stats(c *fiber.Ctx) error {
	ownerID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	stats, err := h.leadService.Stats(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute stats",
		})
	}
	return c.JSON(stats)
}

// ContactLinks builds the dial and WhatsApp deep links for a lead's phone
// number; an optional ?message= query pre-fills the WhatsApp text.
func (h *LeadHandler) ContactLinks(c *fiber.Ctx) error {
	ownerID, id, err := leadTarget(c)
	if err != nil {
		return badTarget(c, err)
	}

	lead, err := h.leadService.Get(ownerID, id)
	if err != nil {
		return leadError(c, err)
	}

	return c.JSON(dto.ContactLinksResponse{
		Dial:     contact.DialLink(lead.Phone),
		WhatsApp: contact.WhatsAppLink(lead.Phone, c.Query("message")),
	})
}

var errInvalidLeadID = errors.New("invalid lead id")

func leadTarget(c *fiber.Ctx) (ownerID, id uuid.UUID, err error) {
	ownerID, err = tenant.GetUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return ownerID, uuid.Nil, errInvalidLeadID
	}
	return ownerID, id, nil
}

func badTarget(c *fiber.Ctx, err error) error {
	if errors.Is(err, errInvalidLeadID) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid lead id",
		})
	}
	return unauthorized(c)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func leadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrLeadNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Lead not found",
		})
	case errors.Is(err, schedule.ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrQuotaExceeded):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
}
