package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"garasiku/internal/domain"
	"garasiku/internal/middleware"
	"garasiku/internal/service/transfer"
)

type TransferHandler struct {
	transferService transfer.Service
}

func NewTransferHandler(transferService transfer.Service) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

func (h *TransferHandler) Create(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	var input domain.CreateTransferInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.VehicleID == uuid.Nil {
		return middleware.BadRequest("vehicle_id is required")
	}
	if input.ToIdentity == "" {
		return middleware.BadRequest("to_identity is required")
	}

	req, err := h.transferService.Create(c.Context(), identity, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *TransferHandler) ListIncoming(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.transferService.ListIncoming(c.Context(), identity, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TransferHandler) ListOutgoing(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.transferService.ListOutgoing(c.Context(), identity, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TransferHandler) Get(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.transferService.GetByID(c.Context(), requestID, identity)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *TransferHandler) Accept(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	vehicle, err := h.transferService.Accept(c.Context(), requestID, identity)
	if errors.Is(err, domain.ErrAlreadyResolved) {
		// A duplicate accept (retried call, second tab) is benign, not a
		// failure: the first application already took effect.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "already_resolved"})
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(vehicle)
}

func (h *TransferHandler) Decline(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.transferService.Decline(c.Context(), requestID, identity)
	if errors.Is(err, domain.ErrAlreadyResolved) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "already_resolved"})
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

// Activate is called once the recipient finishes account creation; any
// transfer requests waiting on their registration become actionable.
func (h *TransferHandler) Activate(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	activated, err := h.transferService.Activate(c.Context(), identity)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"activated": activated})
}
