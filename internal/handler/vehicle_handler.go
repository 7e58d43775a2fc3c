package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"garasiku/internal/middleware"
	"garasiku/internal/service/vehicle"
)

type VehicleHandler struct {
	vehicleService vehicle.Service
}

func NewVehicleHandler(vehicleService vehicle.Service) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) List(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.vehicleService.ListByOwner(c.Context(), identity, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	vehicleID, err := uuid.Parse(c.Params("vehicleId"))
	if err != nil {
		return middleware.BadRequest("Invalid vehicle ID")
	}

	v, err := h.vehicleService.GetByID(c.Context(), vehicleID, identity)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (h *VehicleHandler) History(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	vehicleID, err := uuid.Parse(c.Params("vehicleId"))
	if err != nil {
		return middleware.BadRequest("Invalid vehicle ID")
	}

	history, err := h.vehicleService.History(c.Context(), vehicleID, identity)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": history})
}
