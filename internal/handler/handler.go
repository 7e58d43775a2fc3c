package handler

import (
	"github.com/gofiber/fiber/v2"

	"garasiku/internal/domain"
	"garasiku/internal/service"
)

type Handlers struct {
	Transfer     *TransferHandler
	Vehicle      *VehicleHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Transfer:     NewTransferHandler(services.Transfer),
		Vehicle:      NewVehicleHandler(services.Vehicle),
		Notification: NewNotificationHandler(services.Notification),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return domain.DefaultPagination()
	}
	params.Validate()
	return params
}
