package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"garasiku/internal/domain"
	"garasiku/internal/handler"
	"garasiku/internal/middleware"
	"garasiku/internal/mocks"
)

const testIdentity = "budi@example.com"

// newTransferApp wires the handler behind the same routes and error handler
// as the real server, with the auth middleware replaced by a stub identity.
func newTransferApp(svc *mocks.TransferService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.IdentityContextKey, testIdentity)
		return c.Next()
	})

	h := handler.NewTransferHandler(svc)
	transfers := app.Group("/api/v1/transfers")
	transfers.Post("/", h.Create)
	transfers.Get("/incoming", h.ListIncoming)
	transfers.Get("/outgoing", h.ListOutgoing)
	transfers.Post("/activate", h.Activate)
	transfers.Get("/:requestId", h.Get)
	transfers.Post("/:requestId/accept", h.Accept)
	transfers.Post("/:requestId/decline", h.Decline)

	return app
}

func decodeBody(t *testing.T, resp io.Reader, v any) {
	t.Helper()
	data, err := io.ReadAll(resp)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(data, v))
}

func TestTransferHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mocks.TransferService)
		app := newTransferApp(svc)
		vehicleID := uuid.New()

		created := &domain.TransferRequest{
			ID:           uuid.New(),
			VehicleID:    vehicleID,
			FromIdentity: testIdentity,
			ToIdentity:   "citra@example.com",
			Status:       domain.TransferPending,
		}
		svc.On("Create", mock.Anything, testIdentity, mock.MatchedBy(func(input domain.CreateTransferInput) bool {
			return input.VehicleID == vehicleID && input.ToIdentity == "citra@example.com"
		})).Return(created, nil).Once()

		body, _ := json.Marshal(fiber.Map{
			"vehicle_id":  vehicleID,
			"to_identity": "citra@example.com",
		})
		req := httptest.NewRequest("POST", "/api/v1/transfers/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var got domain.TransferRequest
		decodeBody(t, resp.Body, &got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, domain.TransferPending, got.Status)
		svc.AssertExpectations(t)
	})

	t.Run("Missing Vehicle ID", func(t *testing.T) {
		svc := new(mocks.TransferService)
		app := newTransferApp(svc)

		body, _ := json.Marshal(fiber.Map{"to_identity": "citra@example.com"})
		req := httptest.NewRequest("POST", "/api/v1/transfers/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("Not Owner", func(t *testing.T) {
		svc := new(mocks.TransferService)
		app := newTransferApp(svc)

		svc.On("Create", mock.Anything, testIdentity, mock.Anything).
			Return(nil, domain.ErrNotOwner).Once()

		body, _ := json.Marshal(fiber.Map{
			"vehicle_id":  uuid.New(),
			"to_identity": "citra@example.com",
		})
		req := httptest.NewRequest("POST", "/api/v1/transfers/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestTransferHandler_Accept(t *testing.T) {
	t.Run("Success Returns Vehicle", func(t *testing.T) {
		svc := new(mocks.TransferService)
		app := newTransferApp(svc)
		id := uuid.New()

		vehicle := &domain.Vehicle{ID: uuid.New(), OwnerIdentity: testIdentity}
		svc.On("Accept", mock.Anything, id, testIdentity).Return(vehicle, nil).Once()

		req := httptest.NewRequest("POST", "/api/v1/transfers/"+id.String()+"/accept", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got domain.Vehicle
		decodeBody(t, resp.Body, &got)
		assert.Equal(t, vehicle.ID, got.ID)
		assert.Equal(t, testIdentity, got.OwnerIdentity)
	})

	t.Run("Duplicate Accept Is Benign", func(t *testing.T) {
		svc := new(mocks.TransferService)
		app := newTransferApp(svc)
		id := uuid.New()

		svc.On("Accept", mock.Anything, id, testIdentity).
			Return(nil, domain.ErrAlreadyResolved).Once()

		req := httptest.NewRequest("POST", "/api/v1/transfers/"+id.String()+"/accept", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got map[string]string
		decodeBody(t, resp.Body, &got)
		assert.Equal(t, "already_resolved", got["status"])
	})

	t.Run("Expired", func(t *testing.T) {
		svc := new(mocks.TransferService)
		app := newTransferApp(svc)
		id := uuid.New()

		svc.On("Accept", mock.Anything, id, testIdentity).
			Return(nil, domain.ErrRequestExpired).Once()

		req := httptest.NewRequest("POST", "/api/v1/transfers/"+id.String()+"/accept", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusGone, resp.StatusCode)
	})

	t.Run("Invalid Request ID", func(t *testing.T) {
		svc := new(mocks.TransferService)
		app := newTransferApp(svc)

		req := httptest.NewRequest("POST", "/api/v1/transfers/not-a-uuid/accept", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "Accept")
	})
}

func TestTransferHandler_Decline(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mocks.TransferService)
		app := newTransferApp(svc)
		id := uuid.New()

		declined := &domain.TransferRequest{ID: id, Status: domain.TransferDeclined}
		svc.On("Decline", mock.Anything, id, testIdentity).Return(declined, nil).Once()

		req := httptest.NewRequest("POST", "/api/v1/transfers/"+id.String()+"/decline", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got domain.TransferRequest
		decodeBody(t, resp.Body, &got)
		assert.Equal(t, domain.TransferDeclined, got.Status)
	})

	t.Run("Not Recipient", func(t *testing.T) {
		svc := new(mocks.TransferService)
		app := newTransferApp(svc)
		id := uuid.New()

		svc.On("Decline", mock.Anything, id, testIdentity).
			Return(nil, domain.ErrNotRecipient).Once()

		req := httptest.NewRequest("POST", "/api/v1/transfers/"+id.String()+"/decline", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestTransferHandler_Get(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		svc := new(mocks.TransferService)
		app := newTransferApp(svc)
		id := uuid.New()

		svc.On("GetByID", mock.Anything, id, testIdentity).
			Return(nil, domain.ErrNotFound).Once()

		req := httptest.NewRequest("GET", "/api/v1/transfers/"+id.String(), nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestTransferHandler_ListIncoming(t *testing.T) {
	svc := new(mocks.TransferService)
	app := newTransferApp(svc)

	result := domain.NewPaginatedResponse([]domain.TransferRequest{
		{ID: uuid.New(), ToIdentity: testIdentity, Status: domain.TransferPending},
	}, 1, 20, 1)
	svc.On("ListIncoming", mock.Anything, testIdentity, domain.PaginationParams{Page: 1, PageSize: 20}).
		Return(result, nil).Once()

	req := httptest.NewRequest("GET", "/api/v1/transfers/incoming", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got domain.PaginatedResponse[domain.TransferRequest]
	decodeBody(t, resp.Body, &got)
	assert.Len(t, got.Data, 1)
	assert.Equal(t, int64(1), got.TotalItems)
	svc.AssertExpectations(t)
}

func TestTransferHandler_Activate(t *testing.T) {
	svc := new(mocks.TransferService)
	app := newTransferApp(svc)

	svc.On("Activate", mock.Anything, testIdentity).Return(2, nil).Once()

	req := httptest.NewRequest("POST", "/api/v1/transfers/activate", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got map[string]int
	decodeBody(t, resp.Body, &got)
	assert.Equal(t, 2, got["activated"])
	svc.AssertExpectations(t)
}
