package handler_test

import (
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

func newNotificationApp(svc *mocks.NotificationService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.IdentityContextKey, testIdentity)
		return c.Next()
	})

	h := handler.NewNotificationHandler(svc)
	notifications := app.Group("/api/v1/notifications")
	notifications.Get("/", h.List)
	notifications.Get("/unread-count", h.GetUnreadCount)
	notifications.Patch("/:id/read", h.MarkAsRead)
	notifications.Post("/mark-all-read", h.MarkAllAsRead)
	notifications.Delete("/:id", h.Delete)

	return app
}

func TestNotificationHandler_List(t *testing.T) {
	t.Run("Unread Only", func(t *testing.T) {
		svc := new(mocks.NotificationService)
		app := newNotificationApp(svc)

		result := domain.NewPaginatedResponse([]domain.Notification{
			{ID: uuid.New(), RecipientIdentity: testIdentity, Kind: domain.NotifTransferRequested},
		}, 1, 20, 1)
		svc.On("List", mock.Anything, testIdentity, true, domain.PaginationParams{Page: 1, PageSize: 20}).
			Return(result, nil).Once()

		req := httptest.NewRequest("GET", "/api/v1/notifications/?unread_only=true", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got domain.PaginatedResponse[domain.Notification]
		decodeBody(t, resp.Body, &got)
		assert.Len(t, got.Data, 1)
		svc.AssertExpectations(t)
	})

	t.Run("All", func(t *testing.T) {
		svc := new(mocks.NotificationService)
		app := newNotificationApp(svc)

		result := domain.NewPaginatedResponse([]domain.Notification{}, 1, 20, 0)
		svc.On("List", mock.Anything, testIdentity, false, mock.Anything).
			Return(result, nil).Once()

		req := httptest.NewRequest("GET", "/api/v1/notifications/", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestNotificationHandler_GetUnreadCount(t *testing.T) {
	svc := new(mocks.NotificationService)
	app := newNotificationApp(svc)

	svc.On("GetUnreadCount", mock.Anything, testIdentity).Return(int64(5), nil).Once()

	req := httptest.NewRequest("GET", "/api/v1/notifications/unread-count", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got map[string]int64
	decodeBody(t, resp.Body, &got)
	assert.Equal(t, int64(5), got["count"])
}

func TestNotificationHandler_MarkAsRead(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mocks.NotificationService)
		app := newNotificationApp(svc)
		id := uuid.New()

		svc.On("MarkAsRead", mock.Anything, id, testIdentity).Return(nil).Once()

		req := httptest.NewRequest("PATCH", "/api/v1/notifications/"+id.String()+"/read", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := new(mocks.NotificationService)
		app := newNotificationApp(svc)
		id := uuid.New()

		svc.On("MarkAsRead", mock.Anything, id, testIdentity).Return(domain.ErrNotFound).Once()

		req := httptest.NewRequest("PATCH", "/api/v1/notifications/"+id.String()+"/read", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		svc := new(mocks.NotificationService)
		app := newNotificationApp(svc)

		req := httptest.NewRequest("PATCH", "/api/v1/notifications/nope/read", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "MarkAsRead")
	})
}

func TestNotificationHandler_Delete(t *testing.T) {
	svc := new(mocks.NotificationService)
	app := newNotificationApp(svc)
	id := uuid.New()

	svc.On("Delete", mock.Anything, id, testIdentity).Return(nil).Once()

	req := httptest.NewRequest("DELETE", "/api/v1/notifications/"+id.String(), nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	svc.AssertExpectations(t)
}
