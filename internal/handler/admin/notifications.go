package admin

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/handler"
	"github.com/lorean-shop/lorean/internal/repository"
)

// NotificationHandler lists the back-office notification feed. Delivery to
// external channels is out of scope; this is the poll fallback for clients
// without a realtime subscription.
type NotificationHandler struct {
	repo   repository.Querier
	logger zerolog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(repo repository.Querier, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes mounts the notification routes on the admin group.
func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications", h.List)
}

func (h *NotificationHandler) List(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 32)
	if limit <= 0 {
		limit = 50
	}

	notifications, err := h.repo.ListNotifications(c.Request().Context(), int32(limit))
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, handler.NewNotificationViews(notifications))
}
