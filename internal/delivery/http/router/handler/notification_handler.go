package handler

import (
	"log/slog"
	"net/http"

	"novasalud/internal/delivery/http/response"
	"novasalud/internal/domain/entity"
	"novasalud/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
	Logger         *slog.Logger
}

// NotificationHandler holds dependencies for the notification log handlers
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
	logger         *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{
		notificationUC: params.NotificationUC,
		logger:         params.Logger,
	}
}

// AddNotificationRequest represents the request body for posting a notification
type AddNotificationRequest struct {
	Message string                  `json:"message" validate:"required"`
	Type    entity.NotificationType `json:"type" validate:"omitempty,oneof=success error warning info"`
}

// NotificationList is the log together with its unread count
type NotificationList struct {
	Items  []*entity.Notification `json:"items"`
	Unread int                    `json:"unread"`
}

// ListNotifications handles retrieving the log, newest first
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.notificationUC.ListNotifications(ctx)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	unread, err := h.notificationUC.UnreadCount(ctx)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, NotificationList{Items: items, Unread: unread}, "Notifications retrieved successfully")
}

// AddNotification handles posting an operator notification
func (h *NotificationHandler) AddNotification(c echo.Context) error {
	var req AddNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	notification, err := h.notificationUC.AddNotification(c.Request().Context(), req.Message, req.Type)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, notification, "Notification added successfully")
}

// MarkAsRead handles flagging a notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid notification ID")
	}

	if err := h.notificationUC.MarkNotificationAsRead(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}

// ClearNotifications handles emptying the log
func (h *NotificationHandler) ClearNotifications(c echo.Context) error {
	if err := h.notificationUC.ClearAllNotifications(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Notifications cleared")
}
