package notification

import (
	"net/http"

	"go-hradmin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "email query parameter is required", nil)
		return
	}

	resp, err := h.service.ListByRecipient(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("list notifications failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list notifications", nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		h.logger.Error("mark notification read failed", zap.String("notification_id", id), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notification as read", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}
