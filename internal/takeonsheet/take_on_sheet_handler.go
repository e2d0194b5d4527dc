package takeonsheet

import (
	"net/http"

	"go-hradmin/internal/shared/apperror"
	"go-hradmin/internal/shared/response"
	takeonsheeterrors "go-hradmin/internal/takeonsheet/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("takeonsheet.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("takeonsheet.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("take-on sheet request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	h.logger.Debug("http create take-on sheet", zap.String("company_id", companyID))

	var req CreateTakeOnSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create take-on sheet validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	status := c.Query("status")
	createdBy := c.Query("created_by")

	var (
		resp []TakeOnSheetResponse
		err  error
	)
	switch {
	case status != "":
		resp, err = h.service.ListByStatus(ctx, companyID, status)
	case createdBy != "":
		resp, err = h.service.ListByCreator(ctx, companyID, createdBy)
	default:
		resp, err = h.service.ListByCompany(ctx, companyID)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByAccessRequest(c *gin.Context) {
	ctx := c.Request.Context()
	accessRequestID := c.Param("requestId")

	resp, err := h.service.GetByAccessRequestID(ctx, accessRequestID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	actorID := c.GetString("user_id")
	actorRole := c.GetString("role")
	h.logger.Debug("http update take-on sheet",
		zap.String("sheet_id", id),
		zap.String("actor_role", actorRole),
	)

	var req UpdateTakeOnSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update take-on sheet validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	resp, err := h.service.Update(ctx, id, actorID, actorRole, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Transition(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	actorID := c.GetString("user_id")
	actorRole := c.GetString("role")

	var req TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http transition take-on sheet validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	// Role gate first: a role refusal is a 403, not an invalid-transition
	// conflict, so check against the current status before mutating.
	current, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !h.service.CanTransitionStatus(actorRole, current.Status, req.NewStatus) {
		if isValidForward(current.Status, req.NewStatus) {
			h.writeServiceError(c, takeonsheeterrors.TransitionForbidden(actorRole, current.Status, req.NewStatus))
			return
		}
		h.writeServiceError(c, takeonsheeterrors.InvalidTransition(
			current.Status, req.NewStatus, AllowedNextStatuses(current.Status),
		))
		return
	}

	resp, err := h.service.TransitionStatus(ctx, id, req.NewStatus, actorID, req.Notes)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) LinkEmployee(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	actorID := c.GetString("user_id")

	var req LinkEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http link employee validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	resp, err := h.service.LinkToEmployee(ctx, id, req.EmployeeID, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) EmployeeReadiness(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	resp, err := h.service.CanCreateEmployee(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Counts(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	resp, err := h.service.CountsByStatus(ctx, companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func isValidForward(from, to string) bool {
	for _, s := range AllowedNextStatuses(from) {
		if s == to {
			return true
		}
	}
	return false
}
