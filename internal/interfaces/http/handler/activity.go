package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orgadmin/backend/internal/application/tracker"
)

// ActivityLogHandler handles audit trail endpoints
type ActivityLogHandler struct {
	BaseHandler
	service *tracker.ActivityLogService
}

// NewActivityLogHandler creates a new activity log handler
func NewActivityLogHandler(service *tracker.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{service: service}
}

// Append handles POST /activity-logs
func (h *ActivityLogHandler) Append(c *gin.Context) {
	var req tracker.AppendActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Append(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID handles GET /activity-logs/:id
func (h *ActivityLogHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid activity log ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /activity-logs
func (h *ActivityLogHandler) List(c *gin.Context) {
	var filter tracker.ActivityLogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListByActor handles GET /users/:id/activity-logs
func (h *ActivityLogHandler) ListByActor(c *gin.Context) {
	actorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid user ID")
		return
	}

	var filter tracker.ActivityLogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.service.ListByActor(c.Request.Context(), actorID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}
