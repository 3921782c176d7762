package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "divvy/internal/errors"
	"divvy/internal/pagination"
	"divvy/internal/services"
)

// ActivityHandler handles activity feed requests.
type ActivityHandler struct {
	activityService services.ActivityServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService services.ActivityServicer) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// GetUserActivities handles listing the caller's activity feed
// @Summary     List activities
// @Description Get a paginated list of the caller's activity entries, newest first
// @Tags        activities
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Activity] "Paginated activities"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activities [get]
func (h *ActivityHandler) GetUserActivities(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.activityService.GetUserActivities(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
