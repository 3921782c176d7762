package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "divvy/internal/errors"
	"divvy/internal/pagination"
	"divvy/internal/services"
)

// GroupHandler handles group-related requests.
type GroupHandler struct {
	groupService services.GroupServicer
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService services.GroupServicer) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// CreateGroupRequest represents the request payload for creating a group
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// AddMemberRequest represents the request payload for adding a group member
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateGroup handles the creation of a new group
// @Summary     Create a group
// @Description Create a new group; the creator is enrolled as the first member
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGroupRequest true "Group details"
// @Success     201 {object} map[string]interface{} "Group created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.groupService.CreateGroup(userID, req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// GetUserGroups handles listing the caller's groups
// @Summary     List groups
// @Description Get a paginated list of groups the caller is a member of
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Group] "Paginated groups"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups [get]
func (h *GroupHandler) GetUserGroups(c *gin.Context) {
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

	result, err := h.groupService.GetUserGroups(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGroupByID handles retrieving one group
// @Summary     Get group by ID
// @Description Get a group with its members; only visible to members
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Group ID"
// @Success     200 {object} map[string]interface{} "Group details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id} [get]
func (h *GroupHandler) GetGroupByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	group, err := h.groupService.GetGroupByID(userID, groupID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": group})
}

// AddMember handles adding a member to a group
// @Summary     Add group member
// @Description Add a user to a group by email; caller must be a member
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int              true "Group ID"
// @Param       request body AddMemberRequest true "Member email"
// @Success     201 {object} map[string]interface{} "Member added"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not a group member"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     409 {object} ErrorResponse "Already a member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id}/members [post]
func (h *GroupHandler) AddMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.groupService.AddMember(userID, groupID, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// GetGroupMembers handles listing a group's members
// @Summary     List group members
// @Description Get the membership rows of a group; only visible to members
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Group ID"
// @Success     200 {object} map[string]interface{} "Group members"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a group member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id}/members [get]
func (h *GroupHandler) GetGroupMembers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	members, err := h.groupService.GetGroupMembers(userID, groupID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}
