package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "divvy/internal/errors"
	"divvy/internal/services"
)

// FriendHandler handles friendship-related requests.
type FriendHandler struct {
	friendService services.FriendServicer
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(friendService services.FriendServicer) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// AddFriendRequest represents the request payload for sending a friend request
type AddFriendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AddFriend handles sending a friend request
// @Summary     Add a friend
// @Description Send a friend request to a user looked up by email
// @Tags        friends
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddFriendRequest true "Friend email"
// @Success     201 {object} map[string]interface{} "Friend request created"
// @Failure     400 {object} ErrorResponse "Invalid input or self-friending"
// @Failure     404 {object} ErrorResponse "No user with that email"
// @Failure     409 {object} ErrorResponse "Friendship already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /friends [post]
func (h *FriendHandler) AddFriend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	friendship, err := h.friendService.AddFriend(userID, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"friendship": friendship})
}

// GetFriends handles listing accepted friends
// @Summary     List friends
// @Description List users with an accepted friendship on either side
// @Tags        friends
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Friends"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /friends [get]
func (h *FriendHandler) GetFriends(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	friends, err := h.friendService.GetFriends(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// GetPendingRequests handles listing incoming friend requests
// @Summary     List pending friend requests
// @Description List incoming friend requests awaiting a response
// @Tags        friends
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Pending requests"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /friends/requests [get]
func (h *FriendHandler) GetPendingRequests(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	requests, err := h.friendService.GetPendingRequests(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// AcceptFriend handles accepting an incoming friend request
// @Summary     Accept friend request
// @Description Accept an incoming pending friend request
// @Tags        friends
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Friendship ID"
// @Success     200 {object} map[string]interface{} "Friendship accepted"
// @Failure     404 {object} ErrorResponse "Request not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /friends/{id}/accept [post]
func (h *FriendHandler) AcceptFriend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	friendshipID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	friendship, err := h.friendService.AcceptFriend(userID, friendshipID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friendship": friendship})
}

// DeclineFriend handles declining an incoming friend request
// @Summary     Decline friend request
// @Description Decline and remove an incoming pending friend request
// @Tags        friends
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Friendship ID"
// @Success     200 {object} MessageResponse "Request declined"
// @Failure     404 {object} ErrorResponse "Request not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /friends/{id}/decline [post]
func (h *FriendHandler) DeclineFriend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	friendshipID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.friendService.DeclineFriend(userID, friendshipID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request declined"})
}

// BlockFriend handles blocking a relationship
// @Summary     Block friend
// @Description Mark a friendship the caller is part of as blocked
// @Tags        friends
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Friendship ID"
// @Success     200 {object} map[string]interface{} "Friendship blocked"
// @Failure     404 {object} ErrorResponse "Friendship not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /friends/{id}/block [post]
func (h *FriendHandler) BlockFriend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	friendshipID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	friendship, err := h.friendService.BlockFriend(userID, friendshipID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friendship": friendship})
}
