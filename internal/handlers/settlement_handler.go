package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "divvy/internal/errors"
	"divvy/internal/pagination"
	"divvy/internal/services"
)

// SettlementHandler handles settle-up requests.
type SettlementHandler struct {
	settlementService services.SettlementServicer
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementService services.SettlementServicer) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// RecordSettlementRequest represents the request payload for recording a settlement
type RecordSettlementRequest struct {
	ToUser      uint    `json:"to_user" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	GroupID     *uint   `json:"group_id"`
	Description string  `json:"description" binding:"max=500"`
	Date        *string `json:"date"`
}

// GetNetBalances handles the per-counterparty netted balance list
// @Summary     Get net balances
// @Description Get the signed net amount against each counterparty, derived from unsettled participant rows. Pairs netting to zero are omitted.
// @Tags        settlements
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Net balances"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settlements/balances [get]
func (h *SettlementHandler) GetNetBalances(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balances, err := h.settlementService.GetNetBalances(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

// RecordSettlement handles recording a payment to another user
// @Summary     Record a settlement
// @Description Record a payment from the caller to another user. Settlements are append-only and leave expense participant rows untouched.
// @Tags        settlements
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordSettlementRequest true "Settlement details"
// @Success     201 {object} map[string]interface{} "Settlement recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settlements [post]
func (h *SettlementHandler) RecordSettlement(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settledAt := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		settledAt = parsed
	}

	settlement, err := h.settlementService.RecordSettlement(
		userID,
		req.ToUser,
		req.Amount,
		req.GroupID,
		req.Description,
		settledAt,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"settlement": settlement})
}

// GetUserSettlements handles listing the caller's settlements
// @Summary     List settlements
// @Description Get a paginated list of settlements the caller sent or received
// @Tags        settlements
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Settlement] "Paginated settlements"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settlements [get]
func (h *SettlementHandler) GetUserSettlements(c *gin.Context) {
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

	result, err := h.settlementService.GetUserSettlements(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
