package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "divvy/internal/errors"
	"divvy/internal/models"
	"divvy/internal/pagination"
	"divvy/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense
type CreateExpenseRequest struct {
	Description  string  `json:"description" binding:"required,max=500"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Category     string  `json:"category" binding:"omitempty,expense_category"`
	GroupID      *uint   `json:"group_id"`
	Date         *string `json:"date"`
	Participants []uint  `json:"participants"`
}

// CreateExpense handles the creation of a new equal-split expense
// @Summary     Create an expense
// @Description Create an expense split equally across its participants; the payer is always included. For group expenses an empty participant list defaults to all members.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} map[string]interface{} "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a group member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenseDate := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		expenseDate = parsed
	}

	expense, err := h.expenseService.CreateExpense(
		userID,
		req.Description,
		req.Amount,
		models.ExpenseCategory(req.Category),
		req.GroupID,
		expenseDate,
		req.Participants,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenseByID handles the retrieval of a specific expense
// @Summary     Get expense by ID
// @Description Get an expense with its participants; visible to the payer, group members, and listed participants
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} map[string]interface{} "Expense details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// GetUserExpenses handles listing the caller's expenses
// @Summary     List expenses
// @Description Get a paginated list of expenses the caller paid or participates in
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetUserExpenses(c *gin.Context) {
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

	result, err := h.expenseService.GetUserExpenses(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGroupExpenses handles listing a group's expenses
// @Summary     Get group expenses
// @Description Get a paginated list of expenses for a group; members only
// @Tags        groups,expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Group ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a group member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id}/expenses [get]
func (h *ExpenseHandler) GetGroupExpenses(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.GetGroupExpenses(userID, groupID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
