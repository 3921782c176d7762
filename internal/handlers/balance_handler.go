package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"divvy/internal/services"
)

// BalanceHandler handles dashboard balance requests.
type BalanceHandler struct {
	balanceService services.BalanceServicer
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceService services.BalanceServicer) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// GetDashboard handles the dashboard balance summary
// @Summary     Get dashboard
// @Description Get the caller's derived balance: total owed to them, total they owe, and the net. Recomputed from unsettled participant rows on every call.
// @Tags        balances
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardSummary "Balance summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *BalanceHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.balanceService.GetDashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
