package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"divvy/internal/services"
)

type mockBalanceService struct {
	getDashboardFn func(userID uint) (*services.DashboardSummary, error)
}

func (m *mockBalanceService) GetDashboard(userID uint) (*services.DashboardSummary, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(userID)
	}
	return &services.DashboardSummary{}, nil
}

func TestBalanceHandler_GetDashboard(t *testing.T) {
	t.Run("returns 200 with summary", func(t *testing.T) {
		balanceSvc := &mockBalanceService{
			getDashboardFn: func(_ uint) (*services.DashboardSummary, error) {
				return &services.DashboardSummary{
					TotalOwed:  200,
					TotalOwing: 50,
					NetBalance: 150,
				}, nil
			},
		}
		handler := NewBalanceHandler(balanceSvc)
		r := gin.New()
		r.GET("/dashboard", injectUserID(1), handler.GetDashboard)

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_owed"] != 200.0 {
			t.Errorf("expected total_owed 200, got %v", result["total_owed"])
		}
		if result["net_balance"] != 150.0 {
			t.Errorf("expected net_balance 150, got %v", result["net_balance"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewBalanceHandler(&mockBalanceService{})
		r := gin.New()
		r.GET("/dashboard", handler.GetDashboard)

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
