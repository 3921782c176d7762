package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "divvy/internal/errors"
	"divvy/internal/models"
	"divvy/internal/pagination"
	"divvy/internal/services"
)

type mockSettlementService struct {
	getNetBalancesFn     func(userID uint) ([]services.CounterpartyBalance, error)
	recordSettlementFn   func(fromUser, toUser uint, amount float64, groupID *uint, description string, settledAt time.Time) (*models.Settlement, error)
	getUserSettlementsFn func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Settlement], error)
}

func (m *mockSettlementService) GetNetBalances(userID uint) ([]services.CounterpartyBalance, error) {
	if m.getNetBalancesFn != nil {
		return m.getNetBalancesFn(userID)
	}
	return []services.CounterpartyBalance{}, nil
}

func (m *mockSettlementService) RecordSettlement(fromUser, toUser uint, amount float64, groupID *uint, description string, settledAt time.Time) (*models.Settlement, error) {
	if m.recordSettlementFn != nil {
		return m.recordSettlementFn(fromUser, toUser, amount, groupID, description, settledAt)
	}
	return &models.Settlement{}, nil
}

func (m *mockSettlementService) GetUserSettlements(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Settlement], error) {
	if m.getUserSettlementsFn != nil {
		return m.getUserSettlementsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Settlement{}, 1, 20, 0)
	return &resp, nil
}

func setupSettlementRouter(handler *SettlementHandler) *gin.Engine {
	r := gin.New()
	r.POST("/settlements", injectUserID(1), handler.RecordSettlement)
	r.GET("/settlements", injectUserID(1), handler.GetUserSettlements)
	r.GET("/settlements/balances", injectUserID(1), handler.GetNetBalances)
	return r
}

func TestSettlementHandler_RecordSettlement(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotFrom, gotTo uint
		settlementSvc := &mockSettlementService{
			recordSettlementFn: func(fromUser, toUser uint, amount float64, _ *uint, _ string, _ time.Time) (*models.Settlement, error) {
				gotFrom, gotTo = fromUser, toUser
				return &models.Settlement{
					Base:     models.Base{ID: 1},
					FromUser: fromUser,
					ToUser:   toUser,
					Amount:   amount,
				}, nil
			},
		}
		handler := NewSettlementHandler(settlementSvc)
		r := setupSettlementRouter(handler)

		rec := doRequest(r, "POST", "/settlements", `{"to_user":2,"amount":50}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFrom != 1 {
			t.Errorf("expected from_user to come from auth context, got %d", gotFrom)
		}
		if gotTo != 2 {
			t.Errorf("expected to_user 2, got %d", gotTo)
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		handler := NewSettlementHandler(&mockSettlementService{})
		r := setupSettlementRouter(handler)

		rec := doRequest(r, "POST", "/settlements", `{"to_user":2}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on negative amount", func(t *testing.T) {
		handler := NewSettlementHandler(&mockSettlementService{})
		r := setupSettlementRouter(handler)

		rec := doRequest(r, "POST", "/settlements", `{"to_user":2,"amount":-10}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on self settlement", func(t *testing.T) {
		settlementSvc := &mockSettlementService{
			recordSettlementFn: func(_, _ uint, _ float64, _ *uint, _ string, _ time.Time) (*models.Settlement, error) {
				return nil, apperrors.ErrSelfSettlement
			},
		}
		handler := NewSettlementHandler(settlementSvc)
		r := setupSettlementRouter(handler)

		rec := doRequest(r, "POST", "/settlements", `{"to_user":1,"amount":10}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SELF_SETTLEMENT")
	})

	t.Run("returns 404 on unknown recipient", func(t *testing.T) {
		settlementSvc := &mockSettlementService{
			recordSettlementFn: func(_, _ uint, _ float64, _ *uint, _ string, _ time.Time) (*models.Settlement, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewSettlementHandler(settlementSvc)
		r := setupSettlementRouter(handler)

		rec := doRequest(r, "POST", "/settlements", `{"to_user":999,"amount":10}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestSettlementHandler_GetNetBalances(t *testing.T) {
	t.Run("returns balances list", func(t *testing.T) {
		settlementSvc := &mockSettlementService{
			getNetBalancesFn: func(_ uint) ([]services.CounterpartyBalance, error) {
				return []services.CounterpartyBalance{
					{UserID: 2, FullName: "Bob", Email: "bob@example.com", Amount: 30},
				}, nil
			},
		}
		handler := NewSettlementHandler(settlementSvc)
		r := setupSettlementRouter(handler)

		rec := doRequest(r, "GET", "/settlements/balances", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		balances := result["balances"].([]interface{})
		if len(balances) != 1 {
			t.Fatalf("expected 1 balance, got %d", len(balances))
		}
		entry := balances[0].(map[string]interface{})
		if entry["amount"] != 30.0 {
			t.Errorf("expected amount 30, got %v", entry["amount"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewSettlementHandler(&mockSettlementService{})
		r := gin.New()
		r.GET("/settlements/balances", handler.GetNetBalances)

		rec := doRequest(r, "GET", "/settlements/balances", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
