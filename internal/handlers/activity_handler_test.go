package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"divvy/internal/models"
	"divvy/internal/pagination"
)

type mockActivityService struct {
	getUserActivitiesFn func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error)
}

func (m *mockActivityService) Record(_ uint, _ models.ActivityType, _ string, _, _ *uint) {}

func (m *mockActivityService) GetUserActivities(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error) {
	if m.getUserActivitiesFn != nil {
		return m.getUserActivitiesFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Activity{}, 1, 20, 0)
	return &resp, nil
}

func TestActivityHandler_GetUserActivities(t *testing.T) {
	t.Run("returns 200 with activities", func(t *testing.T) {
		activitySvc := &mockActivityService{
			getUserActivitiesFn: func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error) {
				resp := pagination.NewPageResponse([]models.Activity{
					{Base: models.Base{ID: 1}, UserID: userID, ActivityType: models.ActivityExpenseAdded},
				}, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		handler := NewActivityHandler(activitySvc)
		r := gin.New()
		r.GET("/activities", injectUserID(1), handler.GetUserActivities)

		rec := doRequest(r, "GET", "/activities", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Fatalf("expected 1 activity, got %d", len(data))
		}
	})

	t.Run("returns 400 on invalid page", func(t *testing.T) {
		handler := NewActivityHandler(&mockActivityService{})
		r := gin.New()
		r.GET("/activities", injectUserID(1), handler.GetUserActivities)

		rec := doRequest(r, "GET", "/activities?page=-1", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
