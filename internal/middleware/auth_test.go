package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"divvy/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupProtectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		email, _ := c.Get("email")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": email})
	})
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid_token", func(t *testing.T) {
		user := &models.User{Base: models.Base{ID: 42}, Email: "test@example.com"}
		token, err := GenerateToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		r := setupProtectedRouter()
		rec := doAuthRequest(r, "Bearer "+token)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		r := setupProtectedRouter()
		rec := doAuthRequest(r, "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed_header", func(t *testing.T) {
		r := setupProtectedRouter()
		rec := doAuthRequest(r, "NotBearer abc")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("garbage_token", func(t *testing.T) {
		r := setupProtectedRouter()
		rec := doAuthRequest(r, "Bearer not.a.token")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestGenerateToken(t *testing.T) {
	user := &models.User{Base: models.Base{ID: 7}, Email: "claims@example.com"}
	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
}
