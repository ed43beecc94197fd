package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSessionAuth_Lifecycle(t *testing.T) {
	a := NewSessionAuth()

	token := a.CreateSession(42)
	assert.NotEmpty(t, token)

	userID, ok := a.resolve(token)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)

	a.RevokeSession(token)
	_, ok = a.resolve(token)
	assert.False(t, ok)
}

func TestSessionAuth_Expiry(t *testing.T) {
	a := NewSessionAuth()
	a.ttl = -time.Second

	token := a.CreateSession(42)

	_, ok := a.resolve(token)
	assert.False(t, ok)
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a := NewSessionAuth()
	token := a.CreateSession(42)

	router := gin.New()
	router.GET("/protected", a.SessionMiddleware(), func(c *gin.Context) {
		userID, ok := UserID(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"Valid token", "Bearer " + token, http.StatusOK},
		{"Missing header", "", http.StatusUnauthorized},
		{"Malformed header", token, http.StatusUnauthorized},
		{"Unknown token", "Bearer not-a-session", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
