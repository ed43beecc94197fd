package auth

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"gigspace/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionTTL = 7 * 24 * time.Hour

const userIDKey = "user_id"

type session struct {
	userID    int64
	expiresAt time.Time
}

// SessionAuth issues opaque bearer tokens at login and validates them on
// every authenticated request. Sessions live in memory; a restart logs
// everyone out, which the clients treat as an ordinary expired session.
type SessionAuth struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
}

func NewSessionAuth() *SessionAuth {
	return &SessionAuth{
		sessions: make(map[string]session),
		ttl:      SessionTTL,
	}
}

func (s *SessionAuth) CreateSession(userID int64) string {
	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = session{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return token
}

func (s *SessionAuth) RevokeSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *SessionAuth) resolve(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return 0, false
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return 0, false
	}
	return sess.userID, true
}

func (s *SessionAuth) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		token, ok := bearerToken(c)
		if !ok {
			log.Info("missing or malformed authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		userID, ok := s.resolve(token)
		if !ok {
			log.Info("invalid or expired session token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// UserID returns the authenticated user injected by SessionMiddleware.
func UserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
