package handlers

import (
	"errors"
	"net/http"
	"strings"

	"noteshare/internal/models"
	"noteshare/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRequestID() string { return uuid.NewString() }

// Context keys set by authMiddleware.
const (
	ctxUserKey  = "user"
	ctxTokenKey = "accessToken"
)

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware tags every request with an id for log correlation.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = newRequestID()
	}
	c.Set("requestId", id)
	c.Writer.Header().Set(requestIDHeader, id)
	c.Next()
}

// authMiddleware resolves the bearer token to a user record. Invalid,
// expired and revoked tokens all come back as 401; a valid token whose user
// record is gone comes back as 404.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	user, err := h.services.Authenticate(parts[1])
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error": "user not found",
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserKey, user)
	c.Set(ctxTokenKey, parts[1])
	c.Next()
}

// currentUser returns the user stored by authMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}
