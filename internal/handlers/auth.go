package handlers

import (
	"errors"
	"net/http"

	"noteshare/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for registration.
type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Credential exchange uses an OAuth2-style form body, not JSON.
type tokenForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string  "duplicate username or bad payload"
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if _, err := h.services.SignUp(input.Username, input.Password); err != nil {
		// Only taxonomy errors are the client's fault; a store failure is
		// a plain 500 and its internals stay out of the response body.
		if errors.Is(err, service.ErrDuplicateUser) || errors.Is(err, service.ErrInvalidPassword) {
			if h.log != nil {
				h.log.Infow("auth_register_failed", "username", input.Username, "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to register user", "auth_register_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "complete"})
}

// @Summary      Exchange credentials for a bearer token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  map[string]string  "access_token, token_type"
// @Failure      401  {object}  map[string]string
// @Router       /token [post]
func (h *Handler) token(c *gin.Context) {
	var input tokenForm
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.services.GenerateToken(input.Username, input.Password)
	if err != nil {
		// Unknown user and wrong password both read as bad credentials;
		// anything else is a store failure, not the client's fault.
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrNotFound) {
			if h.log != nil {
				h.log.Infow("auth_token_failed", "username", input.Username, "err", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to issue token", "auth_token_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// @Summary      Verify a token and return its subject
// @Tags         auth
// @Produce      json
// @Param        token  path  string  true  "Access token"
// @Success      200  {object}  map[string]string  "username"
// @Failure      403  {object}  map[string]string
// @Router       /verify-token/{token} [get]
func (h *Handler) verifyToken(c *gin.Context) {
	username, err := h.services.ParseToken(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "token is invalid or expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// @Summary      Revoke the presented token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	token := c.GetString(ctxTokenKey)
	if token == "" {
		// middleware always sets the token; treat a miss as an invalid session
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidToken.Error()})
		return
	}
	h.services.RevokeToken(token)
	c.JSON(http.StatusOK, gin.H{"message": "successfully logged out"})
}

// errorStatus maps service sentinel errors to HTTP statuses for item routes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
