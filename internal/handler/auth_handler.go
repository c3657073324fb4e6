package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"entregas/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Tenant    string    `json:"empresa"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles POST /login
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body service.LoginInput true "usuario and senha"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Password) == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "usuario and senha are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, LoginResponse{
		Success:   true,
		Message:   "Login OK",
		Tenant:    result.Tenant,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}
