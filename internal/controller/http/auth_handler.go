package http

import (
	"net/http"

	"yamdb/internal/usecase"
	"yamdb/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
}

type tokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// Signup godoc
// @Summary      Sign up
// @Description  Create or fetch the identity for the username and email, then send a confirmation code to the email.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body signupRequest true "Signup data"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]interface{}
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUseCase.Signup(req.Email, req.Username)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": user.Email, "username": user.Username})
}

// GetToken godoc
// @Summary      Get an access token
// @Description  Exchange a confirmation code for a bearer access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body tokenRequest true "Token request"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /auth/token [post]
func (h *AuthHandler) GetToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authUseCase.IssueToken(req.Username, req.ConfirmationCode)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
