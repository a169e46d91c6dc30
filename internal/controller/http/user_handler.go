package http

import (
	"net/http"

	"yamdb/internal/permissions"
	"yamdb/internal/usecase"
	"yamdb/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

type createUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type updateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

func (r *updateUserRequest) toInput() usecase.UserUpdate {
	return usecase.UserUpdate{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Role:      r.Role,
	}
}

// ListUsers godoc
// @Summary      List users
// @Description  Get the user directory with optional substring search on username. Admin only.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Substring to match against username"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	limit, offset := parsePagination(c)
	users, err := h.userUseCase.List(c.Query("search"), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Create a user record with an explicit role. Admin only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createUserRequest true "User data"
// @Success      201  {object}  entity.User
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userUseCase.Create(usecase.UserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser godoc
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{username} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	user, err := h.userUseCase.GetByUsername(c.Param("username"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Partially update a user record, role included. Admin only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Param        request body updateUserRequest true "Fields to change"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{username} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userUseCase.Update(c.Param("username"), req.toInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{username} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	if err := h.userUseCase.Delete(c.Param("username")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if !requirePermission(c, permissions.Authenticated(user)) {
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary      Update own profile
// @Description  Partially update the authenticated user's record. A submitted role is ignored; the stored role is kept.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body updateUserRequest true "Fields to change"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := currentUser(c)
	if !requirePermission(c, permissions.Authenticated(user)) {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.userUseCase.UpdateSelf(user, req.toInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
