package http

import (
	"net/http"

	"yamdb/internal/permissions"
	"yamdb/internal/usecase"
	"yamdb/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	catalogUseCase usecase.CatalogUseCase
	logger         *logger.Logger
}

func NewCategoryHandler(catalogUseCase usecase.CatalogUseCase, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalogUseCase: catalogUseCase,
		logger:         logger,
	}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// ListCategories godoc
// @Summary      List categories
// @Description  Get all categories with optional substring search on name
// @Tags         categories
// @Produce      json
// @Param        search query string false "Substring to match against category name"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	limit, offset := parsePagination(c)

	categories, err := h.catalogUseCase.ListCategories(c.Query("search"), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// CreateCategory godoc
// @Summary      Create a category
// @Description  Create a new category. Admin only.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createCategoryRequest true "Category data"
// @Success      201  {object}  entity.Category
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.catalogUseCase.CreateCategory(req.Name, req.Slug)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Delete a category by slug. Titles keep existing with a null category. Admin only.
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        slug path string true "Category slug"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /categories/{slug} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	if err := h.catalogUseCase.DeleteCategory(c.Param("slug")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
