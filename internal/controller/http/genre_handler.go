package http

import (
	"net/http"

	"yamdb/internal/permissions"
	"yamdb/internal/usecase"
	"yamdb/pkg/logger"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	catalogUseCase usecase.CatalogUseCase
	logger         *logger.Logger
}

func NewGenreHandler(catalogUseCase usecase.CatalogUseCase, logger *logger.Logger) *GenreHandler {
	return &GenreHandler{
		catalogUseCase: catalogUseCase,
		logger:         logger,
	}
}

type createGenreRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// ListGenres godoc
// @Summary      List genres
// @Description  Get all genres with optional substring search on name
// @Tags         genres
// @Produce      json
// @Param        search query string false "Substring to match against genre name"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /genres [get]
func (h *GenreHandler) ListGenres(c *gin.Context) {
	limit, offset := parsePagination(c)

	genres, err := h.catalogUseCase.ListGenres(c.Query("search"), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"genres": genres, "count": len(genres)})
}

// CreateGenre godoc
// @Summary      Create a genre
// @Description  Create a new genre. Admin only.
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createGenreRequest true "Genre data"
// @Success      201  {object}  entity.Genre
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /genres [post]
func (h *GenreHandler) CreateGenre(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	var req createGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.catalogUseCase.CreateGenre(req.Name, req.Slug)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, genre)
}

// DeleteGenre godoc
// @Summary      Delete a genre
// @Description  Delete a genre by slug. Admin only.
// @Tags         genres
// @Produce      json
// @Security     BearerAuth
// @Param        slug path string true "Genre slug"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /genres/{slug} [delete]
func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	if err := h.catalogUseCase.DeleteGenre(c.Param("slug")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
