package http

import (
	"net/http"
	"strconv"

	"yamdb/internal/permissions"
	"yamdb/internal/repo/persistent"
	"yamdb/internal/usecase"
	"yamdb/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleUseCase usecase.TitleUseCase
	logger       *logger.Logger
}

func NewTitleHandler(titleUseCase usecase.TitleUseCase, logger *logger.Logger) *TitleHandler {
	return &TitleHandler{
		titleUseCase: titleUseCase,
		logger:       logger,
	}
}

type createTitleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Genre       []string `json:"genre" binding:"required"`
}

type updateTitleRequest struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// ListTitles godoc
// @Summary      List titles
// @Description  Get titles with computed ratings. Filters combine with AND.
// @Tags         titles
// @Produce      json
// @Param        name query string false "Case-insensitive substring of the title name"
// @Param        category query string false "Category slug"
// @Param        genre query string false "Genre slug"
// @Param        year query int false "Exact release year"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /titles [get]
func (h *TitleHandler) ListTitles(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := persistent.TitleFilter{
		Name:         c.Query("name"),
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Limit:        limit,
		Offset:       offset,
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
			return
		}
		filter.Year = &year
	}

	titles, err := h.titleUseCase.List(filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"titles": titles, "count": len(titles)})
}

// GetTitle godoc
// @Summary      Get title by ID
// @Description  Get a title with its nested category, genres and computed rating
// @Tags         titles
// @Produce      json
// @Param        title_id path string true "Title ID"
// @Success      200  {object}  entity.Title
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id} [get]
func (h *TitleHandler) GetTitle(c *gin.Context) {
	title, err := h.titleUseCase.Get(c.Param("title_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

// CreateTitle godoc
// @Summary      Create a title
// @Description  Create a title; category and genre arrive as slugs and must resolve. Admin only.
// @Tags         titles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createTitleRequest true "Title data"
// @Success      201  {object}  entity.Title
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /titles [post]
func (h *TitleHandler) CreateTitle(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	var req createTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleUseCase.Create(usecase.TitleInput{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, title)
}

// UpdateTitle godoc
// @Summary      Update a title
// @Description  Partially update a title; full replacement is not supported. Admin only.
// @Tags         titles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title ID"
// @Param        request body updateTitleRequest true "Fields to change"
// @Success      200  {object}  entity.Title
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id} [patch]
func (h *TitleHandler) UpdateTitle(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	var req updateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleUseCase.Update(c.Param("title_id"), usecase.TitleUpdate{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

// DeleteTitle godoc
// @Summary      Delete a title
// @Description  Delete a title and, through cascades, its reviews and their comments. Admin only.
// @Tags         titles
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id} [delete]
func (h *TitleHandler) DeleteTitle(c *gin.Context) {
	if !requirePermission(c, permissions.AdminWrite(currentUser(c))) {
		return
	}

	if err := h.titleUseCase.Delete(c.Param("title_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
