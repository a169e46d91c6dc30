package http

import (
	"net/http"

	"yamdb/internal/permissions"
	"yamdb/internal/usecase"
	"yamdb/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewUseCase usecase.ReviewUseCase
	logger        *logger.Logger
}

func NewReviewHandler(reviewUseCase usecase.ReviewUseCase, logger *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
		logger:        logger,
	}
}

type createReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required"`
}

type updateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// ListReviews godoc
// @Summary      List reviews for a title
// @Tags         reviews
// @Produce      json
// @Param        title_id path string true "Title ID"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	limit, offset := parsePagination(c)

	reviews, err := h.reviewUseCase.List(c.Param("title_id"), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

// GetReview godoc
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        title_id path string true "Title ID"
// @Param        review_id path string true "Review ID"
// @Success      200  {object}  entity.Review
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviewUseCase.Get(c.Param("title_id"), c.Param("review_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// CreateReview godoc
// @Summary      Create a review
// @Description  Post a review for a title. One review per author per title; the author is taken from the token.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title ID"
// @Param        request body createReviewRequest true "Review data"
// @Success      201  {object}  entity.Review
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	user := currentUser(c)
	if !requirePermission(c, permissions.Authenticated(user)) {
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewUseCase.Create(c.Param("title_id"), user, req.Text, *req.Score)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// UpdateReview godoc
// @Summary      Update a review
// @Description  Partially update a review. Allowed for the author, moderators and admins.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title ID"
// @Param        review_id path string true "Review ID"
// @Param        request body updateReviewRequest true "Fields to change"
// @Success      200  {object}  entity.Review
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id} [patch]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	user := currentUser(c)
	if !requirePermission(c, permissions.Authenticated(user)) {
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewUseCase.Update(c.Param("title_id"), c.Param("review_id"), user, req.Text, req.Score)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview godoc
// @Summary      Delete a review
// @Description  Delete a review and, through cascades, its comments. Allowed for the author, moderators and admins.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title ID"
// @Param        review_id path string true "Review ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	user := currentUser(c)
	if !requirePermission(c, permissions.Authenticated(user)) {
		return
	}

	if err := h.reviewUseCase.Delete(c.Param("title_id"), c.Param("review_id"), user); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
