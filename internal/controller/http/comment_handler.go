package http

import (
	"net/http"

	"yamdb/internal/permissions"
	"yamdb/internal/usecase"
	"yamdb/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ListComments godoc
// @Summary      List comments under a review
// @Description  The review must belong to the title in the path, otherwise 404.
// @Tags         comments
// @Produce      json
// @Param        title_id path string true "Title ID"
// @Param        review_id path string true "Review ID"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	limit, offset := parsePagination(c)

	comments, err := h.commentUseCase.List(c.Param("title_id"), c.Param("review_id"), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}

// GetComment godoc
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Param        title_id path string true "Title ID"
// @Param        review_id path string true "Review ID"
// @Param        comment_id path string true "Comment ID"
// @Success      200  {object}  entity.Comment
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, err := h.commentUseCase.Get(c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// CreateComment godoc
// @Summary      Comment on a review
// @Description  The author is taken from the token.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title ID"
// @Param        review_id path string true "Review ID"
// @Param        request body commentRequest true "Comment data"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	user := currentUser(c)
	if !requirePermission(c, permissions.Authenticated(user)) {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.Create(c.Param("title_id"), c.Param("review_id"), user, req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary      Update a comment
// @Description  Allowed for the author, moderators and admins.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title ID"
// @Param        review_id path string true "Review ID"
// @Param        comment_id path string true "Comment ID"
// @Param        request body commentRequest true "Fields to change"
// @Success      200  {object}  entity.Comment
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	user := currentUser(c)
	if !requirePermission(c, permissions.Authenticated(user)) {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.Update(c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"), user, req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Allowed for the author, moderators and admins.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title ID"
// @Param        review_id path string true "Review ID"
// @Param        comment_id path string true "Comment ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	user := currentUser(c)
	if !requirePermission(c, permissions.Authenticated(user)) {
		return
	}

	if err := h.commentUseCase.Delete(c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"), user); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
