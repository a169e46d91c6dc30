package usecase

import (
	"yamdb/internal/entity"
	"yamdb/internal/permissions"
	"yamdb/internal/repo/persistent"
	"yamdb/pkg/logger"
)

type CommentUseCase interface {
	List(titleID, reviewID string, limit, offset int) ([]*entity.Comment, error)
	Get(titleID, reviewID, commentID string) (*entity.Comment, error)
	Create(titleID, reviewID string, author *entity.User, text string) (*entity.Comment, error)
	Update(titleID, reviewID, commentID string, requester *entity.User, text string) (*entity.Comment, error)
	Delete(titleID, reviewID, commentID string, requester *entity.User) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	reviewRepo  persistent.ReviewRepository
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	reviewRepo persistent.ReviewRepository,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// resolveReview looks the review up under the title from the path; a review
// that exists but belongs to another title is a not-found, not a forbidden.
func (uc *commentUseCase) resolveReview(titleID, reviewID string) (*entity.Review, error) {
	return uc.reviewRepo.GetByID(titleID, reviewID)
}

func (uc *commentUseCase) List(titleID, reviewID string, limit, offset int) ([]*entity.Comment, error) {
	review, err := uc.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return uc.commentRepo.ListByReview(review.ID, limit, offset)
}

func (uc *commentUseCase) Get(titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := uc.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return uc.commentRepo.GetByID(review.ID, commentID)
}

func (uc *commentUseCase) Create(titleID, reviewID string, author *entity.User, text string) (*entity.Comment, error) {
	review, err := uc.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if text == "" {
		vErr := entity.NewValidationError()
		vErr.Add("text", "text is required")
		return nil, vErr
	}

	comment := &entity.Comment{
		ReviewID: review.ID,
		AuthorID: author.ID,
		Text:     text,
	}
	if err := uc.commentRepo.Create(comment); err != nil {
		uc.logger.Error("Failed to create comment: %v", err)
		return nil, err
	}
	return comment, nil
}

func (uc *commentUseCase) Update(titleID, reviewID, commentID string, requester *entity.User, text string) (*entity.Comment, error) {
	review, err := uc.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment, err := uc.commentRepo.GetByID(review.ID, commentID)
	if err != nil {
		return nil, err
	}

	if permissions.ObjectWrite(requester, comment.AuthorID) != permissions.Allow {
		return nil, entity.ErrForbidden
	}

	if text == "" {
		vErr := entity.NewValidationError()
		vErr.Add("text", "text is required")
		return nil, vErr
	}

	comment.Text = text
	if err := uc.commentRepo.Update(comment); err != nil {
		uc.logger.Error("Failed to update comment %s: %v", commentID, err)
		return nil, err
	}
	return comment, nil
}

func (uc *commentUseCase) Delete(titleID, reviewID, commentID string, requester *entity.User) error {
	review, err := uc.resolveReview(titleID, reviewID)
	if err != nil {
		return err
	}

	comment, err := uc.commentRepo.GetByID(review.ID, commentID)
	if err != nil {
		return err
	}

	if permissions.ObjectWrite(requester, comment.AuthorID) != permissions.Allow {
		return entity.ErrForbidden
	}

	return uc.commentRepo.Delete(comment.ID)
}
