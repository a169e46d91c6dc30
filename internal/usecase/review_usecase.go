package usecase

import (
	"errors"

	"yamdb/internal/entity"
	"yamdb/internal/permissions"
	"yamdb/internal/repo/persistent"
	"yamdb/internal/validate"
	"yamdb/pkg/logger"
)

const oneReviewMessage = "you can only leave one review for this title"

type ReviewUseCase interface {
	List(titleID string, limit, offset int) ([]*entity.Review, error)
	Get(titleID, reviewID string) (*entity.Review, error)
	Create(titleID string, author *entity.User, text string, score int) (*entity.Review, error)
	Update(titleID, reviewID string, requester *entity.User, text *string, score *int) (*entity.Review, error)
	Delete(titleID, reviewID string, requester *entity.User) error
}

type reviewUseCase struct {
	reviewRepo persistent.ReviewRepository
	titleRepo  persistent.TitleRepository
	logger     *logger.Logger
}

func NewReviewUseCase(
	reviewRepo persistent.ReviewRepository,
	titleRepo persistent.TitleRepository,
	logger *logger.Logger,
) ReviewUseCase {
	return &reviewUseCase{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		logger:     logger,
	}
}

func (uc *reviewUseCase) List(titleID string, limit, offset int) ([]*entity.Review, error) {
	if _, err := uc.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}
	return uc.reviewRepo.ListByTitle(titleID, limit, offset)
}

func (uc *reviewUseCase) Get(titleID, reviewID string) (*entity.Review, error) {
	if _, err := uc.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}
	return uc.reviewRepo.GetByID(titleID, reviewID)
}

func (uc *reviewUseCase) Create(titleID string, author *entity.User, text string, score int) (*entity.Review, error) {
	if _, err := uc.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}

	vErr := entity.NewValidationError()
	if text == "" {
		vErr.Add("text", "text is required")
	}
	if err := validate.Score(score); err != nil {
		vErr.Add("score", err.Error())
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	// Pre-check the one-review-per-author rule so the common case fails with
	// a descriptive message; the unique index below still catches races.
	exists, err := uc.reviewRepo.ExistsForAuthor(titleID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicateReviewError()
	}

	review := &entity.Review{
		TitleID:  titleID,
		AuthorID: author.ID,
		Text:     text,
		Score:    score,
	}
	if err := uc.reviewRepo.Create(review); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, duplicateReviewError()
		}
		uc.logger.Error("Failed to create review: %v", err)
		return nil, err
	}
	return review, nil
}

func (uc *reviewUseCase) Update(titleID, reviewID string, requester *entity.User, text *string, score *int) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if permissions.ObjectWrite(requester, review.AuthorID) != permissions.Allow {
		return nil, entity.ErrForbidden
	}

	vErr := entity.NewValidationError()
	if text != nil {
		if *text == "" {
			vErr.Add("text", "text is required")
		} else {
			review.Text = *text
		}
	}
	if score != nil {
		if err := validate.Score(*score); err != nil {
			vErr.Add("score", err.Error())
		} else {
			review.Score = *score
		}
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	if err := uc.reviewRepo.Update(review); err != nil {
		uc.logger.Error("Failed to update review %s: %v", reviewID, err)
		return nil, err
	}
	return review, nil
}

func (uc *reviewUseCase) Delete(titleID, reviewID string, requester *entity.User) error {
	review, err := uc.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		return err
	}

	if permissions.ObjectWrite(requester, review.AuthorID) != permissions.Allow {
		return entity.ErrForbidden
	}

	return uc.reviewRepo.Delete(review.ID)
}

func duplicateReviewError() *entity.ValidationError {
	vErr := entity.NewValidationError()
	vErr.Add("title", oneReviewMessage)
	return vErr
}
