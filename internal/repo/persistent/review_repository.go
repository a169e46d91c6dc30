package persistent

import (
	"yamdb/internal/entity"
	"yamdb/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *entity.Review) error
	GetByID(titleID, reviewID string) (*entity.Review, error)
	ListByTitle(titleID string, limit, offset int) ([]*entity.Review, error)
	ExistsForAuthor(titleID, authorID string) (bool, error)
	Update(review *entity.Review) error
	Delete(id string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *entity.Review) error {
	reviewModel := &model.ReviewModel{
		TitleID:  review.TitleID,
		AuthorID: review.AuthorID,
		Text:     review.Text,
		Score:    review.Score,
	}
	if err := r.db.Create(reviewModel).Error; err != nil {
		return translate(err)
	}

	created, err := r.GetByID(review.TitleID, reviewModel.ID)
	if err != nil {
		return err
	}
	*review = *created
	return nil
}

func (r *reviewRepository) GetByID(titleID, reviewID string) (*entity.Review, error) {
	var reviewModel model.ReviewModel
	err := r.db.Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&reviewModel).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToReviewEntity(&reviewModel), nil
}

func (r *reviewRepository) ListByTitle(titleID string, limit, offset int) ([]*entity.Review, error) {
	var reviewModels []model.ReviewModel
	err := r.db.Preload("Author").
		Where("title_id = ?", titleID).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&reviewModels).Error
	if err != nil {
		return nil, translate(err)
	}

	reviews := make([]*entity.Review, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = ToReviewEntity(&reviewModels[i])
	}
	return reviews, nil
}

func (r *reviewRepository) ExistsForAuthor(titleID, authorID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ReviewModel{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *reviewRepository) Update(review *entity.Review) error {
	result := r.db.Model(&model.ReviewModel{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"text":  review.Text,
			"score": review.Score,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}

	updated, err := r.GetByID(review.TitleID, review.ID)
	if err != nil {
		return err
	}
	*review = *updated
	return nil
}

func (r *reviewRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.ReviewModel{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
