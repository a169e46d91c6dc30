package persistent

import (
	"yamdb/internal/entity"
	"yamdb/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(reviewID, commentID string) (*entity.Comment, error)
	ListByReview(reviewID string, limit, offset int) ([]*entity.Comment, error)
	Update(comment *entity.Comment) error
	Delete(id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	commentModel := &model.CommentModel{
		ReviewID: comment.ReviewID,
		AuthorID: comment.AuthorID,
		Text:     comment.Text,
	}
	if err := r.db.Create(commentModel).Error; err != nil {
		return translate(err)
	}

	created, err := r.GetByID(comment.ReviewID, commentModel.ID)
	if err != nil {
		return err
	}
	*comment = *created
	return nil
}

func (r *commentRepository) GetByID(reviewID, commentID string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	err := r.db.Preload("Author").
		Where("id = ? AND review_id = ?", commentID, reviewID).
		First(&commentModel).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) ListByReview(reviewID string, limit, offset int) ([]*entity.Comment, error) {
	var commentModels []model.CommentModel
	err := r.db.Preload("Author").
		Where("review_id = ?", reviewID).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&commentModels).Error
	if err != nil {
		return nil, translate(err)
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, nil
}

func (r *commentRepository) Update(comment *entity.Comment) error {
	result := r.db.Model(&model.CommentModel{}).
		Where("id = ?", comment.ID).
		Update("text", comment.Text)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}

	updated, err := r.GetByID(comment.ReviewID, comment.ID)
	if err != nil {
		return err
	}
	*comment = *updated
	return nil
}

func (r *commentRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.CommentModel{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
