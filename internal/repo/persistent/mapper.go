package persistent

import (
	"yamdb/internal/entity"
	"yamdb/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:          m.ID,
		Username:    m.Username,
		Email:       m.Email,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Bio:         m.Bio,
		Role:        entity.UserRole(m.Role),
		IsStaff:     m.IsStaff,
		IsSuperuser: m.IsSuperuser,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:          e.ID,
		Username:    e.Username,
		Email:       e.Email,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Bio:         e.Bio,
		Role:        string(e.Role),
		IsStaff:     e.IsStaff,
		IsSuperuser: e.IsSuperuser,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToCategoryEntity(m *model.CategoryModel) *entity.Category {
	if m == nil {
		return nil
	}

	return &entity.Category{
		ID:   m.ID,
		Name: m.Name,
		Slug: m.Slug,
	}
}

func ToCategoryModel(e *entity.Category) *model.CategoryModel {
	if e == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:   e.ID,
		Name: e.Name,
		Slug: e.Slug,
	}
}

func ToGenreEntity(m *model.GenreModel) *entity.Genre {
	if m == nil {
		return nil
	}

	return &entity.Genre{
		ID:   m.ID,
		Name: m.Name,
		Slug: m.Slug,
	}
}

func ToGenreModel(e *entity.Genre) *model.GenreModel {
	if e == nil {
		return nil
	}

	return &model.GenreModel{
		ID:   e.ID,
		Name: e.Name,
		Slug: e.Slug,
	}
}

// ToTitleEntity maps a title row with preloaded category and genres. The
// rating is attached separately by the repository after aggregation.
func ToTitleEntity(m *model.TitleModel) *entity.Title {
	if m == nil {
		return nil
	}

	genres := make([]entity.Genre, len(m.Genres))
	for i := range m.Genres {
		genres[i] = *ToGenreEntity(&m.Genres[i])
	}

	return &entity.Title{
		ID:          m.ID,
		Name:        m.Name,
		Year:        m.Year,
		Description: m.Description,
		Category:    ToCategoryEntity(m.Category),
		Genres:      genres,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToReviewEntity(m *model.ReviewModel) *entity.Review {
	if m == nil {
		return nil
	}

	review := &entity.Review{
		ID:       m.ID,
		TitleID:  m.TitleID,
		AuthorID: m.AuthorID,
		Text:     m.Text,
		Score:    m.Score,
		PubDate:  m.CreatedAt,
	}
	if m.Author != nil {
		review.Author = m.Author.Username
	}
	return review
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	comment := &entity.Comment{
		ID:       m.ID,
		ReviewID: m.ReviewID,
		AuthorID: m.AuthorID,
		Text:     m.Text,
		PubDate:  m.CreatedAt,
	}
	if m.Author != nil {
		comment.Author = m.Author.Username
	}
	return comment
}
