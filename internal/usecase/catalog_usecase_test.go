package usecase

import (
	"testing"

	"yamdb/internal/entity"
	"yamdb/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewCatalogUseCase(categoryRepo, genreRepo, logger.New())

	categoryRepo.On("Create", mock.AnythingOfType("*entity.Category")).Return(nil)

	category, err := uc.CreateCategory("Books", "books")

	assert.NoError(t, err)
	assert.Equal(t, "books", category.Slug)
	categoryRepo.AssertExpectations(t)
}

func TestCreateCategory_BadSlug(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewCatalogUseCase(categoryRepo, genreRepo, logger.New())

	_, err := uc.CreateCategory("Books", "Bad Slug!")

	var vErr *entity.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "slug")
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewCatalogUseCase(categoryRepo, genreRepo, logger.New())

	categoryRepo.On("Create", mock.AnythingOfType("*entity.Category")).Return(entity.ErrConflict)

	_, err := uc.CreateCategory("Books", "books")

	var vErr *entity.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "slug")
}

func TestCreateGenre_Success(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewCatalogUseCase(categoryRepo, genreRepo, logger.New())

	genreRepo.On("Create", mock.AnythingOfType("*entity.Genre")).Return(nil)

	genre, err := uc.CreateGenre("Drama", "drama")

	assert.NoError(t, err)
	assert.Equal(t, "drama", genre.Slug)
}

func TestDeleteGenre_Missing(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewCatalogUseCase(categoryRepo, genreRepo, logger.New())

	genreRepo.On("DeleteBySlug", "ghost").Return(entity.ErrNotFound)

	err := uc.DeleteGenre("ghost")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}
