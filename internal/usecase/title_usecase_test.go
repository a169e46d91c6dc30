package usecase

import (
	"testing"
	"time"

	"yamdb/internal/entity"
	"yamdb/internal/repo/persistent"
	"yamdb/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTitleList_AttachesRatings(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewTitleUseCase(titleRepo, categoryRepo, genreRepo, logger.New())

	reviewed := &entity.Title{ID: "title-1", Name: "Dune", Year: 1965}
	unreviewed := &entity.Title{ID: "title-2", Name: "Unseen", Year: 2020}

	rating := 7.0
	titleRepo.On("List", persistent.TitleFilter{Limit: 20}).Return([]*entity.Title{reviewed, unreviewed}, nil)
	titleRepo.On("GetRating", "title-1").Return(&rating, nil)
	titleRepo.On("GetRating", "title-2").Return(nil, nil)

	titles, err := uc.List(persistent.TitleFilter{Limit: 20})

	assert.NoError(t, err)
	assert.Len(t, titles, 2)
	assert.NotNil(t, titles[0].Rating)
	assert.Equal(t, 7.0, *titles[0].Rating)
	assert.Nil(t, titles[1].Rating)

	titleRepo.AssertExpectations(t)
}

func TestTitleCreate_Success(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewTitleUseCase(titleRepo, categoryRepo, genreRepo, logger.New())

	category := &entity.Category{ID: "cat-1", Name: "Books", Slug: "books"}
	genre := &entity.Genre{ID: "genre-1", Name: "Fantasy", Slug: "fantasy"}

	categoryRepo.On("GetBySlug", "books").Return(category, nil)
	genreRepo.On("GetBySlugs", []string{"fantasy"}).Return([]*entity.Genre{genre}, nil)
	titleRepo.On("Create", mock.AnythingOfType("*entity.Title"), []string{"genre-1"}).Return(nil)

	title, err := uc.Create(TitleInput{
		Name:     "Dune",
		Year:     1965,
		Category: "books",
		Genres:   []string{"fantasy"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Dune", title.Name)
	assert.Equal(t, "books", title.Category.Slug)

	titleRepo.AssertExpectations(t)
}

func TestTitleCreate_FutureYear(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewTitleUseCase(titleRepo, categoryRepo, genreRepo, logger.New())

	_, err := uc.Create(TitleInput{
		Name:     "From the Future",
		Year:     time.Now().Year() + 1,
		Category: "books",
		Genres:   []string{"fantasy"},
	})

	var vErr *entity.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "year")
	titleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleCreate_UnknownCategory(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewTitleUseCase(titleRepo, categoryRepo, genreRepo, logger.New())

	categoryRepo.On("GetBySlug", "missing").Return(nil, entity.ErrNotFound)

	_, err := uc.Create(TitleInput{
		Name:     "Dune",
		Year:     1965,
		Category: "missing",
		Genres:   []string{"fantasy"},
	})

	var vErr *entity.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "category")
}

func TestTitleCreate_UnknownGenre(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewTitleUseCase(titleRepo, categoryRepo, genreRepo, logger.New())

	category := &entity.Category{ID: "cat-1", Name: "Books", Slug: "books"}
	known := &entity.Genre{ID: "genre-1", Name: "Fantasy", Slug: "fantasy"}

	categoryRepo.On("GetBySlug", "books").Return(category, nil)
	genreRepo.On("GetBySlugs", []string{"fantasy", "missing"}).Return([]*entity.Genre{known}, nil)

	_, err := uc.Create(TitleInput{
		Name:     "Dune",
		Year:     1965,
		Category: "books",
		Genres:   []string{"fantasy", "missing"},
	})

	var vErr *entity.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "genre")
	titleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleUpdate_PartialKeepsRest(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	uc := NewTitleUseCase(titleRepo, categoryRepo, genreRepo, logger.New())

	stored := &entity.Title{ID: "title-1", Name: "Dune", Year: 1965, Description: "Classic"}

	titleRepo.On("GetByID", "title-1").Return(stored, nil)
	titleRepo.On("Update", mock.AnythingOfType("*entity.Title"), []string(nil)).Return(nil)
	titleRepo.On("GetRating", "title-1").Return(nil, nil)

	name := "Dune Messiah"
	updated, err := uc.Update("title-1", TitleUpdate{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Name)
	assert.Equal(t, 1965, updated.Year)
	assert.Equal(t, "Classic", updated.Description)
}
