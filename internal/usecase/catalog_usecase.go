package usecase

import (
	"errors"

	"yamdb/internal/entity"
	"yamdb/internal/repo/persistent"
	"yamdb/internal/validate"
	"yamdb/pkg/logger"
)

type CatalogUseCase interface {
	ListCategories(search string, limit, offset int) ([]*entity.Category, error)
	CreateCategory(name, slug string) (*entity.Category, error)
	DeleteCategory(slug string) error

	ListGenres(search string, limit, offset int) ([]*entity.Genre, error)
	CreateGenre(name, slug string) (*entity.Genre, error)
	DeleteGenre(slug string) error
}

type catalogUseCase struct {
	categoryRepo persistent.CategoryRepository
	genreRepo    persistent.GenreRepository
	logger       *logger.Logger
}

func NewCatalogUseCase(
	categoryRepo persistent.CategoryRepository,
	genreRepo persistent.GenreRepository,
	logger *logger.Logger,
) CatalogUseCase {
	return &catalogUseCase{
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		logger:       logger,
	}
}

func (uc *catalogUseCase) ListCategories(search string, limit, offset int) ([]*entity.Category, error) {
	return uc.categoryRepo.List(search, limit, offset)
}

func (uc *catalogUseCase) CreateCategory(name, slug string) (*entity.Category, error) {
	if err := validateSlugResource(name, slug); err != nil {
		return nil, err
	}

	category := &entity.Category{Name: name, Slug: slug}
	if err := uc.categoryRepo.Create(category); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			vErr := entity.NewValidationError()
			vErr.Add("slug", "category with this slug already exists")
			return nil, vErr
		}
		uc.logger.Error("Failed to create category: %v", err)
		return nil, err
	}
	return category, nil
}

func (uc *catalogUseCase) DeleteCategory(slug string) error {
	return uc.categoryRepo.DeleteBySlug(slug)
}

func (uc *catalogUseCase) ListGenres(search string, limit, offset int) ([]*entity.Genre, error) {
	return uc.genreRepo.List(search, limit, offset)
}

func (uc *catalogUseCase) CreateGenre(name, slug string) (*entity.Genre, error) {
	if err := validateSlugResource(name, slug); err != nil {
		return nil, err
	}

	genre := &entity.Genre{Name: name, Slug: slug}
	if err := uc.genreRepo.Create(genre); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			vErr := entity.NewValidationError()
			vErr.Add("slug", "genre with this slug already exists")
			return nil, vErr
		}
		uc.logger.Error("Failed to create genre: %v", err)
		return nil, err
	}
	return genre, nil
}

func (uc *catalogUseCase) DeleteGenre(slug string) error {
	return uc.genreRepo.DeleteBySlug(slug)
}

func validateSlugResource(name, slug string) error {
	vErr := entity.NewValidationError()
	if err := validate.Name(name); err != nil {
		vErr.Add("name", err.Error())
	}
	if err := validate.Slug(slug); err != nil {
		vErr.Add("slug", err.Error())
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
