package usecase

import (
	"errors"
	"fmt"

	"yamdb/internal/entity"
	"yamdb/internal/repo/persistent"
	"yamdb/internal/validate"
	"yamdb/pkg/logger"
)

// TitleInput is the write shape of a title: category and genres arrive as
// slug references and must resolve to existing records.
type TitleInput struct {
	Name        string
	Year        int
	Description string
	Category    string
	Genres      []string
}

// TitleUpdate carries a partial update; nil means "leave unchanged".
type TitleUpdate struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      []string
}

type TitleUseCase interface {
	List(filter persistent.TitleFilter) ([]*entity.Title, error)
	Get(id string) (*entity.Title, error)
	Create(input TitleInput) (*entity.Title, error)
	Update(id string, input TitleUpdate) (*entity.Title, error)
	Delete(id string) error
}

type titleUseCase struct {
	titleRepo    persistent.TitleRepository
	categoryRepo persistent.CategoryRepository
	genreRepo    persistent.GenreRepository
	logger       *logger.Logger
}

func NewTitleUseCase(
	titleRepo persistent.TitleRepository,
	categoryRepo persistent.CategoryRepository,
	genreRepo persistent.GenreRepository,
	logger *logger.Logger,
) TitleUseCase {
	return &titleUseCase{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		logger:       logger,
	}
}

func (uc *titleUseCase) List(filter persistent.TitleFilter) ([]*entity.Title, error) {
	titles, err := uc.titleRepo.List(filter)
	if err != nil {
		return nil, err
	}

	for _, title := range titles {
		if err := uc.attachRating(title); err != nil {
			return nil, err
		}
	}
	return titles, nil
}

func (uc *titleUseCase) Get(id string) (*entity.Title, error) {
	title, err := uc.titleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := uc.attachRating(title); err != nil {
		return nil, err
	}
	return title, nil
}

func (uc *titleUseCase) Create(input TitleInput) (*entity.Title, error) {
	vErr := entity.NewValidationError()
	if err := validate.Name(input.Name); err != nil {
		vErr.Add("name", err.Error())
	}
	if err := validate.Year(input.Year); err != nil {
		vErr.Add("year", err.Error())
	}
	if input.Category == "" {
		vErr.Add("category", "category is required")
	}
	if len(input.Genres) == 0 {
		vErr.Add("genre", "at least one genre is required")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	category, err := uc.resolveCategory(input.Category)
	if err != nil {
		return nil, err
	}
	genreIDs, err := uc.resolveGenres(input.Genres)
	if err != nil {
		return nil, err
	}

	title := &entity.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    category,
	}
	if err := uc.titleRepo.Create(title, genreIDs); err != nil {
		uc.logger.Error("Failed to create title: %v", err)
		return nil, err
	}
	return title, nil
}

func (uc *titleUseCase) Update(id string, input TitleUpdate) (*entity.Title, error) {
	title, err := uc.titleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	vErr := entity.NewValidationError()
	if input.Name != nil {
		if err := validate.Name(*input.Name); err != nil {
			vErr.Add("name", err.Error())
		} else {
			title.Name = *input.Name
		}
	}
	if input.Year != nil {
		if err := validate.Year(*input.Year); err != nil {
			vErr.Add("year", err.Error())
		} else {
			title.Year = *input.Year
		}
	}
	if input.Description != nil {
		title.Description = *input.Description
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	if input.Category != nil {
		category, err := uc.resolveCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		title.Category = category
	}

	var genreIDs []string
	if input.Genres != nil {
		genreIDs, err = uc.resolveGenres(input.Genres)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.titleRepo.Update(title, genreIDs); err != nil {
		uc.logger.Error("Failed to update title %s: %v", id, err)
		return nil, err
	}
	if err := uc.attachRating(title); err != nil {
		return nil, err
	}
	return title, nil
}

func (uc *titleUseCase) Delete(id string) error {
	return uc.titleRepo.Delete(id)
}

func (uc *titleUseCase) attachRating(title *entity.Title) error {
	rating, err := uc.titleRepo.GetRating(title.ID)
	if err != nil {
		uc.logger.Error("Failed to compute rating for title %s: %v", title.ID, err)
		return err
	}
	title.Rating = rating
	return nil
}

func (uc *titleUseCase) resolveCategory(slug string) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			vErr := entity.NewValidationError()
			vErr.Add("category", fmt.Sprintf("category with slug %s does not exist", slug))
			return nil, vErr
		}
		return nil, err
	}
	return category, nil
}

func (uc *titleUseCase) resolveGenres(slugs []string) ([]string, error) {
	genres, err := uc.genreRepo.GetBySlugs(slugs)
	if err != nil {
		return nil, err
	}

	found := make(map[string]string, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = genre.ID
	}

	genreIDs := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		genreID, ok := found[slug]
		if !ok {
			vErr := entity.NewValidationError()
			vErr.Add("genre", fmt.Sprintf("genre with slug %s does not exist", slug))
			return nil, vErr
		}
		genreIDs = append(genreIDs, genreID)
	}
	return genreIDs, nil
}
