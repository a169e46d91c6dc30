package persistent

import (
	"database/sql"

	"yamdb/internal/entity"
	"yamdb/internal/model"

	"gorm.io/gorm"
)

// TitleFilter narrows the title listing. All fields combine with AND;
// zero values mean "no filter".
type TitleFilter struct {
	Name         string
	CategorySlug string
	GenreSlug    string
	Year         *int
	Limit        int
	Offset       int
}

type TitleRepository interface {
	Create(title *entity.Title, genreIDs []string) error
	GetByID(id string) (*entity.Title, error)
	List(filter TitleFilter) ([]*entity.Title, error)
	Update(title *entity.Title, genreIDs []string) error
	Delete(id string) error
	GetRating(titleID string) (*float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(title *entity.Title, genreIDs []string) error {
	titleModel := &model.TitleModel{
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
	}
	if title.Category != nil {
		titleModel.CategoryID = &title.Category.ID
	}
	for _, genreID := range genreIDs {
		titleModel.Genres = append(titleModel.Genres, model.GenreModel{ID: genreID})
	}

	if err := r.db.Create(titleModel).Error; err != nil {
		return translate(err)
	}

	created, err := r.GetByID(titleModel.ID)
	if err != nil {
		return err
	}
	*title = *created
	return nil
}

func (r *titleRepository) GetByID(id string) (*entity.Title, error) {
	var titleModel model.TitleModel
	err := r.db.Preload("Category").Preload("Genres").Where("id = ?", id).First(&titleModel).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToTitleEntity(&titleModel), nil
}

func (r *titleRepository) List(filter TitleFilter) ([]*entity.Title, error) {
	query := r.db.Model(&model.TitleModel{}).
		Preload("Category").
		Preload("Genres").
		Order("titles.name")

	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		query = query.
			Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}

	var titleModels []model.TitleModel
	if err := query.Limit(filter.Limit).Offset(filter.Offset).Find(&titleModels).Error; err != nil {
		return nil, translate(err)
	}

	titles := make([]*entity.Title, len(titleModels))
	for i := range titleModels {
		titles[i] = ToTitleEntity(&titleModels[i])
	}
	return titles, nil
}

func (r *titleRepository) Update(title *entity.Title, genreIDs []string) error {
	updates := map[string]interface{}{
		"name":        title.Name,
		"year":        title.Year,
		"description": title.Description,
	}
	if title.Category != nil {
		updates["category_id"] = title.Category.ID
	}

	result := r.db.Model(&model.TitleModel{}).Where("id = ?", title.ID).Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}

	if genreIDs != nil {
		genres := make([]model.GenreModel, len(genreIDs))
		for i, genreID := range genreIDs {
			genres[i] = model.GenreModel{ID: genreID}
		}
		titleModel := &model.TitleModel{ID: title.ID}
		if err := r.db.Model(titleModel).Association("Genres").Replace(genres); err != nil {
			return translate(err)
		}
	}

	updated, err := r.GetByID(title.ID)
	if err != nil {
		return err
	}
	*title = *updated
	return nil
}

func (r *titleRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.TitleModel{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// GetRating averages the title's review scores at query time. A title with
// no reviews yields nil, never zero.
func (r *titleRepository) GetRating(titleID string) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.Model(&model.ReviewModel{}).
		Where("title_id = ?", titleID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return nil, translate(err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
