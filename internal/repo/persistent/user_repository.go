package persistent

import (
	"yamdb/internal/entity"
	"yamdb/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List(search string, limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
	DeleteByUsername(username string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.Create(userModel).Error; err != nil {
		return translate(err)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) List(search string, limit, offset int) ([]*entity.User, error) {
	query := r.db.Model(&model.UserModel{}).Order("username")
	if search != "" {
		query = query.Where("username ILIKE ?", "%"+search+"%")
	}

	var userModels []model.UserModel
	if err := query.Limit(limit).Offset(offset).Find(&userModels).Error; err != nil {
		return nil, translate(err)
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, nil
}

func (r *userRepository) Update(user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.Save(userModel).Error; err != nil {
		return translate(err)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) DeleteByUsername(username string) error {
	result := r.db.Where("username = ?", username).Delete(&model.UserModel{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
