package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName   string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName    string    `gorm:"type:varchar(150)" json:"last_name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	Role        string    `gorm:"type:varchar(20);default:'user'" json:"role"`
	IsStaff     bool      `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
