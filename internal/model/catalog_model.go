package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryModel struct {
	ID   string `gorm:"type:uuid;primary_key" json:"id"`
	Name string `gorm:"type:varchar(256);not null;index" json:"name"`
	Slug string `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

func (c *CategoryModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type GenreModel struct {
	ID   string `gorm:"type:uuid;primary_key" json:"id"`
	Name string `gorm:"type:varchar(256);not null;index" json:"name"`
	Slug string `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
}

func (GenreModel) TableName() string {
	return "genres"
}

func (g *GenreModel) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

type TitleModel struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"type:varchar(256);not null;index" json:"name"`
	Year        int            `gorm:"not null;index" json:"year"`
	Description string         `gorm:"type:text" json:"description"`
	CategoryID  *string        `gorm:"type:uuid;index" json:"category_id"`
	Category    *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Genres      []GenreModel   `gorm:"many2many:title_genres;joinForeignKey:TitleID;joinReferences:GenreID" json:"genres,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (TitleModel) TableName() string {
	return "titles"
}

func (t *TitleModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
