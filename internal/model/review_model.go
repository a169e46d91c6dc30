package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewModel struct {
	ID        string      `gorm:"type:uuid;primary_key" json:"id"`
	TitleID   string      `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_title_author" json:"title_id"`
	Title     *TitleModel `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  string      `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_title_author" json:"author_id"`
	Author    *UserModel  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Text      string      `gorm:"type:text;not null" json:"text"`
	Score     int         `gorm:"not null" json:"score"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (r *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type CommentModel struct {
	ID        string       `gorm:"type:uuid;primary_key" json:"id"`
	ReviewID  string       `gorm:"type:uuid;not null;index" json:"review_id"`
	Review    *ReviewModel `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  string       `gorm:"type:uuid;not null;index" json:"author_id"`
	Author    *UserModel   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Text      string       `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
