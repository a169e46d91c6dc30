package entity

import "time"

type Review struct {
	ID       string    `json:"id"`
	TitleID  string    `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

type Comment struct {
	ID       string    `json:"id"`
	ReviewID string    `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}
