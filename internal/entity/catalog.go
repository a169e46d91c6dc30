package entity

import "time"

type Category struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Genre struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Title struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	Rating      *float64  `json:"rating"`
	Category    *Category `json:"category"`
	Genres      []Genre   `json:"genre"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
