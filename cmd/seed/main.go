package main

import (
	"fmt"

	"yamdb/internal/model"
	"yamdb/pkg/config"
	"yamdb/pkg/database"
	"yamdb/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	users := []model.UserModel{
		{Username: "admin", Email: "admin@yamdb.fake", Role: "admin", IsStaff: true},
		{Username: "moderator", Email: "moderator@yamdb.fake", Role: "moderator"},
		{Username: "alice", Email: "alice@yamdb.fake", Role: "user", Bio: "Loves long novels"},
		{Username: "bob", Email: "bob@yamdb.fake", Role: "user"},
		{Username: "charlie", Email: "charlie@yamdb.fake", Role: "user"},
	}
	for i := range users {
		if err := db.Where("username = ?", users[i].Username).FirstOrCreate(&users[i]).Error; err != nil {
			log.Warn("Skipping user %s: %v", users[i].Username, err)
		}
	}
	log.Info("Seeded %d users", len(users))

	categories := []model.CategoryModel{
		{Name: "Books", Slug: "books"},
		{Name: "Films", Slug: "films"},
		{Name: "Music", Slug: "music"},
	}
	for i := range categories {
		if err := db.Where("slug = ?", categories[i].Slug).FirstOrCreate(&categories[i]).Error; err != nil {
			log.Warn("Skipping category %s: %v", categories[i].Slug, err)
		}
	}

	genres := []model.GenreModel{
		{Name: "Drama", Slug: "drama"},
		{Name: "Comedy", Slug: "comedy"},
		{Name: "Fantasy", Slug: "fantasy"},
		{Name: "Rock", Slug: "rock"},
	}
	for i := range genres {
		if err := db.Where("slug = ?", genres[i].Slug).FirstOrCreate(&genres[i]).Error; err != nil {
			log.Warn("Skipping genre %s: %v", genres[i].Slug, err)
		}
	}
	log.Info("Seeded %d categories and %d genres", len(categories), len(genres))

	titles := []model.TitleModel{
		{Name: "The Master and Margarita", Year: 1967, Description: "A classic", CategoryID: &categories[0].ID, Genres: []model.GenreModel{genres[0], genres[2]}},
		{Name: "Monty Python and the Holy Grail", Year: 1975, CategoryID: &categories[1].ID, Genres: []model.GenreModel{genres[1]}},
		{Name: "The Dark Side of the Moon", Year: 1973, CategoryID: &categories[2].ID, Genres: []model.GenreModel{genres[3]}},
	}
	for i := range titles {
		if err := db.Where("name = ? AND year = ?", titles[i].Name, titles[i].Year).FirstOrCreate(&titles[i]).Error; err != nil {
			log.Warn("Skipping title %s: %v", titles[i].Name, err)
		}
	}
	log.Info("Seeded %d titles", len(titles))

	reviews := []model.ReviewModel{
		{TitleID: titles[0].ID, AuthorID: users[2].ID, Text: "A masterpiece, read it twice.", Score: 10},
		{TitleID: titles[0].ID, AuthorID: users[3].ID, Text: "Good but the middle part drags.", Score: 7},
		{TitleID: titles[1].ID, AuthorID: users[4].ID, Text: "Still funny fifty years later.", Score: 9},
	}
	for i := range reviews {
		if err := db.Where("title_id = ? AND author_id = ?", reviews[i].TitleID, reviews[i].AuthorID).FirstOrCreate(&reviews[i]).Error; err != nil {
			log.Warn("Skipping review for title %s: %v", reviews[i].TitleID, err)
		}
	}

	comments := []model.CommentModel{
		{ReviewID: reviews[0].ID, AuthorID: users[3].ID, Text: "Completely agree."},
		{ReviewID: reviews[1].ID, AuthorID: users[2].ID, Text: "The middle part is the point!"},
	}
	for i := range comments {
		if err := db.Where("review_id = ? AND author_id = ? AND text = ?", comments[i].ReviewID, comments[i].AuthorID, comments[i].Text).FirstOrCreate(&comments[i]).Error; err != nil {
			log.Warn("Skipping comment: %v", err)
		}
	}
	log.Info("Seeded %d reviews and %d comments", len(reviews), len(comments))

	return nil
}
