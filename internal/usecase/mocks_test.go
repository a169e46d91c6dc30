package usecase

import (
	"yamdb/internal/entity"
	"yamdb/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(search string, limit, offset int) ([]*entity.User, error) {
	args := m.Called(search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByUsername(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

// MockCategoryRepository is a mock implementation of persistent.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(category *entity.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetBySlug(slug string) (*entity.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(search string, limit, offset int) ([]*entity.Category, error) {
	args := m.Called(search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteBySlug(slug string) error {
	args := m.Called(slug)
	return args.Error(0)
}

var _ persistent.CategoryRepository = (*MockCategoryRepository)(nil)

// MockGenreRepository is a mock implementation of persistent.GenreRepository
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(genre *entity.Genre) error {
	args := m.Called(genre)
	return args.Error(0)
}

func (m *MockGenreRepository) GetBySlug(slug string) (*entity.Genre, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetBySlugs(slugs []string) ([]*entity.Genre, error) {
	args := m.Called(slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) List(search string, limit, offset int) ([]*entity.Genre, error) {
	args := m.Called(search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) DeleteBySlug(slug string) error {
	args := m.Called(slug)
	return args.Error(0)
}

var _ persistent.GenreRepository = (*MockGenreRepository)(nil)

// MockTitleRepository is a mock implementation of persistent.TitleRepository
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) Create(title *entity.Title, genreIDs []string) error {
	args := m.Called(title, genreIDs)
	return args.Error(0)
}

func (m *MockTitleRepository) GetByID(id string) (*entity.Title, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Title), args.Error(1)
}

func (m *MockTitleRepository) List(filter persistent.TitleFilter) ([]*entity.Title, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Title), args.Error(1)
}

func (m *MockTitleRepository) Update(title *entity.Title, genreIDs []string) error {
	args := m.Called(title, genreIDs)
	return args.Error(0)
}

func (m *MockTitleRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTitleRepository) GetRating(titleID string) (*float64, error) {
	args := m.Called(titleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

var _ persistent.TitleRepository = (*MockTitleRepository)(nil)

// MockReviewRepository is a mock implementation of persistent.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *entity.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(titleID, reviewID string) (*entity.Review, error) {
	args := m.Called(titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTitle(titleID string, limit, offset int) ([]*entity.Review, error) {
	args := m.Called(titleID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsForAuthor(titleID, authorID string) (bool, error) {
	args := m.Called(titleID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Update(review *entity.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.ReviewRepository = (*MockReviewRepository)(nil)

// MockCommentRepository is a mock implementation of persistent.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *entity.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(reviewID, commentID string) (*entity.Comment, error) {
	args := m.Called(reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByReview(reviewID string, limit, offset int) ([]*entity.Comment, error) {
	args := m.Called(reviewID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(comment *entity.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.CommentRepository = (*MockCommentRepository)(nil)

// MockConfirmationStore is a mock implementation of ConfirmationStore
type MockConfirmationStore struct {
	mock.Mock
}

func (m *MockConfirmationStore) Save(userID, codeHash string) error {
	args := m.Called(userID, codeHash)
	return args.Error(0)
}

func (m *MockConfirmationStore) Get(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockConfirmationStore) Delete(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

var _ ConfirmationStore = (*MockConfirmationStore)(nil)

// MockMailQueue is a mock implementation of MailQueue
type MockMailQueue struct {
	mock.Mock
}

func (m *MockMailQueue) PublishEmailTask(task map[string]interface{}) error {
	args := m.Called(task)
	return args.Error(0)
}

var _ MailQueue = (*MockMailQueue)(nil)
