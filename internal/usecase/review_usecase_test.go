package usecase

import (
	"testing"

	"yamdb/internal/entity"
	"yamdb/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func reviewTestTitle() *entity.Title {
	return &entity.Title{ID: "title-1", Name: "Dune", Year: 1965}
}

func TestReviewCreate_Success(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	uc := NewReviewUseCase(reviewRepo, titleRepo, logger.New())

	author := &entity.User{ID: "user-1", Username: "alice", Role: entity.RoleUser}

	titleRepo.On("GetByID", "title-1").Return(reviewTestTitle(), nil)
	reviewRepo.On("ExistsForAuthor", "title-1", "user-1").Return(false, nil)
	reviewRepo.On("Create", mock.AnythingOfType("*entity.Review")).Return(nil)

	review, err := uc.Create("title-1", author, "Loved it", 9)

	assert.NoError(t, err)
	assert.Equal(t, "title-1", review.TitleID)
	assert.Equal(t, "user-1", review.AuthorID)
	assert.Equal(t, 9, review.Score)

	reviewRepo.AssertExpectations(t)
	titleRepo.AssertExpectations(t)
}

func TestReviewCreate_SecondReviewRejected(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	uc := NewReviewUseCase(reviewRepo, titleRepo, logger.New())

	author := &entity.User{ID: "user-1", Username: "alice", Role: entity.RoleUser}

	titleRepo.On("GetByID", "title-1").Return(reviewTestTitle(), nil)
	reviewRepo.On("ExistsForAuthor", "title-1", "user-1").Return(true, nil)

	_, err := uc.Create("title-1", author, "Again", 5)

	var vErr *entity.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "title")
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReviewCreate_ConflictRace(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	uc := NewReviewUseCase(reviewRepo, titleRepo, logger.New())

	author := &entity.User{ID: "user-1", Username: "alice", Role: entity.RoleUser}

	titleRepo.On("GetByID", "title-1").Return(reviewTestTitle(), nil)
	reviewRepo.On("ExistsForAuthor", "title-1", "user-1").Return(false, nil)
	reviewRepo.On("Create", mock.AnythingOfType("*entity.Review")).Return(entity.ErrConflict)

	_, err := uc.Create("title-1", author, "Race", 6)

	var vErr *entity.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "title")
}

func TestReviewCreate_ScoreOutOfRange(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	uc := NewReviewUseCase(reviewRepo, titleRepo, logger.New())

	author := &entity.User{ID: "user-1", Username: "alice", Role: entity.RoleUser}

	titleRepo.On("GetByID", "title-1").Return(reviewTestTitle(), nil)

	for _, score := range []int{0, 11, -3} {
		_, err := uc.Create("title-1", author, "text", score)

		var vErr *entity.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "score")
	}
	reviewRepo.AssertNotCalled(t, "ExistsForAuthor", mock.Anything, mock.Anything)
}

func TestReviewCreate_UnknownTitle(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	uc := NewReviewUseCase(reviewRepo, titleRepo, logger.New())

	author := &entity.User{ID: "user-1", Username: "alice", Role: entity.RoleUser}

	titleRepo.On("GetByID", "missing").Return(nil, entity.ErrNotFound)

	_, err := uc.Create("missing", author, "text", 5)

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestReviewUpdate_AuthorAllowed(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	uc := NewReviewUseCase(reviewRepo, titleRepo, logger.New())

	author := &entity.User{ID: "user-1", Username: "alice", Role: entity.RoleUser}
	stored := &entity.Review{ID: "review-1", TitleID: "title-1", AuthorID: "user-1", Text: "Old", Score: 5}

	reviewRepo.On("GetByID", "title-1", "review-1").Return(stored, nil)
	reviewRepo.On("Update", mock.AnythingOfType("*entity.Review")).Return(nil)

	text := "New"
	score := 8
	review, err := uc.Update("title-1", "review-1", author, &text, &score)

	assert.NoError(t, err)
	assert.Equal(t, "New", review.Text)
	assert.Equal(t, 8, review.Score)
}

func TestReviewUpdate_StrangerForbidden(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	uc := NewReviewUseCase(reviewRepo, titleRepo, logger.New())

	stranger := &entity.User{ID: "user-2", Username: "bob", Role: entity.RoleUser}
	stored := &entity.Review{ID: "review-1", TitleID: "title-1", AuthorID: "user-1", Text: "Old", Score: 5}

	reviewRepo.On("GetByID", "title-1", "review-1").Return(stored, nil)

	text := "Hijack"
	_, err := uc.Update("title-1", "review-1", stranger, &text, nil)

	assert.ErrorIs(t, err, entity.ErrForbidden)
	reviewRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestReviewDelete_ModeratorAllowed(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	uc := NewReviewUseCase(reviewRepo, titleRepo, logger.New())

	moderator := &entity.User{ID: "mod-1", Username: "mod", Role: entity.RoleModerator}
	stored := &entity.Review{ID: "review-1", TitleID: "title-1", AuthorID: "user-1", Text: "Old", Score: 5}

	reviewRepo.On("GetByID", "title-1", "review-1").Return(stored, nil)
	reviewRepo.On("Delete", "review-1").Return(nil)

	err := uc.Delete("title-1", "review-1", moderator)

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestReviewDelete_StrangerForbidden(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	uc := NewReviewUseCase(reviewRepo, titleRepo, logger.New())

	stranger := &entity.User{ID: "user-2", Username: "bob", Role: entity.RoleUser}
	stored := &entity.Review{ID: "review-1", TitleID: "title-1", AuthorID: "user-1", Text: "Old", Score: 5}

	reviewRepo.On("GetByID", "title-1", "review-1").Return(stored, nil)

	err := uc.Delete("title-1", "review-1", stranger)

	assert.ErrorIs(t, err, entity.ErrForbidden)
	reviewRepo.AssertNotCalled(t, "Delete", mock.Anything)
}
