package usecase

import (
	"errors"
	"fmt"

	"yamdb/internal/entity"
	"yamdb/internal/repo/persistent"
	"yamdb/internal/validate"
	"yamdb/pkg/jwt"
	"yamdb/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ConfirmationStore keeps bcrypt hashes of outstanding confirmation codes,
// keyed by user id, with a bounded lifetime.
type ConfirmationStore interface {
	Save(userID, codeHash string) error
	Get(userID string) (string, error)
	Delete(userID string) error
}

// MailQueue hands email delivery tasks to the external mail collaborator.
type MailQueue interface {
	PublishEmailTask(task map[string]interface{}) error
}

type AuthUseCase interface {
	Signup(email, username string) (*entity.User, error)
	IssueToken(username, confirmationCode string) (string, error)
}

type authUseCase struct {
	userRepo         persistent.UserRepository
	codes            ConfirmationStore
	mailQueue        MailQueue
	jwtService       *jwt.Service
	reservedUsername string
	logger           *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	codes ConfirmationStore,
	mailQueue MailQueue,
	jwtService *jwt.Service,
	reservedUsername string,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:         userRepo,
		codes:            codes,
		mailQueue:        mailQueue,
		jwtService:       jwtService,
		reservedUsername: reservedUsername,
		logger:           logger,
	}
}

// Signup fetches or creates the identity for the (username, email) pair and
// sends a fresh confirmation code to the email. Repeating a signup with the
// same pair reissues the code.
func (uc *authUseCase) Signup(email, username string) (*entity.User, error) {
	vErr := entity.NewValidationError()
	if err := validate.SignupUsername(username, uc.reservedUsername); err != nil {
		vErr.Add("username", err.Error())
	}
	if err := validate.Email(email); err != nil {
		vErr.Add("email", err.Error())
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	user, err := uc.getOrCreate(email, username)
	if err != nil {
		return nil, err
	}

	code := uuid.New().String()
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash confirmation code: %v", err)
		return nil, fmt.Errorf("failed to process signup")
	}
	if err := uc.codes.Save(user.ID, string(codeHash)); err != nil {
		uc.logger.Error("Failed to store confirmation code: %v", err)
		return nil, fmt.Errorf("failed to process signup")
	}

	if uc.mailQueue != nil {
		task := map[string]interface{}{
			"to":      user.Email,
			"subject": "YaMDb confirmation code",
			"body":    fmt.Sprintf("Use this code to get an access token: %s", code),
		}
		if err := uc.mailQueue.PublishEmailTask(task); err != nil {
			uc.logger.Error("Failed to publish confirmation email for %s: %v", user.Username, err)
			return nil, fmt.Errorf("failed to send confirmation code")
		}
	} else {
		uc.logger.Warn("Email queue unavailable, confirmation code for %s not delivered", user.Username)
	}

	return user, nil
}

func (uc *authUseCase) getOrCreate(email, username string) (*entity.User, error) {
	byUsername, usernameErr := uc.userRepo.GetByUsername(username)
	if usernameErr == nil {
		if byUsername.Email != email {
			return nil, pairTakenError()
		}
		return byUsername, nil
	}
	if !errors.Is(usernameErr, entity.ErrNotFound) {
		return nil, usernameErr
	}

	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		// Email belongs to a different username.
		return nil, pairTakenError()
	} else if !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Role:     entity.RoleUser,
	}
	if err := uc.userRepo.Create(user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, pairTakenError()
		}
		uc.logger.Error("Failed to create user at signup: %v", err)
		return nil, err
	}
	return user, nil
}

// IssueToken exchanges a valid confirmation code for a bearer access token.
// An unknown username is a not-found; a wrong code is a validation failure.
func (uc *authUseCase) IssueToken(username, confirmationCode string) (string, error) {
	if err := validate.Username(username, uc.reservedUsername); err != nil {
		vErr := entity.NewValidationError()
		vErr.Add("username", err.Error())
		return "", vErr
	}

	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}

	codeHash, err := uc.codes.Get(user.ID)
	if err != nil {
		return "", badCodeError()
	}
	if bcrypt.CompareHashAndPassword([]byte(codeHash), []byte(confirmationCode)) != nil {
		return "", badCodeError()
	}

	if err := uc.codes.Delete(user.ID); err != nil {
		uc.logger.Warn("Failed to invalidate confirmation code for %s: %v", username, err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token for %s: %v", username, err)
		return "", fmt.Errorf("failed to generate token")
	}
	return token, nil
}

func pairTakenError() *entity.ValidationError {
	vErr := entity.NewValidationError()
	vErr.Add("username", "username or email is not unique or incorrect")
	return vErr
}

func badCodeError() *entity.ValidationError {
	vErr := entity.NewValidationError()
	vErr.Add("confirmation_code", "confirmation code is incorrect")
	return vErr
}
