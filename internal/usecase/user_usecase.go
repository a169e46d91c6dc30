package usecase

import (
	"errors"

	"yamdb/internal/entity"
	"yamdb/internal/repo/persistent"
	"yamdb/internal/validate"
	"yamdb/pkg/logger"
)

// UserInput is the admin-side create shape. Role defaults to "user" when
// empty.
type UserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

// UserUpdate carries a partial update; nil means "leave unchanged". The
// self-service path ignores Role regardless of what was submitted.
type UserUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

type UserUseCase interface {
	List(search string, limit, offset int) ([]*entity.User, error)
	Create(input UserInput) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(username string, input UserUpdate) (*entity.User, error)
	Delete(username string) error
	UpdateSelf(requester *entity.User, input UserUpdate) (*entity.User, error)
}

type userUseCase struct {
	userRepo         persistent.UserRepository
	reservedUsername string
	logger           *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, reservedUsername string, logger *logger.Logger) UserUseCase {
	return &userUseCase{
		userRepo:         userRepo,
		reservedUsername: reservedUsername,
		logger:           logger,
	}
}

func (uc *userUseCase) List(search string, limit, offset int) ([]*entity.User, error) {
	return uc.userRepo.List(search, limit, offset)
}

func (uc *userUseCase) Create(input UserInput) (*entity.User, error) {
	if input.Role == "" {
		input.Role = string(entity.RoleUser)
	}

	vErr := entity.NewValidationError()
	if err := validate.SignupUsername(input.Username, uc.reservedUsername); err != nil {
		vErr.Add("username", err.Error())
	}
	if err := validate.Email(input.Email); err != nil {
		vErr.Add("email", err.Error())
	}
	if err := validate.Role(input.Role); err != nil {
		vErr.Add("role", err.Error())
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	if _, err := uc.userRepo.GetByUsername(input.Username); err == nil {
		vErr.Add("username", "user with this username already exists")
	}
	if _, err := uc.userRepo.GetByEmail(input.Email); err == nil {
		vErr.Add("email", "user with this email already exists")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	user := &entity.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      entity.UserRole(input.Role),
	}
	if err := uc.userRepo.Create(user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			vErr.Add("username", "username or email is not unique")
			return nil, vErr
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) GetByUsername(username string) (*entity.User, error) {
	return uc.userRepo.GetByUsername(username)
}

func (uc *userUseCase) Update(username string, input UserUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return uc.applyUpdate(user, input, true)
}

func (uc *userUseCase) Delete(username string) error {
	return uc.userRepo.DeleteByUsername(username)
}

// UpdateSelf applies every submitted field except role: the stored role is
// always kept, so the self-profile path cannot escalate privilege.
func (uc *userUseCase) UpdateSelf(requester *entity.User, input UserUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(requester.ID)
	if err != nil {
		return nil, err
	}
	return uc.applyUpdate(user, input, false)
}

func (uc *userUseCase) applyUpdate(user *entity.User, input UserUpdate, allowRole bool) (*entity.User, error) {
	vErr := entity.NewValidationError()

	if input.Username != nil && *input.Username != user.Username {
		if err := validate.SignupUsername(*input.Username, uc.reservedUsername); err != nil {
			vErr.Add("username", err.Error())
		} else if _, err := uc.userRepo.GetByUsername(*input.Username); err == nil {
			vErr.Add("username", "user with this username already exists")
		} else {
			user.Username = *input.Username
		}
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := validate.Email(*input.Email); err != nil {
			vErr.Add("email", err.Error())
		} else if _, err := uc.userRepo.GetByEmail(*input.Email); err == nil {
			vErr.Add("email", "user with this email already exists")
		} else {
			user.Email = *input.Email
		}
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil && allowRole {
		if err := validate.Role(*input.Role); err != nil {
			vErr.Add("role", err.Error())
		} else {
			user.Role = entity.UserRole(*input.Role)
		}
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	if err := uc.userRepo.Update(user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			vErr.Add("username", "username or email is not unique")
			return nil, vErr
		}
		uc.logger.Error("Failed to update user %s: %v", user.Username, err)
		return nil, err
	}
	return user, nil
}
