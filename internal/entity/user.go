package entity

import "time"

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID          string    `json:"-"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Bio         string    `json:"bio"`
	Role        UserRole  `json:"role"`
	IsStaff     bool      `json:"-"`
	IsSuperuser bool      `json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// IsAdmin reports admin-equivalent privilege: the admin role, or either of
// the staff/superuser flags. All three paths grant the same access.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsStaff || u.IsSuperuser
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
