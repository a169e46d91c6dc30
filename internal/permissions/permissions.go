package permissions

import "yamdb/internal/entity"

// Decision separates "who are you" failures from "you may not" failures so
// handlers can answer 401 and 403 distinctly.
type Decision int

const (
	Allow Decision = iota
	Unauthorized
	Forbidden
)

// AdminWrite gates catalog and user-directory mutations: only an
// authenticated admin-equivalent user may proceed.
func AdminWrite(requester *entity.User) Decision {
	if requester == nil {
		return Unauthorized
	}
	if !requester.IsAdmin() {
		return Forbidden
	}
	return Allow
}

// Authenticated gates endpoints any signed-in user may hit (review/comment
// creation, the self-profile).
func Authenticated(requester *entity.User) Decision {
	if requester == nil {
		return Unauthorized
	}
	return Allow
}

// ObjectWrite gates mutation of an author-owned object: the author itself,
// a moderator, or an admin.
func ObjectWrite(requester *entity.User, authorID string) Decision {
	if requester == nil {
		return Unauthorized
	}
	if requester.ID == authorID || requester.IsModerator() || requester.IsAdmin() {
		return Allow
	}
	return Forbidden
}
