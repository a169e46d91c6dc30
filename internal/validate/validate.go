package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9@.+\-_]+$`)
	slugRe     = regexp.MustCompile(`^[a-z0-9_-]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Username rejects the reserved name (case-insensitively) anywhere a
// username is submitted.
func Username(value, reserved string) error {
	if value == "" {
		return fmt.Errorf("username is required")
	}
	if strings.EqualFold(value, reserved) {
		return fmt.Errorf("the name %s is not allowed", reserved)
	}
	return nil
}

// SignupUsername additionally restricts the character class at signup.
func SignupUsername(value, reserved string) error {
	if err := Username(value, reserved); err != nil {
		return err
	}
	if !usernameRe.MatchString(value) {
		return fmt.Errorf("username %s is incorrect: this value may contain only letters, numbers, and @/./+/-/_ characters", value)
	}
	if len(value) > 150 {
		return fmt.Errorf("username must be at most 150 characters")
	}
	return nil
}

func Email(value string) error {
	if value == "" {
		return fmt.Errorf("email is required")
	}
	if len(value) > 254 || !emailRe.MatchString(value) {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func Score(value int) error {
	if value < 1 || value > 10 {
		return fmt.Errorf("enter a rating from 1 to 10")
	}
	return nil
}

// Year caps the release year at the current calendar year; the current year
// itself is accepted.
func Year(value int) error {
	if value > time.Now().Year() {
		return fmt.Errorf("release year can't exceed the current date")
	}
	if value <= 0 {
		return fmt.Errorf("enter a valid release year")
	}
	return nil
}

func Slug(value string) error {
	if value == "" {
		return fmt.Errorf("slug is required")
	}
	if len(value) > 50 || !slugRe.MatchString(value) {
		return fmt.Errorf("slug %s is incorrect: this value may contain only lowercase letters, numbers, hyphens and underscores", value)
	}
	return nil
}

func Name(value string) error {
	if value == "" {
		return fmt.Errorf("name is required")
	}
	if len(value) > 256 {
		return fmt.Errorf("name must be at most 256 characters")
	}
	return nil
}

func Role(value string) error {
	switch value {
	case "user", "moderator", "admin":
		return nil
	}
	return fmt.Errorf("role must be one of: user, moderator, admin")
}
