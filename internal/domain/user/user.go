package user

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email format")

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is the account record as the remote store holds it. PasswordHash never
// crosses the HTTP surface; responses use PublicView.
type User struct {
	ID           string
	UserID       string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    string
	LastLoginAt  string
}

// PublicView is the {id, email, name} shape auth responses expose.
type PublicView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u User) Public() PublicView {
	return PublicView{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}
