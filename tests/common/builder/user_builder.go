//go:build unit

package builder

import (
	"coupon-wallet/internal/domain/user"
	"coupon-wallet/internal/infra/pagestore"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    string
	LastLoginAt  string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.NewString(),
		Email:        "test@example.com",
		Name:         "テストユーザー",
		PasswordHash: "$2a$12$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		CreatedAt:    "2024-01-01T00:00:00Z",
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) Build() user.User {
	return user.User{
		ID:           b.ID,
		UserID:       b.ID,
		Email:        b.Email,
		Name:         b.Name,
		PasswordHash: b.PasswordHash,
		CreatedAt:    b.CreatedAt,
		LastLoginAt:  b.LastLoginAt,
	}
}

func (b *UserBuilder) BuildPage() pagestore.Page {
	email := b.Email
	props := map[string]pagestore.Property{
		"Name": {
			Type:  "title",
			Title: []pagestore.RichText{{PlainText: b.Name}},
		},
		"Email": {
			Type:  "email",
			Email: &email,
		},
		"PasswordHash": {
			Type:     "rich_text",
			RichText: []pagestore.RichText{{PlainText: b.PasswordHash}},
		},
		"UserId": {
			Type:     "rich_text",
			RichText: []pagestore.RichText{{PlainText: b.ID}},
		},
	}
	if b.CreatedAt != "" {
		props["CreatedAt"] = pagestore.Property{
			Type: "date",
			Date: &pagestore.DateValue{Start: b.CreatedAt},
		}
	}
	if b.LastLoginAt != "" {
		props["LastLoginAt"] = pagestore.Property{
			Type: "date",
			Date: &pagestore.DateValue{Start: b.LastLoginAt},
		}
	}

	return pagestore.Page{
		Object:     "page",
		ID:         b.ID,
		Properties: props,
	}
}

// Fluent builder methods
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.PasswordHash = hash
	return b
}
