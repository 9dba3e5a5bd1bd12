package pagestore

import (
	"context"
	"time"

	"coupon-wallet/internal/domain/user"
	"coupon-wallet/internal/infra"
	"coupon-wallet/internal/pkg/config"
)

// UserStore reads account records from the users data source.
type UserStore struct {
	client       *Client
	dataSourceID string
}

func NewUserStore(client *Client, cfg config.StoreConfig) *UserStore {
	return &UserStore{
		client:       client,
		dataSourceID: cfg.UsersDB,
	}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (user.User, error) {
	filter := map[string]any{
		"property": "Email",
		"email":    map[string]any{"equals": email},
	}

	pages, err := s.client.QueryDataSource(ctx, s.dataSourceID, filter, nil)
	if err != nil {
		return user.User{}, err
	}

	for _, page := range pages {
		if page.IsPage() {
			return userFromPage(page), nil
		}
	}
	return user.User{}, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

// RecordLogin stamps LastLoginAt with the current instant.
func (s *UserStore) RecordLogin(ctx context.Context, id string) error {
	props := map[string]any{
		"LastLoginAt": dateProperty(time.Now().Format(time.RFC3339)),
	}
	_, err := s.client.UpdatePage(ctx, id, props)
	return err
}

// Create inserts an account record, then backfills the UserId property with
// the id the store assigned.
func (s *UserStore) Create(ctx context.Context, email, name, passwordHash string) (user.User, error) {
	props := map[string]any{
		"Email":        emailProperty(email),
		"Name":         titleProperty(name),
		"PasswordHash": richTextProperty(passwordHash),
		"CreatedAt":    dateProperty(time.Now().Format(time.RFC3339)),
	}

	page, err := s.client.CreatePage(ctx, s.dataSourceID, props)
	if err != nil {
		return user.User{}, err
	}

	updated, err := s.client.UpdatePage(ctx, page.ID, map[string]any{
		"UserId": richTextProperty(page.ID),
	})
	if err != nil {
		return user.User{}, err
	}
	return userFromPage(updated), nil
}

func userFromPage(page Page) user.User {
	u := user.User{
		ID:           page.ID,
		Email:        page.EmailValue("Email"),
		Name:         page.TitleText("Name"),
		PasswordHash: page.Text("PasswordHash"),
		UserID:       page.Text("UserId"),
		CreatedAt:    page.DateStart("CreatedAt"),
		LastLoginAt:  page.DateStart("LastLoginAt"),
	}
	if u.UserID == "" {
		u.UserID = page.ID
	}
	return u
}
