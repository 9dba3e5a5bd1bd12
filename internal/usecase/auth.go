package usecase

import (
	"context"
	"log/slog"

	"coupon-wallet/internal/domain/user"
	"coupon-wallet/internal/infra"
	"coupon-wallet/internal/pkg/errs"
	"coupon-wallet/internal/pkg/password"
	"coupon-wallet/internal/pkg/session"
)

var (
	ErrUserNotFound       = errs.New("user not found")
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrEmailTaken         = errs.New("email already registered")
)

// UserStore is the account side of the remote record store.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (user.User, error)
	RecordLogin(ctx context.Context, id string) error
	Create(ctx context.Context, email, name, passwordHash string) (user.User, error)
}

type AuthUseCase interface {
	// Login verifies credentials and issues a signed session token.
	Login(ctx context.Context, email, rawPassword string) (string, user.User, error)
	Register(ctx context.Context, email, name, rawPassword string) (user.User, error)
}

type authUseCaseImpl struct {
	users    UserStore
	sessions *session.Service
	logger   *slog.Logger
}

func NewAuthUseCase(users UserStore, sessions *session.Service, logger *slog.Logger) AuthUseCase {
	return &authUseCaseImpl{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, rawPassword string) (string, user.User, error) {
	addr, err := user.NewEmail(email)
	if err != nil {
		return "", user.User{}, errs.Mark(err, ErrInvalidCredentials)
	}

	u, err := a.users.FindByEmail(ctx, addr.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", user.User{}, errs.Mark(err, ErrUserNotFound)
		}
		return "", user.User{}, err
	}

	if err := password.ComparePassword(u.PasswordHash, rawPassword); err != nil {
		return "", user.User{}, errs.Mark(err, ErrInvalidCredentials)
	}

	token, err := a.sessions.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		return "", user.User{}, errs.Wrap(err, "failed to issue session token")
	}

	if err := a.users.RecordLogin(ctx, u.ID); err != nil {
		// Not critical: login already succeeded, only the timestamp is stale.
		a.logger.Warn("最終ログイン日時の更新に失敗しました", "user_id", u.ID, "error", err.Error())
	}

	return token, u, nil
}

func (a *authUseCaseImpl) Register(ctx context.Context, email, name, rawPassword string) (user.User, error) {
	addr, err := user.NewEmail(email)
	if err != nil {
		return user.User{}, err
	}

	if _, err := a.users.FindByEmail(ctx, addr.Value()); err == nil {
		return user.User{}, ErrEmailTaken
	} else if !infra.IsKind(err, infra.KindNotFound) {
		return user.User{}, err
	}

	hash, err := password.HashPassword(rawPassword)
	if err != nil {
		return user.User{}, err
	}

	created, err := a.users.Create(ctx, addr.Value(), name, hash)
	if err != nil {
		return user.User{}, err
	}
	return created, nil
}
