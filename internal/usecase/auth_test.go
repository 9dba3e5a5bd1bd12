//go:build unit

package usecase_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"coupon-wallet/internal/domain/user"
	"coupon-wallet/internal/pkg/errs"
	"coupon-wallet/internal/pkg/password"
	"coupon-wallet/internal/pkg/session"
	"coupon-wallet/internal/usecase"
	"coupon-wallet/tests/common/builder"
	usecasemock "coupon-wallet/tests/mock/usecase"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthUseCaseTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockUsers *usecasemock.MockUserStore
	sessions  *session.Service
	useCase   usecase.AuthUseCase

	passwordHash string
}

func (s *AuthUseCaseTestSuite) SetupSuite() {
	// bcryptは重いので、スイート全体で1つのハッシュを使い回す
	hash, err := password.HashPassword("password123")
	s.Require().NoError(err)
	s.passwordHash = hash
}

func (s *AuthUseCaseTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUsers = usecasemock.NewMockUserStore(s.mockCtrl)
	s.sessions = session.NewService("test-session-secret", time.Hour)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.useCase = usecase.NewAuthUseCase(s.mockUsers, s.sessions, logger)
}

func (s *AuthUseCaseTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthUseCaseSuite(t *testing.T) {
	suite.Run(t, new(AuthUseCaseTestSuite))
}

func (s *AuthUseCaseTestSuite) knownUser() user.User {
	return builder.NewUserBuilder().
		WithEmail("taro@example.com").
		WithName("太郎").
		WithPasswordHash(s.passwordHash).
		Build()
}

func (s *AuthUseCaseTestSuite) TestLogin() {
	s.Run("成功: 検証可能なセッショントークンを発行する", func() {
		known := s.knownUser()

		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), known.Email).Return(known, nil)
		s.mockUsers.EXPECT().RecordLogin(gomock.Any(), known.ID).Return(nil)

		token, got, err := s.useCase.Login(s.T().Context(), known.Email, "password123")
		s.Require().NoError(err)
		s.Equal(known.ID, got.ID)

		sess, err := s.sessions.Verify(token)
		s.Require().NoError(err)
		s.Equal(known.ID, sess.UserID)
		s.Equal(known.Email, sess.Email)
		s.Equal(known.Name, sess.Name)
	})

	s.Run("成功: 最終ログイン日時の更新失敗はログインを失敗させない", func() {
		known := s.knownUser()

		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), known.Email).Return(known, nil)
		s.mockUsers.EXPECT().RecordLogin(gomock.Any(), known.ID).Return(errs.New("store down"))

		token, _, err := s.useCase.Login(s.T().Context(), known.Email, "password123")
		s.Require().NoError(err)
		s.NotEmpty(token)
	})

	s.Run("エラー: パスワード不一致", func() {
		known := s.knownUser()

		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), known.Email).Return(known, nil)

		_, _, err := s.useCase.Login(s.T().Context(), known.Email, "wrong-password")
		s.ErrorIs(err, usecase.ErrInvalidCredentials)
	})

	s.Run("エラー: 存在しないユーザー", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), "nobody@example.com").
			Return(user.User{}, notFoundErr())

		_, _, err := s.useCase.Login(s.T().Context(), "nobody@example.com", "password123")
		s.ErrorIs(err, usecase.ErrUserNotFound)
	})

	s.Run("エラー: メールアドレスの形式が不正", func() {
		_, _, err := s.useCase.Login(s.T().Context(), "not-an-email", "password123")
		s.ErrorIs(err, usecase.ErrInvalidCredentials)
	})

	s.Run("エラー: ストア障害はそのまま伝播する", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), "taro@example.com").
			Return(user.User{}, errs.New("store down"))

		_, _, err := s.useCase.Login(s.T().Context(), "taro@example.com", "password123")
		s.Error(err)
		s.NotErrorIs(err, usecase.ErrUserNotFound)
	})
}

func (s *AuthUseCaseTestSuite) TestRegister() {
	s.Run("成功: パスワードはハッシュ化して保存される", func() {
		created := builder.NewUserBuilder().WithEmail("new@example.com").WithName("新規ユーザー").Build()

		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), "new@example.com").
			Return(user.User{}, notFoundErr())
		s.mockUsers.EXPECT().Create(gomock.Any(), "new@example.com", "新規ユーザー", gomock.Any()).
			DoAndReturn(func(_ any, _, _, passwordHash string) (user.User, error) {
				s.NotEqual("password123", passwordHash)
				s.NoError(password.ComparePassword(passwordHash, "password123"))
				return created, nil
			})

		got, err := s.useCase.Register(s.T().Context(), "new@example.com", "新規ユーザー", "password123")
		s.Require().NoError(err)
		s.Equal(created.ID, got.ID)
	})

	s.Run("エラー: 登録済みメールアドレス", func() {
		known := s.knownUser()

		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), known.Email).Return(known, nil)

		_, err := s.useCase.Register(s.T().Context(), known.Email, "太郎", "password123")
		s.ErrorIs(err, usecase.ErrEmailTaken)
	})

	s.Run("エラー: メールアドレスの形式が不正", func() {
		_, err := s.useCase.Register(s.T().Context(), "not-an-email", "太郎", "password123")
		s.ErrorIs(err, user.ErrInvalidEmail)
	})

	s.Run("エラー: 既存確認時のストア障害は伝播する", func() {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), "new@example.com").
			Return(user.User{}, errs.New("store down"))

		_, err := s.useCase.Register(s.T().Context(), "new@example.com", "新規ユーザー", "password123")
		s.Error(err)
		s.NotErrorIs(err, usecase.ErrEmailTaken)
	})
}
