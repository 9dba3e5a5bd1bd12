//go:build unit

package usecase_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"coupon-wallet/internal/domain/coupon"
	"coupon-wallet/internal/infra"
	"coupon-wallet/internal/pkg/clock"
	"coupon-wallet/internal/pkg/errs"
	"coupon-wallet/internal/usecase"
	"coupon-wallet/tests/common/builder"
	usecasemock "coupon-wallet/tests/mock/usecase"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CouponUseCaseTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockStore    *usecasemock.MockCouponStore
	mockNotifier *usecasemock.MockNotifier
	clock        *clock.MockClock
	useCase      usecase.CouponUseCase
}

func (s *CouponUseCaseTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = usecasemock.NewMockCouponStore(s.mockCtrl)
	s.mockNotifier = usecasemock.NewMockNotifier(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.useCase = usecase.NewCouponUseCase(s.mockStore, s.mockNotifier, s.clock, logger)
}

func (s *CouponUseCaseTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCouponUseCaseSuite(t *testing.T) {
	suite.Run(t, new(CouponUseCaseTestSuite))
}

func notFoundErr() error {
	return infra.WrapRepoErr("record not found", nil, infra.KindNotFound)
}

func notConfiguredErr() error {
	return infra.WrapRepoErr("document store is not configured", nil, infra.KindNotConfigured)
}

func usedPatch() coupon.Patch {
	used := coupon.StatusUsed
	return coupon.Patch{Status: &used}
}

func (s *CouponUseCaseTestSuite) TestRedeem() {
	s.Run("成功: 使用日時を刻んで保存し、通知を1回だけ送る", func() {
		current := builder.NewCouponBuilder().WithExpiryDate("2099-12-31").Build()
		wantUsedDate := s.clock.Now().Format(time.RFC3339)

		redeemed := current
		redeemed.Status = coupon.StatusUsed
		redeemed.UsedDate = wantUsedDate

		s.mockStore.EXPECT().Find(gomock.Any(), current.ID).Return(current, nil)
		s.mockStore.EXPECT().Apply(gomock.Any(), current.ID, gomock.Any()).
			DoAndReturn(func(_ any, _ string, patch coupon.Patch) (coupon.Coupon, error) {
				s.Require().NotNil(patch.UsedDate)
				s.Equal(wantUsedDate, *patch.UsedDate)
				s.Require().NotNil(patch.Status)
				s.Equal(coupon.StatusUsed, *patch.Status)
				return redeemed, nil
			})
		s.mockNotifier.EXPECT().CouponUsed(redeemed, "太郎").Times(1)

		got, err := s.useCase.Update(s.T().Context(), current.ID, usedPatch(), "太郎")
		s.Require().NoError(err)
		s.Equal(coupon.StatusUsed, got.Status)
		s.Equal(wantUsedDate, got.UsedDate)
	})

	s.Run("エラー: 使用済みクーポンは再使用できない", func() {
		current := builder.NewCouponBuilder().AsUsed("2024-05-01T10:00:00Z").Build()

		s.mockStore.EXPECT().Find(gomock.Any(), current.ID).Return(current, nil)

		_, err := s.useCase.Update(s.T().Context(), current.ID, usedPatch(), "太郎")
		s.ErrorIs(err, usecase.ErrCouponAlreadyUsed)
	})

	s.Run("エラー: 期限切れクーポンは使用できない", func() {
		current := builder.NewCouponBuilder().WithExpiryDate("2024-01-01").Build()

		s.mockStore.EXPECT().Find(gomock.Any(), current.ID).Return(current, nil)

		_, err := s.useCase.Update(s.T().Context(), current.ID, usedPatch(), "太郎")
		s.ErrorIs(err, usecase.ErrCouponExpired)
	})

	s.Run("エラー: 存在しないクーポン", func() {
		s.mockStore.EXPECT().Find(gomock.Any(), "missing-id").Return(coupon.Coupon{}, notFoundErr())

		_, err := s.useCase.Update(s.T().Context(), "missing-id", usedPatch(), "太郎")
		s.ErrorIs(err, usecase.ErrCouponNotFound)
	})

	s.Run("成功: 期限はクライアントのスナップショットでなく再取得した状態で判定", func() {
		// リクエスト側が期限を知らなくても、保存されている期限で判定される
		current := builder.NewCouponBuilder().WithExpiryDate("2024-05-31").Build()

		s.mockStore.EXPECT().Find(gomock.Any(), current.ID).Return(current, nil)

		_, err := s.useCase.Update(s.T().Context(), current.ID, usedPatch(), "太郎")
		s.ErrorIs(err, usecase.ErrCouponExpired)
	})
}

func (s *CouponUseCaseTestSuite) TestPlainUpdate() {
	s.Run("status=used以外のパッチは前提条件なしで適用される", func() {
		current := builder.NewCouponBuilder().Build()
		title := "改名されたクーポン"
		patch := coupon.Patch{Title: &title}

		updated := current
		updated.Title = title

		s.mockStore.EXPECT().Apply(gomock.Any(), current.ID, patch).Return(updated, nil)

		got, err := s.useCase.Update(s.T().Context(), current.ID, patch, "太郎")
		s.Require().NoError(err)
		s.Equal(title, got.Title)
	})

	s.Run("ストアのエラーはそのまま伝播する", func() {
		title := "x"
		s.mockStore.EXPECT().Apply(gomock.Any(), "some-id", gomock.Any()).
			Return(coupon.Coupon{}, errs.New("boom"))

		_, err := s.useCase.Update(s.T().Context(), "some-id", coupon.Patch{Title: &title}, "太郎")
		s.Error(err)
		s.NotErrorIs(err, usecase.ErrCouponNotFound)
	})
}

func (s *CouponUseCaseTestSuite) TestGetReconcilesExpiry() {
	s.Run("期限切れのavailableクーポンはexpiredとして永続化される", func() {
		current := builder.NewCouponBuilder().WithExpiryDate("2024-01-01").Build()
		expired := current
		expired.Status = coupon.StatusExpired

		s.mockStore.EXPECT().Find(gomock.Any(), current.ID).Return(current, nil)
		s.mockStore.EXPECT().Apply(gomock.Any(), current.ID, gomock.Any()).
			DoAndReturn(func(_ any, _ string, patch coupon.Patch) (coupon.Coupon, error) {
				s.Require().NotNil(patch.Status)
				s.Equal(coupon.StatusExpired, *patch.Status)
				s.Nil(patch.UsedDate)
				return expired, nil
			})

		got, err := s.useCase.Get(s.T().Context(), current.ID)
		s.Require().NoError(err)
		s.Equal(coupon.StatusExpired, got.Status)
	})

	s.Run("使用済みクーポンは期限が過ぎていてもusedのまま", func() {
		current := builder.NewCouponBuilder().
			WithExpiryDate("2024-01-01").
			AsUsed("2023-12-01T10:00:00Z").
			Build()

		s.mockStore.EXPECT().Find(gomock.Any(), current.ID).Return(current, nil)

		got, err := s.useCase.Get(s.T().Context(), current.ID)
		s.Require().NoError(err)
		s.Equal(coupon.StatusUsed, got.Status)
	})

	s.Run("期限内のavailableクーポンはそのまま", func() {
		current := builder.NewCouponBuilder().WithExpiryDate("2099-12-31").Build()

		s.mockStore.EXPECT().Find(gomock.Any(), current.ID).Return(current, nil)

		got, err := s.useCase.Get(s.T().Context(), current.ID)
		s.Require().NoError(err)
		s.Equal(coupon.StatusAvailable, got.Status)
	})

	s.Run("同期の失敗は読み取りを失敗させず、古い状態を返す", func() {
		current := builder.NewCouponBuilder().WithExpiryDate("2024-01-01").Build()

		s.mockStore.EXPECT().Find(gomock.Any(), current.ID).Return(current, nil)
		s.mockStore.EXPECT().Apply(gomock.Any(), current.ID, gomock.Any()).
			Return(coupon.Coupon{}, errs.New("store down"))

		got, err := s.useCase.Get(s.T().Context(), current.ID)
		s.Require().NoError(err)
		s.Equal(coupon.StatusAvailable, got.Status)
	})
}

func (s *CouponUseCaseTestSuite) TestList() {
	s.Run("各クーポンが期限調整を通って返る", func() {
		fresh := builder.NewCouponBuilder().WithExpiryDate("2099-12-31").Build()
		lapsed := builder.NewCouponBuilder().WithExpiryDate("2024-01-01").Build()
		lapsedExpired := lapsed
		lapsedExpired.Status = coupon.StatusExpired

		s.mockStore.EXPECT().Search(gomock.Any(), "user-1").
			Return([]coupon.Coupon{fresh, lapsed}, nil)
		s.mockStore.EXPECT().Apply(gomock.Any(), lapsed.ID, gomock.Any()).
			Return(lapsedExpired, nil)

		got, err := s.useCase.List(s.T().Context(), "user-1")
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(coupon.StatusAvailable, got[0].Status)
		s.Equal(coupon.StatusExpired, got[1].Status)
	})

	s.Run("エラー: ストア未設定は専用エラーに写される", func() {
		s.mockStore.EXPECT().Search(gomock.Any(), "").Return(nil, notConfiguredErr())

		_, err := s.useCase.List(s.T().Context(), "")
		s.ErrorIs(err, usecase.ErrStoreNotConfigured)
	})
}

func (s *CouponUseCaseTestSuite) TestGetStoreNotConfigured() {
	s.mockStore.EXPECT().Find(gomock.Any(), "some-id").Return(coupon.Coupon{}, notConfiguredErr())

	_, err := s.useCase.Get(s.T().Context(), "some-id")
	s.ErrorIs(err, usecase.ErrStoreNotConfigured)
}
