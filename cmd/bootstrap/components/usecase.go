package components

import (
	"coupon-wallet/internal/pkg/clock"
	"coupon-wallet/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewAuthUseCase,
		usecase.NewCouponUseCase,
	),
)
