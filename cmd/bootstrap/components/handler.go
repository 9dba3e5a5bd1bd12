package components

import (
	"coupon-wallet/internal/handler"
	"coupon-wallet/internal/handler/api"
	"coupon-wallet/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCouponHandler,
		middleware.NewSessionMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
