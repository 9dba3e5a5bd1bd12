package bootstrap

import (
	"coupon-wallet/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	SessionModule,
	StoreModule,
	NotifierModule,
	components.UseCaseModule,
	components.HandlerModule,
)
