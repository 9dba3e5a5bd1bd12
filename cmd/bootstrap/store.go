package bootstrap

import (
	"log/slog"

	"coupon-wallet/internal/infra/pagestore"
	"coupon-wallet/internal/pkg/config"
	"coupon-wallet/internal/usecase"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStoreClient,
		fx.Annotate(
			NewCouponStore,
			fx.As(new(usecase.CouponStore)),
		),
		fx.Annotate(
			NewUserStore,
			fx.As(new(usecase.UserStore)),
		),
	),
)

func NewStoreClient(cfg config.Config, logger *slog.Logger) *pagestore.Client {
	return pagestore.NewClient(cfg.Store, logger)
}

func NewCouponStore(client *pagestore.Client, cfg config.Config) *pagestore.CouponStore {
	return pagestore.NewCouponStore(client, cfg.Store)
}

func NewUserStore(client *pagestore.Client, cfg config.Config) *pagestore.UserStore {
	return pagestore.NewUserStore(client, cfg.Store)
}
