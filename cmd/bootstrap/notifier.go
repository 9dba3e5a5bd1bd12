package bootstrap

import (
	"context"
	"log/slog"

	"coupon-wallet/internal/infra/webhook"
	"coupon-wallet/internal/pkg/config"
	"coupon-wallet/internal/usecase"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewNotifier,
		func(n *webhook.Notifier) usecase.Notifier { return n },
	),
)

func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *webhook.Notifier {
	notifier := webhook.New(cfg.Webhook, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			notifier.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return notifier.Stop(ctx)
		},
	})

	return notifier
}
