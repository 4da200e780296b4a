package bootstrap

import (
	"context"
	"log/slog"

	"rental-booking/internal/infra/codestore"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var CodeStoreModule = fx.Module("codestore",
	fx.Provide(
		NewCodeStore,
	),
)

// NewCodeStore selects the pending-verification store. The memory store
// forgets every pending flow on shutdown; Redis keeps them across restarts
// and instances.
func NewCodeStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (commands.CodeStore, error) {
	vc := cfg.Verification
	switch vc.Store {
	case "", "memory":
		store := codestore.NewMemoryStore(clk, vc.CodeTTL, vc.Shards)
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				store.Clear()
				return nil
			},
		})
		return store, nil
	case "redis":
		client := codestore.NewRedisClient(cfg.Redis)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := client.Ping(ctx).Err(); err != nil {
					return errs.Wrapf(err, "ping redis at %s", cfg.Redis.Addr)
				}
				slog.Info("verification codes stored in redis", "addr", cfg.Redis.Addr)
				return nil
			},
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})
		return codestore.NewRedisStore(client, vc.RedisPrefix, vc.CodeTTL, clk), nil
	default:
		return nil, errs.Newf("unknown verification store %q", vc.Store)
	}
}
