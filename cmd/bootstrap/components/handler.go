package components

import (
	"context"

	"rental-booking/internal/handler"
	"rental-booking/internal/handler/api"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewVehicleHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
		func(auth *api.AuthHandler, res *api.ReservationHandler, veh *api.VehicleHandler) handler.Handlers {
			return handler.Handlers{Auth: auth, Reservation: res, Vehicle: veh}
		},
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimiter(lc fx.Lifecycle, cfg config.Config) *middleware.RateLimiter {
	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			limiter.Stop()
			return nil
		},
	})
	return limiter
}
