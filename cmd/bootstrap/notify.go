package bootstrap

import (
	"context"
	"time"

	"rental-booking/internal/infra/notify"
	"rental-booking/internal/infra/repository"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		notify.NewTransport,
		NewDeadLetterSink,
		NewDispatcher,
		fx.Annotate(
			NewNotifier,
			fx.As(new(commands.NotificationSender)),
		),
	),
)

func NewDeadLetterSink(cfg config.Config, repo *repository.NotificationRepository) (notify.DeadLetterSink, error) {
	switch cfg.Notification.DeadLetter {
	case "", "db":
		return notify.NewDBDeadLetters(repo), nil
	case "log":
		return notify.NewLogDeadLetters(), nil
	default:
		return nil, errs.Newf("unknown dead letter sink %q", cfg.Notification.DeadLetter)
	}
}

// NewDispatcher starts the delivery workers with the app and drains the
// queue on shutdown, bounded by the fx stop timeout.
func NewDispatcher(lc fx.Lifecycle, cfg config.Config, transport notify.Transport, deadLetters notify.DeadLetterSink) *notify.Dispatcher {
	d := notify.NewDispatcher(cfg.Notification, transport, deadLetters)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return d.Stop(ctx)
		},
	})
	return d
}

func NewNotifier(d *notify.Dispatcher, location *time.Location) *notify.Notifier {
	return notify.NewNotifier(d, location)
}
