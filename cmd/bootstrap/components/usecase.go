package components

import (
	"time"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/pkg/password"
	"rental-booking/internal/usecase"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewDailyRateCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	reservation.NewFactory,
	fx.Annotate(
		password.NewDefaultHasher,
		fx.As(new(commands.PasswordHasher)),
	),
	func(s *jwt.Service) commands.TokenIssuer { return s },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		NewReservationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	notifier commands.NotificationSender,
	clk clock.Clock,
	location *time.Location,
) commands.ReservationCommands {
	return commands.NewReservationUseCase(uow, factory, notifier, clk, location)
}
