package components

import (
	"go.uber.org/fx"

	"minute-market/internal/pkg/clock"
	"minute-market/internal/usecase"
	"minute-market/internal/usecase/commands"
	"minute-market/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	commands.NewListingEngine,
	commands.NewFulfiller,
	commands.NewSaleNotifier,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewMarketUseCase,
		commands.NewCheckoutUseCase,
		commands.NewPaymentReconciler,
		commands.NewAdminUseCase,
		commands.NewAccountUseCase,
		func(account commands.AccountCommands) usecase.PrincipalResolver {
			return account
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewMarketQueries,
		queries.NewAccountQueries,
		queries.NewAdminQueries,
	),
)
