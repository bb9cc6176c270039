package components

import (
	"library-circulation/internal/handler"
	"library-circulation/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookHandler,
		api.NewLoanHandler,
		api.NewHoldHandler,
	),
	fx.Invoke(handler.NewRouter),
)
