package components

import (
	"library-circulation/internal/infra/db"
	"library-circulation/internal/infra/identity"
	"library-circulation/internal/infra/notify"
	"library-circulation/internal/infra/readstore"
	"library-circulation/internal/infra/repository"
	"library-circulation/internal/infra/uow"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewBookReadStore,
			fx.As(new(queries.BookViewRepo)),
		),
		fx.Annotate(
			readstore.NewLoanReadStore,
			fx.As(new(queries.LoanViewRepo)),
		),
		fx.Annotate(
			readstore.NewHoldReadStore,
			fx.As(new(queries.HoldViewRepo)),
		),
		// Worker-side outbox and delivery adapters
		fx.Annotate(
			repository.NewOutboxRepository,
			fx.As(new(shared.OutboxRepository)),
		),
		fx.Annotate(
			notify.NewLogDispatcher,
			fx.As(new(shared.NotificationDispatcher)),
		),
		fx.Annotate(
			identity.NewPassthroughProvider,
			fx.As(new(shared.IdentityProvider)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
