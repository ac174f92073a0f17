package components

import (
	"hummane-api/internal/infra/docstore"
	"hummane-api/internal/infra/store"
	"hummane-api/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			NewDocumentStore,
			fx.As(new(docstore.Store)),
		),
		fx.Annotate(
			store.NewUserStore,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			store.NewCompanyStore,
			fx.As(new(usecase.CompanyRepository)),
		),
	),
)

func NewDocumentStore(pool *pgxpool.Pool) *docstore.PostgresStore {
	return docstore.NewPostgresStore(pool)
}
