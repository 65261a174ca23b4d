package leadershipengine

import (
	"log/slog"

	httpadapter "shepherd/contexts/congregation/leadership-engine/adapters/http"
	"shepherd/contexts/congregation/leadership-engine/adapters/memory"
	"shepherd/contexts/congregation/leadership-engine/application/commands"
	"shepherd/contexts/congregation/leadership-engine/application/queries"
	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	"shepherd/contexts/congregation/leadership-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Roles   ports.RoleRepository
	Members ports.MemberDirectory
	Ledger  ports.AssignmentLedger
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	roleAdmin := commands.RoleAdminUseCase{
		Roles:  deps.Roles,
		Ledger: deps.Ledger,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	assignments := commands.AssignmentUseCase{
		Roles:   deps.Roles,
		Members: deps.Members,
		Ledger:  deps.Ledger,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	leadershipQueries := queries.LeadershipQueryUseCase{
		Roles:   deps.Roles,
		Members: deps.Members,
		Ledger:  deps.Ledger,
		Clock:   deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			RoleAdmin:   roleAdmin,
			Assignments: assignments,
			Queries:     leadershipQueries,
			Logger:      deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Role, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Roles:   store,
		Members: store,
		Ledger:  store,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
