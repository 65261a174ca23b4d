package dashboardservice

import (
	"log/slog"

	httpadapter "shepherd/contexts/insights/dashboard-service/adapters/http"
	"shepherd/contexts/insights/dashboard-service/adapters/memory"
	"shepherd/contexts/insights/dashboard-service/application"
	"shepherd/contexts/insights/dashboard-service/domain/entities"
	"shepherd/contexts/insights/dashboard-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repo   ports.StatsRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(seed []entities.Registration, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repo:   store,
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
