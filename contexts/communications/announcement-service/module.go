package announcementservice

import (
	"log/slog"

	httpadapter "shepherd/contexts/communications/announcement-service/adapters/http"
	"shepherd/contexts/communications/announcement-service/adapters/memory"
	"shepherd/contexts/communications/announcement-service/application"
	"shepherd/contexts/communications/announcement-service/domain/entities"
	"shepherd/contexts/communications/announcement-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(seed []entities.Announcement, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repo:   store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
