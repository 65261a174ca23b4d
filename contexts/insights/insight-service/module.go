package insightservice

import (
	"log/slog"

	httpadapter "shepherd/contexts/insights/insight-service/adapters/http"
	"shepherd/contexts/insights/insight-service/adapters/memory"
	"shepherd/contexts/insights/insight-service/application"
	"shepherd/contexts/insights/insight-service/domain/entities"
	"shepherd/contexts/insights/insight-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Data      ports.DataSource
	Generator ports.TextGenerator
	Clock     ports.Clock
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Data:      deps.Data,
		Generator: deps.Generator,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(seed []entities.MemberSnapshot, generator ports.TextGenerator, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	if generator == nil {
		generator = &memory.StaticGenerator{}
	}
	module := NewModule(Dependencies{
		Data:      store,
		Generator: generator,
		Clock:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
