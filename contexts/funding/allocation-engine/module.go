package allocationengine

import (
	"log/slog"

	httpadapter "clearfund/contexts/funding/allocation-engine/adapters/http"
	"clearfund/contexts/funding/allocation-engine/application"
	"clearfund/contexts/funding/allocation-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}
