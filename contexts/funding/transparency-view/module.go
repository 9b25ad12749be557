package transparencyview

import (
	"log/slog"

	httpadapter "clearfund/contexts/funding/transparency-view/adapters/http"
	"clearfund/contexts/funding/transparency-view/application"
	"clearfund/contexts/funding/transparency-view/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
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
