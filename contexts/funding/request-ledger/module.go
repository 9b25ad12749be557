package requestledger

import (
	"log/slog"

	httpadapter "clearfund/contexts/funding/request-ledger/adapters/http"
	"clearfund/contexts/funding/request-ledger/application"
	"clearfund/contexts/funding/request-ledger/ports"
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
