package donationledger

import (
	"log/slog"

	httpadapter "clearfund/contexts/funding/donation-ledger/adapters/http"
	"clearfund/contexts/funding/donation-ledger/application"
	"clearfund/contexts/funding/donation-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	Receipts   ports.ReceiptGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repository,
		Clock:    deps.Clock,
		Receipts: deps.Receipts,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}
