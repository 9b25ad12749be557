package identityservice

import (
	"log/slog"
	"time"

	httpadapter "clearfund/contexts/identity-access/identity-service/adapters/http"
	"clearfund/contexts/identity-access/identity-service/application"
	"clearfund/contexts/identity-access/identity-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	Repository  ports.Repository
	ProfileSink ports.ProfileSink
	Clock       ports.Clock
	JWTSecret   string
	TokenTTL    time.Duration
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repository,
		Tokens:   application.NewTokenManager(deps.JWTSecret, deps.TokenTTL),
		Profiles: deps.ProfileSink,
		Clock:    deps.Clock,
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
