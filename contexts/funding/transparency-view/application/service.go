package application

import (
	"context"
	"log/slog"

	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
	"clearfund/contexts/funding/transparency-view/ports"
)

// Service exposes the derived reporting projections. Every operation is
// read-only and admin-only; donors get their own audit view through the
// allocation engine's source-tag query.
type Service struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (s Service) Trail(ctx context.Context, caller entities.Caller) ([]ports.TrailEntry, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.FundingTrail(ctx)
}

func (s Service) DonationSummaries(ctx context.Context, caller entities.Caller) ([]ports.DonationSummary, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.DonationSummaries(ctx)
}

func (s Service) RequestSummaries(ctx context.Context, caller entities.Caller) ([]ports.RequestSummary, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.RequestSummaries(ctx)
}

func (s Service) Overview(ctx context.Context, caller entities.Caller) (ports.Overview, error) {
	if !caller.IsAdmin() {
		return ports.Overview{}, domainerrors.ErrAccessDenied
	}
	return s.Repo.Overview(ctx)
}
