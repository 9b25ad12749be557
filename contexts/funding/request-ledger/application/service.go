package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
	"clearfund/contexts/funding/request-ledger/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Submit files a new budget request for the calling student or department.
// Requests always start pending.
func (s Service) Submit(ctx context.Context, caller entities.Caller, input ports.SubmitRequestInput) (entities.BudgetRequest, error) {
	if !caller.Role.CanRequestFunds() {
		return entities.BudgetRequest{}, domainerrors.ErrAccessDenied
	}
	if err := validateInput(input); err != nil {
		return entities.BudgetRequest{}, err
	}

	now := s.now()
	request, err := s.Repo.CreateRequest(ctx, entities.BudgetRequest{
		RequesterID:       caller.UserID,
		RequesterType:     caller.Role,
		EventName:         strings.TrimSpace(input.EventName),
		EventDescription:  strings.TrimSpace(input.EventDescription),
		AmountRequested:   input.AmountRequested,
		EventDate:         input.EventDate,
		Venue:             strings.TrimSpace(input.Venue),
		ExpectedAttendees: input.ExpectedAttendees,
		Category:          strings.TrimSpace(input.Category),
		Justification:     strings.TrimSpace(input.Justification),
		Status:            entities.RequestStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return entities.BudgetRequest{}, err
	}

	s.logger().Info("budget request submitted",
		"event", "budget_request_submitted",
		"module", "funding/request-ledger",
		"layer", "application",
		"request_id", request.ID,
		"requester_id", request.RequesterID,
		"amount_requested", request.AmountRequested.String(),
	)
	return request, nil
}

// Get returns a single request. Admins see every request; a requester sees
// only their own.
func (s Service) Get(ctx context.Context, caller entities.Caller, requestID int64) (ports.RequestRecord, error) {
	record, err := s.Repo.GetRequest(ctx, requestID)
	if err != nil {
		return ports.RequestRecord{}, err
	}
	if !caller.IsAdmin() && record.Request.RequesterID != caller.UserID {
		return ports.RequestRecord{}, domainerrors.ErrAccessDenied
	}
	return record, nil
}

func (s Service) ListAll(ctx context.Context, caller entities.Caller) ([]ports.RequestRecord, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.ListRequests(ctx)
}

func (s Service) ListByStatus(ctx context.Context, caller entities.Caller, status entities.RequestStatus) ([]ports.RequestRecord, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrAccessDenied
	}
	if !status.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	return s.Repo.ListRequestsByStatus(ctx, status)
}

func (s Service) ListMine(ctx context.Context, caller entities.Caller) ([]ports.RequestRecord, error) {
	if !caller.Role.CanRequestFunds() {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.ListRequestsByRequester(ctx, caller.UserID)
}

// Update replaces the editable fields of the caller's own request. Only
// pending requests can change; a decided request is locked for everyone,
// including its original requester.
func (s Service) Update(ctx context.Context, caller entities.Caller, requestID int64, input ports.SubmitRequestInput) (entities.BudgetRequest, error) {
	if err := validateInput(input); err != nil {
		return entities.BudgetRequest{}, err
	}
	record, err := s.Repo.GetRequest(ctx, requestID)
	if err != nil {
		return entities.BudgetRequest{}, err
	}
	if record.Request.RequesterID != caller.UserID {
		return entities.BudgetRequest{}, domainerrors.ErrAccessDenied
	}
	if record.Request.Status.Decided() {
		return entities.BudgetRequest{}, domainerrors.ErrRequestLocked
	}

	updated := record.Request
	updated.EventName = strings.TrimSpace(input.EventName)
	updated.EventDescription = strings.TrimSpace(input.EventDescription)
	updated.AmountRequested = input.AmountRequested
	updated.EventDate = input.EventDate
	updated.Venue = strings.TrimSpace(input.Venue)
	updated.ExpectedAttendees = input.ExpectedAttendees
	updated.Category = strings.TrimSpace(input.Category)
	updated.Justification = strings.TrimSpace(input.Justification)
	updated.UpdatedAt = s.now()

	return s.Repo.UpdateRequest(ctx, updated)
}

// Delete removes the caller's own pending request.
func (s Service) Delete(ctx context.Context, caller entities.Caller, requestID int64) error {
	record, err := s.Repo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if record.Request.RequesterID != caller.UserID {
		return domainerrors.ErrAccessDenied
	}
	if record.Request.Status.Decided() {
		return domainerrors.ErrRequestLocked
	}
	return s.Repo.DeleteRequest(ctx, requestID)
}

// Decide approves or rejects a pending request. Admin-only and one-shot:
// once decided the request cannot be re-decided.
func (s Service) Decide(ctx context.Context, caller entities.Caller, requestID int64, status entities.RequestStatus, adminNotes string) (entities.BudgetRequest, error) {
	if !caller.IsAdmin() {
		return entities.BudgetRequest{}, domainerrors.ErrAccessDenied
	}
	if !status.Decided() {
		return entities.BudgetRequest{}, domainerrors.ErrInvalidInput
	}

	request, err := s.Repo.DecideRequest(ctx, requestID, status, strings.TrimSpace(adminNotes), s.now())
	if err != nil {
		return entities.BudgetRequest{}, err
	}

	s.logger().Info("budget request decided",
		"event", "budget_request_decided",
		"module", "funding/request-ledger",
		"layer", "application",
		"request_id", request.ID,
		"status", string(request.Status),
		"decided_by", caller.UserID,
	)
	return request, nil
}

func (s Service) Stats(ctx context.Context, caller entities.Caller) (ports.Stats, error) {
	if !caller.IsAdmin() {
		return ports.Stats{}, domainerrors.ErrAccessDenied
	}
	return s.Repo.RequestStats(ctx)
}

func validateInput(input ports.SubmitRequestInput) error {
	if !input.AmountRequested.IsPositive() {
		return domainerrors.ErrInvalidAmount
	}
	if strings.TrimSpace(input.EventName) == "" ||
		strings.TrimSpace(input.EventDescription) == "" ||
		strings.TrimSpace(input.Justification) == "" {
		return domainerrors.ErrInvalidInput
	}
	if input.ExpectedAttendees < 0 {
		return domainerrors.ErrInvalidInput
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
