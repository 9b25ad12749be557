package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"clearfund/contexts/funding/allocation-engine/ports"
	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Create commits an assignment of donation funds to a budget request.
// Admin-only. The funds check and the insert happen inside a single store
// transaction, so concurrent creates against the same donation can never
// overdraw it; the store reports *errors.InsufficientFundsError with the
// remaining and requested figures when the amount does not fit.
func (s Service) Create(ctx context.Context, caller entities.Caller, input ports.CreateAllocationInput) (entities.Allocation, error) {
	if !caller.IsAdmin() {
		return entities.Allocation{}, domainerrors.ErrAccessDenied
	}
	if !input.AmountAllocated.IsPositive() {
		return entities.Allocation{}, domainerrors.ErrInvalidAmount
	}
	if input.BeneficiaryType != "" && !input.BeneficiaryType.Valid() {
		return entities.Allocation{}, domainerrors.ErrInvalidInput
	}

	now := s.now()
	allocation, err := s.Repo.CreateAllocation(ctx, entities.Allocation{
		DonationID:      input.DonationID,
		RequestID:       input.RequestID,
		AmountAllocated: input.AmountAllocated,
		BeneficiaryType: input.BeneficiaryType,
		Reason:          strings.TrimSpace(input.Reason),
		Notes:           strings.TrimSpace(input.Notes),
		Status:          entities.AllocationStatusAllocated,
		AllocatedBy:     caller.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return entities.Allocation{}, err
	}

	s.logger().Info("allocation created",
		"event", "allocation_created",
		"module", "funding/allocation-engine",
		"layer", "application",
		"allocation_id", allocation.ID,
		"donation_id", allocation.DonationID,
		"request_id", allocation.RequestID,
		"amount_allocated", allocation.AmountAllocated.String(),
		"allocated_by", allocation.AllocatedBy,
	)
	return allocation, nil
}

func (s Service) Get(ctx context.Context, caller entities.Caller, allocationID int64) (ports.AllocationRecord, error) {
	if !caller.IsAdmin() {
		return ports.AllocationRecord{}, domainerrors.ErrAccessDenied
	}
	return s.Repo.GetAllocation(ctx, allocationID)
}

func (s Service) ListAll(ctx context.Context, caller entities.Caller) ([]ports.AllocationRecord, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.ListAllocations(ctx)
}

func (s Service) ListByDonation(ctx context.Context, caller entities.Caller, donationID int64) ([]ports.AllocationRecord, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.ListAllocationsByDonation(ctx, donationID)
}

func (s Service) ListByRequest(ctx context.Context, caller entities.Caller, requestID int64) ([]ports.AllocationRecord, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.ListAllocationsByRequest(ctx, requestID)
}

func (s Service) ListByBeneficiaryType(ctx context.Context, caller entities.Caller, beneficiaryType entities.Role) ([]ports.AllocationRecord, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrAccessDenied
	}
	if !beneficiaryType.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	return s.Repo.ListAllocationsByBeneficiaryType(ctx, beneficiaryType)
}

// ListBySourceTag is the donor-facing audit view. Admins may query any tag;
// a donor may query only their own.
func (s Service) ListBySourceTag(ctx context.Context, caller entities.Caller, sourceTag string) ([]ports.AllocationRecord, error) {
	if !caller.IsAdmin() && (caller.SourceTag == "" || caller.SourceTag != sourceTag) {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.ListAllocationsBySourceTag(ctx, sourceTag)
}

// SetStatus advances an allocation through its lifecycle. The allowed moves
// are allocated to disbursed, disbursed to completed, and allocated to
// cancelled. Cancelling frees the amount back into the donation's remaining
// balance because cancelled rows drop out of the balance sum.
func (s Service) SetStatus(ctx context.Context, caller entities.Caller, allocationID int64, to entities.AllocationStatus) (entities.Allocation, error) {
	if !caller.IsAdmin() {
		return entities.Allocation{}, domainerrors.ErrAccessDenied
	}
	if !to.Valid() {
		return entities.Allocation{}, domainerrors.ErrInvalidInput
	}

	record, err := s.Repo.GetAllocation(ctx, allocationID)
	if err != nil {
		return entities.Allocation{}, err
	}
	from := record.Allocation.Status
	if !from.CanTransitionTo(to) {
		return entities.Allocation{}, domainerrors.ErrInvalidTransition
	}

	allocation, err := s.Repo.SetAllocationStatus(ctx, allocationID, from, to, s.now())
	if err != nil {
		return entities.Allocation{}, err
	}

	s.logger().Info("allocation status changed",
		"event", "allocation_status_changed",
		"module", "funding/allocation-engine",
		"layer", "application",
		"allocation_id", allocation.ID,
		"from", string(from),
		"to", string(allocation.Status),
		"changed_by", caller.UserID,
	)
	return allocation, nil
}

func (s Service) Stats(ctx context.Context, caller entities.Caller) (ports.Stats, error) {
	if !caller.IsAdmin() {
		return ports.Stats{}, domainerrors.ErrAccessDenied
	}
	return s.Repo.AllocationStats(ctx)
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
