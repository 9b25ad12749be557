package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"clearfund/contexts/funding/adapters/memory"
	"clearfund/contexts/funding/allocation-engine/ports"
	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
)

var (
	admin = entities.Caller{UserID: 99, Role: entities.RoleAdmin}
	donor = entities.Caller{UserID: 1, Role: entities.RoleDonor, SourceTag: "asha-foundation"}
)

func newTestService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return Service{Repo: store, Clock: store}, store
}

// seedLedger books a donation and a pending request straight into the store.
func seedLedger(t *testing.T, store *memory.Store, amount int64) (entities.Donation, entities.BudgetRequest) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	donation, err := store.CreateDonation(ctx, entities.Donation{
		DonorID:      donor.UserID,
		Amount:       decimal.NewFromInt(amount),
		Purpose:      "scholarship fund",
		DonationType: entities.DonationTypeGeneral,
		Status:       entities.DonationStatusCompleted,
		CreatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed donation: %v", err)
	}

	request, err := store.CreateRequest(ctx, entities.BudgetRequest{
		RequesterID:      5,
		RequesterType:    entities.RoleStudent,
		EventName:        "Science Fair",
		EventDescription: "Annual fair",
		AmountRequested:  decimal.NewFromInt(amount),
		Justification:    "Venue",
		Status:           entities.RequestStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}
	return donation, request
}

func TestCreateIsAdminOnly(t *testing.T) {
	service, store := newTestService(t)
	donation, request := seedLedger(t, store, 1000)

	_, err := service.Create(context.Background(), donor, ports.CreateAllocationInput{
		DonationID:      donation.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(100),
	})
	if !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestCreateValidatesAmountAndBeneficiary(t *testing.T) {
	service, store := newTestService(t)
	donation, request := seedLedger(t, store, 1000)
	ctx := context.Background()

	_, err := service.Create(ctx, admin, ports.CreateAllocationInput{
		DonationID:      donation.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.Zero,
	})
	if !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	_, err = service.Create(ctx, admin, ports.CreateAllocationInput{
		DonationID:      donation.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(100),
		BeneficiaryType: "sponsor",
	})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown beneficiary type, got %v", err)
	}
}

func TestCreateReportsInsufficientFunds(t *testing.T) {
	service, store := newTestService(t)
	donation, request := seedLedger(t, store, 1000)
	ctx := context.Background()

	if _, err := service.Create(ctx, admin, ports.CreateAllocationInput{
		DonationID:      donation.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(600),
	}); err != nil {
		t.Fatalf("first allocation returned error: %v", err)
	}

	_, err := service.Create(ctx, admin, ports.CreateAllocationInput{
		DonationID:      donation.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(500),
	})
	if !errors.Is(err, domainerrors.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	var insufficient *domainerrors.InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientFundsError, got %T", err)
	}
	if !insufficient.Remaining.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected remaining 400, got %s", insufficient.Remaining)
	}
	if !insufficient.Requested.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected requested 500, got %s", insufficient.Requested)
	}
}

func TestCreateRequiresExistingLedgerRows(t *testing.T) {
	service, store := newTestService(t)
	donation, request := seedLedger(t, store, 1000)
	ctx := context.Background()

	_, err := service.Create(ctx, admin, ports.CreateAllocationInput{
		DonationID:      donation.ID + 100,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(100),
	})
	if !errors.Is(err, domainerrors.ErrDonationNotFound) {
		t.Fatalf("expected ErrDonationNotFound, got %v", err)
	}

	_, err = service.Create(ctx, admin, ports.CreateAllocationInput{
		DonationID:      donation.ID,
		RequestID:       request.ID + 100,
		AmountAllocated: decimal.NewFromInt(100),
	})
	if !errors.Is(err, domainerrors.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestSetStatusEnforcesLifecycle(t *testing.T) {
	service, store := newTestService(t)
	donation, request := seedLedger(t, store, 1000)
	ctx := context.Background()

	allocation, err := service.Create(ctx, admin, ports.CreateAllocationInput{
		DonationID:      donation.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(600),
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	if _, err := service.SetStatus(ctx, donor, allocation.ID, entities.AllocationStatusDisbursed); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for donor, got %v", err)
	}
	if _, err := service.SetStatus(ctx, admin, allocation.ID, "archived"); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	if _, err := service.SetStatus(ctx, admin, allocation.ID, entities.AllocationStatusCompleted); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for allocated to completed, got %v", err)
	}

	disbursed, err := service.SetStatus(ctx, admin, allocation.ID, entities.AllocationStatusDisbursed)
	if err != nil {
		t.Fatalf("disburse returned error: %v", err)
	}
	if disbursed.Status != entities.AllocationStatusDisbursed {
		t.Fatalf("expected disbursed, got %q", disbursed.Status)
	}

	if _, err := service.SetStatus(ctx, admin, allocation.ID, entities.AllocationStatusCancelled); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for disbursed to cancelled, got %v", err)
	}
	if _, err := service.SetStatus(ctx, admin, allocation.ID, entities.AllocationStatusCompleted); err != nil {
		t.Fatalf("complete returned error: %v", err)
	}
}

func TestListBySourceTagScope(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	if _, err := service.ListBySourceTag(ctx, donor, "asha-foundation"); err != nil {
		t.Fatalf("own tag returned error: %v", err)
	}
	if _, err := service.ListBySourceTag(ctx, donor, "other-trust"); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for foreign tag, got %v", err)
	}

	untagged := entities.Caller{UserID: 2, Role: entities.RoleDonor}
	if _, err := service.ListBySourceTag(ctx, untagged, ""); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for empty caller tag, got %v", err)
	}

	if _, err := service.ListBySourceTag(ctx, admin, "any-tag"); err != nil {
		t.Fatalf("admin tag query returned error: %v", err)
	}
}

func TestStatsExcludeCancelledFromTotals(t *testing.T) {
	service, store := newTestService(t)
	donation, request := seedLedger(t, store, 1000)
	ctx := context.Background()

	kept, err := service.Create(ctx, admin, ports.CreateAllocationInput{
		DonationID:      donation.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	cancelled, err := service.Create(ctx, admin, ports.CreateAllocationInput{
		DonationID:      donation.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if _, err := service.SetStatus(ctx, admin, cancelled.ID, entities.AllocationStatusCancelled); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}

	stats, err := service.Stats(ctx, admin)
	if err != nil {
		t.Fatalf("stats returned error: %v", err)
	}
	if stats.TotalAllocations != 1 {
		t.Fatalf("expected 1 live allocation, got %d", stats.TotalAllocations)
	}
	if !stats.TotalAllocated.Equal(kept.AmountAllocated) {
		t.Fatalf("expected total %s, got %s", kept.AmountAllocated, stats.TotalAllocated)
	}
	if stats.CancelledAllocations != 1 {
		t.Fatalf("expected 1 cancelled allocation, got %d", stats.CancelledAllocations)
	}
	if stats.UniqueBeneficiaryTypes != 1 {
		t.Fatalf("expected 1 beneficiary type, got %d", stats.UniqueBeneficiaryTypes)
	}
	if stats.DonationsWithAllocations != 1 {
		t.Fatalf("expected 1 funded donation, got %d", stats.DonationsWithAllocations)
	}
}
