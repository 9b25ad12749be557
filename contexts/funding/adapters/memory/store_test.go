package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
)

func seedDonation(t *testing.T, store *Store, donorID int64, amount int64) entities.Donation {
	t.Helper()
	donation, err := store.CreateDonation(context.Background(), entities.Donation{
		DonorID:      donorID,
		Amount:       decimal.NewFromInt(amount),
		DonationType: entities.DonationTypeGeneral,
		Status:       entities.DonationStatusCompleted,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	return donation
}

func seedRequest(t *testing.T, store *Store, requesterID int64, amount int64) entities.BudgetRequest {
	t.Helper()
	request, err := store.CreateRequest(context.Background(), entities.BudgetRequest{
		RequesterID:     requesterID,
		RequesterType:   entities.RoleStudent,
		EventName:       "tech fest",
		AmountRequested: decimal.NewFromInt(amount),
		Status:          entities.RequestStatusPending,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}
	return request
}

func allocate(t *testing.T, store *Store, donationID, requestID, amount int64) entities.Allocation {
	t.Helper()
	allocation, err := store.CreateAllocation(context.Background(), entities.Allocation{
		DonationID:      donationID,
		RequestID:       requestID,
		AmountAllocated: decimal.NewFromInt(amount),
		Status:          entities.AllocationStatusAllocated,
		AllocatedBy:     1,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("allocate %d: %v", amount, err)
	}
	return allocation
}

func TestBalanceLifecycle(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	donation := seedDonation(t, store, 10, 100000)
	request := seedRequest(t, store, 20, 60000)

	balance, err := store.GetDonationBalance(ctx, donation.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.Remaining.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("fresh donation remaining = %s, want 100000", balance.Remaining)
	}

	first := allocate(t, store, donation.ID, request.ID, 60000)

	balance, _ = store.GetDonationBalance(ctx, donation.ID)
	if !balance.Remaining.Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("remaining after 60000 allocation = %s, want 40000", balance.Remaining)
	}

	_, err = store.CreateAllocation(ctx, entities.Allocation{
		DonationID:      donation.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(50000),
		Status:          entities.AllocationStatusAllocated,
	})
	if !errors.Is(err, domainerrors.ErrInsufficientFunds) {
		t.Fatalf("overdraw attempt err = %v, want ErrInsufficientFunds", err)
	}
	var insufficient *domainerrors.InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("overdraw error does not carry figures: %v", err)
	}
	if !insufficient.Remaining.Equal(decimal.NewFromInt(40000)) ||
		!insufficient.Requested.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("figures = remaining %s requested %s, want 40000/50000",
			insufficient.Remaining, insufficient.Requested)
	}

	if _, err := store.SetAllocationStatus(ctx, first.ID,
		entities.AllocationStatusAllocated, entities.AllocationStatusCancelled, time.Now().UTC()); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	balance, _ = store.GetDonationBalance(ctx, donation.ID)
	if !balance.Remaining.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("remaining after cancel = %s, want 100000", balance.Remaining)
	}
}

func TestConcurrentAllocationsNeverOverdraw(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	donation := seedDonation(t, store, 10, 1000)
	request := seedRequest(t, store, 20, 10000)

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.CreateAllocation(ctx, entities.Allocation{
				DonationID:      donation.ID,
				RequestID:       request.ID,
				AmountAllocated: decimal.NewFromInt(300),
				Status:          entities.AllocationStatusAllocated,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		if !errors.Is(err, domainerrors.ErrInsufficientFunds) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// 1000 / 300 fits exactly three times.
	if succeeded != 3 {
		t.Fatalf("succeeded = %d, want 3", succeeded)
	}

	balance, _ := store.GetDonationBalance(ctx, donation.ID)
	if balance.Remaining.IsNegative() {
		t.Fatalf("remaining went negative: %s", balance.Remaining)
	}
	if !balance.Allocated.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("allocated = %s, want 900", balance.Allocated)
	}
}

func TestAllocationStatusGuards(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	donation := seedDonation(t, store, 10, 500)
	request := seedRequest(t, store, 20, 500)
	allocation := allocate(t, store, donation.ID, request.ID, 200)

	// Guarded transition with a stale "from" status fails.
	_, err := store.SetAllocationStatus(ctx, allocation.ID,
		entities.AllocationStatusDisbursed, entities.AllocationStatusCompleted, time.Now().UTC())
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("stale transition err = %v, want ErrInvalidTransition", err)
	}

	if _, err := store.SetAllocationStatus(ctx, allocation.ID,
		entities.AllocationStatusAllocated, entities.AllocationStatusDisbursed, time.Now().UTC()); err != nil {
		t.Fatalf("disburse: %v", err)
	}
	if _, err := store.SetAllocationStatus(ctx, allocation.ID,
		entities.AllocationStatusDisbursed, entities.AllocationStatusCompleted, time.Now().UTC()); err != nil {
		t.Fatalf("complete: %v", err)
	}
}

func TestRequestLockAfterDecision(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	request := seedRequest(t, store, 20, 500)
	if _, err := store.DecideRequest(ctx, request.ID,
		entities.RequestStatusApproved, "ok", time.Now().UTC()); err != nil {
		t.Fatalf("decide: %v", err)
	}

	request.EventName = "renamed"
	if _, err := store.UpdateRequest(ctx, request); !errors.Is(err, domainerrors.ErrRequestLocked) {
		t.Fatalf("update after decision err = %v, want ErrRequestLocked", err)
	}
	if err := store.DeleteRequest(ctx, request.ID); !errors.Is(err, domainerrors.ErrRequestLocked) {
		t.Fatalf("delete after decision err = %v, want ErrRequestLocked", err)
	}
	if _, err := store.DecideRequest(ctx, request.ID,
		entities.RequestStatusRejected, "", time.Now().UTC()); !errors.Is(err, domainerrors.ErrRequestLocked) {
		t.Fatalf("second decision err = %v, want ErrRequestLocked", err)
	}
}

func TestSourceTagQueryIsolatesDonors(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	store.UpsertUserProfile(ctx, entities.UserProfile{UserID: 10, Name: "Asha", Role: entities.RoleDonor, SourceTag: "asha-foundation"})
	store.UpsertUserProfile(ctx, entities.UserProfile{UserID: 11, Name: "Bilal", Role: entities.RoleDonor, SourceTag: "bilal-trust"})

	ashaDonation := seedDonation(t, store, 10, 1000)
	bilalDonation := seedDonation(t, store, 11, 1000)
	request := seedRequest(t, store, 20, 2000)

	allocate(t, store, ashaDonation.ID, request.ID, 400)
	allocate(t, store, bilalDonation.ID, request.ID, 500)

	records, err := store.ListAllocationsBySourceTag(ctx, "asha-foundation")
	if err != nil {
		t.Fatalf("list by source tag: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d allocations for asha-foundation, want 1", len(records))
	}
	if records[0].Allocation.DonationID != ashaDonation.ID {
		t.Fatalf("leaked allocation from donation %d", records[0].Allocation.DonationID)
	}
}

func TestFundingTrailOuterJoin(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	store.UpsertUserProfile(ctx, entities.UserProfile{UserID: 10, Name: "Asha", Role: entities.RoleDonor, SourceTag: "asha-foundation"})
	donation := seedDonation(t, store, 10, 1000)
	linked := seedRequest(t, store, 20, 300)
	unlinked := seedRequest(t, store, 21, 900)
	allocate(t, store, donation.ID, linked.ID, 300)

	entries, err := store.FundingTrail(ctx)
	if err != nil {
		t.Fatalf("trail: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d trail entries, want 2", len(entries))
	}
	if entries[0].AllocationID == nil || entries[0].DonationID == nil || entries[0].RequestID == nil {
		t.Fatalf("linked entry missing a side: %+v", entries[0])
	}
	if entries[1].AllocationID != nil {
		t.Fatalf("unlinked request entry carries an allocation: %+v", entries[1])
	}
	if entries[1].RequestID == nil || *entries[1].RequestID != unlinked.ID {
		t.Fatalf("unlinked request %d missing from trail", unlinked.ID)
	}
}

func TestDonationStatsCountOnlyCompleted(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	seedDonation(t, store, 10, 500)
	for _, status := range []entities.DonationStatus{
		entities.DonationStatusPending,
		entities.DonationStatusReversed,
	} {
		if _, err := store.CreateDonation(ctx, entities.Donation{
			DonorID:      11,
			Amount:       decimal.NewFromInt(900),
			DonationType: entities.DonationTypeGeneral,
			Status:       status,
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			t.Fatalf("seed %s donation: %v", status, err)
		}
	}

	stats, err := store.DonationStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalDonations != 1 {
		t.Fatalf("total donations = %d, want 1 (completed only)", stats.TotalDonations)
	}
	if !stats.TotalAmount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("total amount = %s, want 500", stats.TotalAmount)
	}
	if stats.UniqueDonors != 1 {
		t.Fatalf("unique donors = %d, want 1", stats.UniqueDonors)
	}
}

func TestAllocationStatsCountBeneficiariesAndFundedDonations(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := seedDonation(t, store, 10, 1000)
	second := seedDonation(t, store, 11, 1000)
	request := seedRequest(t, store, 20, 2000)

	studentAllocation, err := store.CreateAllocation(ctx, entities.Allocation{
		DonationID:      first.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(300),
		BeneficiaryType: entities.RoleStudent,
		Status:          entities.AllocationStatusAllocated,
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if _, err := store.CreateAllocation(ctx, entities.Allocation{
		DonationID:      second.ID,
		RequestID:       request.ID,
		AmountAllocated: decimal.NewFromInt(400),
		BeneficiaryType: entities.RoleDepartment,
		Status:          entities.AllocationStatusAllocated,
	}); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	// A cancelled allocation contributes to no distinct count.
	if _, err := store.SetAllocationStatus(ctx, studentAllocation.ID,
		entities.AllocationStatusAllocated, entities.AllocationStatusCancelled, time.Now().UTC()); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	stats, err := store.AllocationStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.UniqueBeneficiaryTypes != 1 {
		t.Fatalf("unique beneficiary types = %d, want 1", stats.UniqueBeneficiaryTypes)
	}
	if stats.DonationsWithAllocations != 1 {
		t.Fatalf("donations with allocations = %d, want 1", stats.DonationsWithAllocations)
	}
}
