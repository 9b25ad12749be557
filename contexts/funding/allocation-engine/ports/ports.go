package ports

import (
	"context"
	"time"

	"clearfund/contexts/funding/domain/entities"

	"github.com/shopspring/decimal"
)

// AllocationRecord is an allocation joined with the display fields of the
// donation and request it links.
type AllocationRecord struct {
	Allocation      entities.Allocation
	DonationPurpose string
	DonorName       string
	DonorSourceTag  string
	EventName       string
	RequesterName   string
	AllocatorName   string
}

type CreateAllocationInput struct {
	DonationID      int64
	RequestID       int64
	AmountAllocated decimal.Decimal
	BeneficiaryType entities.Role
	Reason          string
	Notes           string
}

type Stats struct {
	TotalAllocations         int
	TotalAllocated           decimal.Decimal
	AverageAllocated         decimal.Decimal
	UniqueBeneficiaryTypes   int
	DonationsWithAllocations int
	ActiveAllocations        int
	DisbursedAllocations     int
	CompletedAllocations     int
	CancelledAllocations     int
}

type Repository interface {
	// CreateAllocation checks the donation's remaining balance and inserts
	// the allocation in a single transaction. Concurrent creates against
	// the same donation serialize on the donation row; the sum of
	// non-cancelled allocations never exceeds the donation amount. When
	// funds are short the store reports an
	// *errors.InsufficientFundsError wrapping ErrInsufficientFunds.
	CreateAllocation(ctx context.Context, allocation entities.Allocation) (entities.Allocation, error)

	GetAllocation(ctx context.Context, allocationID int64) (AllocationRecord, error)
	ListAllocations(ctx context.Context) ([]AllocationRecord, error)
	ListAllocationsByDonation(ctx context.Context, donationID int64) ([]AllocationRecord, error)
	ListAllocationsByRequest(ctx context.Context, requestID int64) ([]AllocationRecord, error)
	ListAllocationsByBeneficiaryType(ctx context.Context, beneficiaryType entities.Role) ([]AllocationRecord, error)

	// ListAllocationsBySourceTag is the donor-facing audit view. The query
	// itself filters on the source tag of the donation's donor, so a row
	// belonging to another donor can never leak through a broken caller
	// check.
	ListAllocationsBySourceTag(ctx context.Context, sourceTag string) ([]AllocationRecord, error)

	// SetAllocationStatus applies a status transition with a guard on the
	// current status. A row whose status changed since the caller read it
	// reports ErrInvalidTransition.
	SetAllocationStatus(ctx context.Context, allocationID int64, from, to entities.AllocationStatus, updatedAt time.Time) (entities.Allocation, error)

	AllocationStats(ctx context.Context) (Stats, error)
}

type Clock interface {
	Now() time.Time
}
