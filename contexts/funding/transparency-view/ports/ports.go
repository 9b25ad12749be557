package ports

import (
	"context"
	"time"

	"clearfund/contexts/funding/domain/entities"

	"github.com/shopspring/decimal"
)

// TrailEntry is one row of the donor to donation to allocation to request
// chain. Donations and requests with no allocation still appear; the
// allocation-side pointers are nil for those rows.
type TrailEntry struct {
	AllocationID     *int64
	AmountAllocated  *decimal.Decimal
	AllocationStatus entities.AllocationStatus
	AllocatedAt      *time.Time

	DonationID      *int64
	DonationAmount  *decimal.Decimal
	DonationPurpose string
	DonorName       string
	DonorSourceTag  string
	DonatedAt       *time.Time

	RequestID       *int64
	EventName       string
	RequesterName   string
	RequesterType   entities.Role
	AmountRequested *decimal.Decimal
	RequestedAt     *time.Time
}

// DonationSummary is a donation with its allocation aggregates. A donation
// with no allocations is a valid summary with a zero allocated figure.
type DonationSummary struct {
	DonationID      int64
	DonorName       string
	DonorSourceTag  string
	Purpose         string
	DonationType    entities.DonationType
	Amount          decimal.Decimal
	Allocated       decimal.Decimal
	Remaining       decimal.Decimal
	AllocationCount int
	CreatedAt       time.Time
}

// RequestSummary is a budget request with its allocation aggregate. The
// effective status becomes "allocated" once any funds are assigned,
// regardless of the request's own status field.
type RequestSummary struct {
	RequestID       int64
	RequesterName   string
	RequesterType   entities.Role
	EventName       string
	AmountRequested decimal.Decimal
	Allocated       decimal.Decimal
	Status          entities.RequestStatus
	EffectiveStatus string
	AllocationCount int
	CreatedAt       time.Time
}

type Overview struct {
	TotalDonations   int
	TotalDonated     decimal.Decimal
	TotalRequests    int
	TotalRequested   decimal.Decimal
	TotalAllocations int
	TotalAllocated   decimal.Decimal
	TotalRemaining   decimal.Decimal
	PendingRequests  int
	ApprovedRequests int
	UniqueDonors     int
}

type Repository interface {
	FundingTrail(ctx context.Context) ([]TrailEntry, error)
	DonationSummaries(ctx context.Context) ([]DonationSummary, error)
	RequestSummaries(ctx context.Context) ([]RequestSummary, error)
	Overview(ctx context.Context) (Overview, error)
}
