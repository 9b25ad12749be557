package http

import "github.com/shopspring/decimal"

// Remaining and Requested are pointers so they only appear in the payload
// for insufficient-funds errors.
type ErrorResponse struct {
	Code      string           `json:"code"`
	Message   string           `json:"message"`
	Remaining *decimal.Decimal `json:"remaining,omitempty"`
	Requested *decimal.Decimal `json:"requested,omitempty"`
}

type CreateAllocationRequest struct {
	DonationID      int64           `json:"donation_id"`
	RequestID       int64           `json:"request_id"`
	AmountAllocated decimal.Decimal `json:"amount_allocated"`
	BeneficiaryType string          `json:"beneficiary_type,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type AllocationDTO struct {
	ID              int64           `json:"id"`
	DonationID      int64           `json:"donation_id"`
	RequestID       int64           `json:"request_id"`
	AmountAllocated decimal.Decimal `json:"amount_allocated"`
	BeneficiaryType string          `json:"beneficiary_type,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	AllocatedBy     int64           `json:"allocated_by"`
	DonationPurpose string          `json:"donation_purpose,omitempty"`
	DonorName       string          `json:"donor_name,omitempty"`
	DonorSourceTag  string          `json:"donor_source_tag,omitempty"`
	EventName       string          `json:"event_name,omitempty"`
	RequesterName   string          `json:"requester_name,omitempty"`
	AllocatorName   string          `json:"allocator_name,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

type AllocationResponse struct {
	Status string        `json:"status"`
	Data   AllocationDTO `json:"data"`
}

type AllocationListResponse struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Data   []AllocationDTO `json:"data"`
}

type StatsResponse struct {
	Status string `json:"status"`
	Data   struct {
		TotalAllocations         int             `json:"total_allocations"`
		TotalAllocated           decimal.Decimal `json:"total_amount_allocated"`
		AverageAllocated         decimal.Decimal `json:"average_amount_allocated"`
		UniqueBeneficiaryTypes   int             `json:"unique_beneficiary_types"`
		DonationsWithAllocations int             `json:"donations_with_allocations"`
		ActiveAllocations        int             `json:"active_allocations"`
		DisbursedAllocations     int             `json:"disbursed_allocations"`
		CompletedAllocations     int             `json:"completed_allocations"`
		CancelledAllocations     int             `json:"cancelled_allocations"`
	} `json:"data"`
}
