package http

import "github.com/shopspring/decimal"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TrailEntryDTO struct {
	AllocationID     *int64           `json:"allocation_id,omitempty"`
	AmountAllocated  *decimal.Decimal `json:"amount_allocated,omitempty"`
	AllocationStatus string           `json:"allocation_status,omitempty"`
	AllocatedAt      string           `json:"allocated_at,omitempty"`
	DonationID       *int64           `json:"donation_id,omitempty"`
	DonationAmount   *decimal.Decimal `json:"donation_amount,omitempty"`
	DonationPurpose  string           `json:"donation_purpose,omitempty"`
	DonorName        string           `json:"donor_name,omitempty"`
	DonorSourceTag   string           `json:"donor_source_tag,omitempty"`
	DonatedAt        string           `json:"donated_at,omitempty"`
	RequestID        *int64           `json:"request_id,omitempty"`
	EventName        string           `json:"event_name,omitempty"`
	RequesterName    string           `json:"requester_name,omitempty"`
	RequesterType    string           `json:"requester_type,omitempty"`
	AmountRequested  *decimal.Decimal `json:"amount_requested,omitempty"`
	RequestedAt      string           `json:"requested_at,omitempty"`
}

type TrailResponse struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Data   []TrailEntryDTO `json:"data"`
}

type DonationSummaryDTO struct {
	DonationID      int64           `json:"donation_id"`
	DonorName       string          `json:"donor_name"`
	DonorSourceTag  string          `json:"donor_source_tag,omitempty"`
	Purpose         string          `json:"purpose,omitempty"`
	DonationType    string          `json:"donation_type"`
	Amount          decimal.Decimal `json:"amount"`
	Allocated       decimal.Decimal `json:"allocated"`
	Remaining       decimal.Decimal `json:"remaining"`
	AllocationCount int             `json:"allocation_count"`
	CreatedAt       string          `json:"created_at"`
}

type DonationSummariesResponse struct {
	Status string               `json:"status"`
	Count  int                  `json:"count"`
	Data   []DonationSummaryDTO `json:"data"`
}

type RequestSummaryDTO struct {
	RequestID       int64           `json:"request_id"`
	RequesterName   string          `json:"requester_name"`
	RequesterType   string          `json:"requester_type"`
	EventName       string          `json:"event_name"`
	AmountRequested decimal.Decimal `json:"amount_requested"`
	Allocated       decimal.Decimal `json:"allocated"`
	Status          string          `json:"status"`
	EffectiveStatus string          `json:"effective_status"`
	AllocationCount int             `json:"allocation_count"`
	CreatedAt       string          `json:"created_at"`
}

type RequestSummariesResponse struct {
	Status string              `json:"status"`
	Count  int                 `json:"count"`
	Data   []RequestSummaryDTO `json:"data"`
}

type OverviewResponse struct {
	Status string `json:"status"`
	Data   struct {
		TotalDonations   int             `json:"total_donations"`
		TotalDonated     decimal.Decimal `json:"total_donated"`
		TotalRequests    int             `json:"total_requests"`
		TotalRequested   decimal.Decimal `json:"total_requested"`
		TotalAllocations int             `json:"total_allocations"`
		TotalAllocated   decimal.Decimal `json:"total_allocated"`
		TotalRemaining   decimal.Decimal `json:"total_remaining"`
		PendingRequests  int             `json:"pending_requests"`
		ApprovedRequests int             `json:"approved_requests"`
		UniqueDonors     int             `json:"unique_donors"`
	} `json:"data"`
}
