package http

import "github.com/shopspring/decimal"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RecordDonationRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Purpose      string          `json:"purpose"`
	Message      string          `json:"message,omitempty"`
	DonationType string          `json:"donation_type,omitempty"`
}

type DonationDTO struct {
	ID             int64           `json:"id"`
	DonorID        int64           `json:"donor_id"`
	DonorName      string          `json:"donor_name,omitempty"`
	DonorEmail     string          `json:"donor_email,omitempty"`
	DonorSourceTag string          `json:"source_tag,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Purpose        string          `json:"purpose"`
	Message        string          `json:"message,omitempty"`
	DonationType   string          `json:"donation_type"`
	Status         string          `json:"status"`
	ReceiptNumber  string          `json:"receipt_number"`
	CreatedAt      string          `json:"created_at"`
}

type RecordDonationResponse struct {
	Status string      `json:"status"`
	Data   DonationDTO `json:"data"`
}

type DonationListResponse struct {
	Status string        `json:"status"`
	Count  int           `json:"count"`
	Data   []DonationDTO `json:"data"`
}

type DonationResponse struct {
	Status string      `json:"status"`
	Data   DonationDTO `json:"data"`
}

type BalanceResponse struct {
	Status string `json:"status"`
	Data   struct {
		DonationID int64           `json:"donation_id"`
		Amount     decimal.Decimal `json:"amount"`
		Allocated  decimal.Decimal `json:"allocated"`
		Remaining  decimal.Decimal `json:"remaining"`
	} `json:"data"`
}

type StatsResponse struct {
	Status string `json:"status"`
	Data   struct {
		TotalDonations int             `json:"total_donations"`
		TotalAmount    decimal.Decimal `json:"total_amount"`
		AverageAmount  decimal.Decimal `json:"average_donation"`
		UniqueDonors   int             `json:"unique_donors"`
	} `json:"data"`
}
