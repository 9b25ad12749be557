package http

import "github.com/shopspring/decimal"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitRequestRequest struct {
	EventName         string          `json:"event_name"`
	EventDescription  string          `json:"event_description"`
	AmountRequested   decimal.Decimal `json:"amount_requested"`
	EventDate         string          `json:"event_date,omitempty"`
	Venue             string          `json:"venue,omitempty"`
	ExpectedAttendees int             `json:"expected_attendees,omitempty"`
	Category          string          `json:"category,omitempty"`
	Justification     string          `json:"justification"`
}

type DecideRequestRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

type BudgetRequestDTO struct {
	ID                 int64           `json:"id"`
	RequesterID        int64           `json:"requester_id"`
	RequesterType      string          `json:"requester_type"`
	RequesterName      string          `json:"requester_name,omitempty"`
	RequesterEmail     string          `json:"requester_email,omitempty"`
	RequesterDept      string          `json:"department,omitempty"`
	RequesterStudentID string          `json:"student_id,omitempty"`
	EventName          string          `json:"event_name"`
	EventDescription   string          `json:"event_description"`
	AmountRequested    decimal.Decimal `json:"amount_requested"`
	EventDate          string          `json:"event_date,omitempty"`
	Venue              string          `json:"venue,omitempty"`
	ExpectedAttendees  int             `json:"expected_attendees,omitempty"`
	Category           string          `json:"category,omitempty"`
	Justification      string          `json:"justification"`
	Status             string          `json:"status"`
	AdminNotes         string          `json:"admin_notes,omitempty"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

type BudgetRequestResponse struct {
	Status string           `json:"status"`
	Data   BudgetRequestDTO `json:"data"`
}

type BudgetRequestListResponse struct {
	Status string             `json:"status"`
	Count  int                `json:"count"`
	Data   []BudgetRequestDTO `json:"data"`
}

type DeleteResponse struct {
	Status string `json:"status"`
}

type StatsResponse struct {
	Status string `json:"status"`
	Data   struct {
		TotalRequests    int             `json:"total_requests"`
		TotalRequested   decimal.Decimal `json:"total_amount_requested"`
		AverageRequested decimal.Decimal `json:"average_amount_requested"`
		PendingRequests  int             `json:"pending_requests"`
		ApprovedRequests int             `json:"approved_requests"`
		RejectedRequests int             `json:"rejected_requests"`
		UniqueRequesters int             `json:"unique_requesters"`
	} `json:"data"`
}
