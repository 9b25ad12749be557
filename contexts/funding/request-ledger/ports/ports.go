package ports

import (
	"context"
	"time"

	"clearfund/contexts/funding/domain/entities"

	"github.com/shopspring/decimal"
)

// RequestRecord is a budget request joined with its requester's display fields.
type RequestRecord struct {
	Request            entities.BudgetRequest
	RequesterName      string
	RequesterEmail     string
	RequesterDept      string
	RequesterStudentID string
}

type SubmitRequestInput struct {
	EventName         string
	EventDescription  string
	AmountRequested   decimal.Decimal
	EventDate         *time.Time
	Venue             string
	ExpectedAttendees int
	Category          string
	Justification     string
}

type Stats struct {
	TotalRequests    int
	TotalRequested   decimal.Decimal
	AverageRequested decimal.Decimal
	PendingRequests  int
	ApprovedRequests int
	RejectedRequests int
	UniqueRequesters int
}

type Repository interface {
	CreateRequest(ctx context.Context, request entities.BudgetRequest) (entities.BudgetRequest, error)
	GetRequest(ctx context.Context, requestID int64) (RequestRecord, error)
	ListRequests(ctx context.Context) ([]RequestRecord, error)
	ListRequestsByStatus(ctx context.Context, status entities.RequestStatus) ([]RequestRecord, error)
	ListRequestsByRequester(ctx context.Context, requesterID int64) ([]RequestRecord, error)

	// UpdateRequest replaces the editable fields of a request. The store
	// applies the change only while the request is still pending and
	// reports ErrRequestLocked otherwise.
	UpdateRequest(ctx context.Context, request entities.BudgetRequest) (entities.BudgetRequest, error)

	// DeleteRequest removes a pending request; non-pending requests
	// report ErrRequestLocked.
	DeleteRequest(ctx context.Context, requestID int64) error

	// DecideRequest moves a pending request to approved or rejected. The
	// decision is one-shot: deciding a non-pending request reports
	// ErrRequestLocked.
	DecideRequest(ctx context.Context, requestID int64, status entities.RequestStatus, adminNotes string, decidedAt time.Time) (entities.BudgetRequest, error)

	RequestStats(ctx context.Context) (Stats, error)
}

type Clock interface {
	Now() time.Time
}
