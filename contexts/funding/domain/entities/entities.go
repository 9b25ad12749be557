package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDonor      Role = "donor"
	RoleStudent    Role = "student"
	RoleDepartment Role = "department"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDonor, RoleStudent, RoleDepartment:
		return true
	}
	return false
}

// CanRequestFunds reports whether the role is allowed to submit budget requests.
func (r Role) CanRequestFunds() bool {
	return r == RoleStudent || r == RoleDepartment
}

// Caller is the resolved identity attached to every ledger operation.
// The ledger trusts it; credential verification happens upstream.
type Caller struct {
	UserID    int64
	Role      Role
	SourceTag string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusReversed  DonationStatus = "reversed"
)

type DonationType string

const (
	DonationTypeGeneral        DonationType = "general"
	DonationTypeEducation      DonationType = "education"
	DonationTypeInfrastructure DonationType = "infrastructure"
	DonationTypeEvents         DonationType = "events"
	DonationTypeScholarship    DonationType = "scholarship"
)

func (t DonationType) Valid() bool {
	switch t {
	case DonationTypeGeneral, DonationTypeEducation, DonationTypeInfrastructure,
		DonationTypeEvents, DonationTypeScholarship:
		return true
	}
	return false
}

type Donation struct {
	ID            int64
	DonorID       int64
	Amount        decimal.Decimal
	Purpose       string
	Message       string
	DonationType  DonationType
	Status        DonationStatus
	ReceiptNumber string
	CreatedAt     time.Time
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// Decided reports whether the request has left the pending state. A decided
// request is locked: no update, delete, or second decision is allowed.
func (s RequestStatus) Decided() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

type BudgetRequest struct {
	ID                int64
	RequesterID       int64
	RequesterType     Role
	EventName         string
	EventDescription  string
	AmountRequested   decimal.Decimal
	EventDate         *time.Time
	Venue             string
	ExpectedAttendees int
	Category          string
	Justification     string
	Status            RequestStatus
	AdminNotes        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type AllocationStatus string

const (
	AllocationStatusAllocated AllocationStatus = "allocated"
	AllocationStatusDisbursed AllocationStatus = "disbursed"
	AllocationStatusCompleted AllocationStatus = "completed"
	AllocationStatusCancelled AllocationStatus = "cancelled"
)

func (s AllocationStatus) Valid() bool {
	switch s {
	case AllocationStatusAllocated, AllocationStatusDisbursed,
		AllocationStatusCompleted, AllocationStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the allocation lifecycle:
// allocated -> disbursed -> completed, or allocated -> cancelled.
// No step is skipped and completed/cancelled are terminal.
func (s AllocationStatus) CanTransitionTo(next AllocationStatus) bool {
	switch s {
	case AllocationStatusAllocated:
		return next == AllocationStatusDisbursed || next == AllocationStatusCancelled
	case AllocationStatusDisbursed:
		return next == AllocationStatusCompleted
	}
	return false
}

// CountsAgainstBalance reports whether an allocation in this status still
// consumes its donation's remaining balance.
func (s AllocationStatus) CountsAgainstBalance() bool {
	return s != AllocationStatusCancelled
}

type Allocation struct {
	ID              int64
	DonationID      int64
	RequestID       int64
	AmountAllocated decimal.Decimal
	BeneficiaryType Role
	Reason          string
	Notes           string
	Status          AllocationStatus
	AllocatedBy     int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserProfile is the projection of identity data the funding ledgers join
// against for display and donor-scoped queries.
type UserProfile struct {
	UserID     int64
	Name       string
	Email      string
	Role       Role
	Department string
	StudentID  string
	SourceTag  string
}
