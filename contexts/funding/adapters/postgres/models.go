package postgresadapter

import (
	"time"

	"github.com/shopspring/decimal"

	allocationports "clearfund/contexts/funding/allocation-engine/ports"
	"clearfund/contexts/funding/domain/entities"
	donationports "clearfund/contexts/funding/donation-ledger/ports"
	requestports "clearfund/contexts/funding/request-ledger/ports"
)

type donationModel struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	DonorID       int64           `gorm:"column:donor_id;index"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(14,2)"`
	Purpose       string          `gorm:"column:purpose"`
	Message       string          `gorm:"column:message"`
	DonationType  string          `gorm:"column:donation_type"`
	Status        string          `gorm:"column:status"`
	ReceiptNumber string          `gorm:"column:receipt_number;uniqueIndex"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (donationModel) TableName() string {
	return "donations"
}

func donationModelFromEntity(donation entities.Donation) donationModel {
	row := donationModel{
		ID:            donation.ID,
		DonorID:       donation.DonorID,
		Amount:        donation.Amount,
		Purpose:       donation.Purpose,
		Message:       donation.Message,
		DonationType:  string(donation.DonationType),
		Status:        string(donation.Status),
		ReceiptNumber: donation.ReceiptNumber,
		CreatedAt:     donation.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m donationModel) toEntity() entities.Donation {
	return entities.Donation{
		ID:            m.ID,
		DonorID:       m.DonorID,
		Amount:        m.Amount,
		Purpose:       m.Purpose,
		Message:       m.Message,
		DonationType:  entities.DonationType(m.DonationType),
		Status:        entities.DonationStatus(m.Status),
		ReceiptNumber: m.ReceiptNumber,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

type donationJoinRow struct {
	donationModel
	DonorName      string `gorm:"column:donor_name"`
	DonorEmail     string `gorm:"column:donor_email"`
	DonorSourceTag string `gorm:"column:donor_source_tag"`
}

func (m donationJoinRow) toRecord() donationports.DonationRecord {
	return donationports.DonationRecord{
		Donation:       m.donationModel.toEntity(),
		DonorName:      m.DonorName,
		DonorEmail:     m.DonorEmail,
		DonorSourceTag: m.DonorSourceTag,
	}
}

func toDonationRecords(rows []donationJoinRow) []donationports.DonationRecord {
	items := make([]donationports.DonationRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toRecord())
	}
	return items
}

type budgetRequestModel struct {
	ID                int64           `gorm:"column:id;primaryKey;autoIncrement"`
	RequesterID       int64           `gorm:"column:requester_id;index"`
	RequesterType     string          `gorm:"column:requester_type"`
	EventName         string          `gorm:"column:event_name"`
	EventDescription  string          `gorm:"column:event_description"`
	AmountRequested   decimal.Decimal `gorm:"column:amount_requested;type:decimal(14,2)"`
	EventDate         *time.Time      `gorm:"column:event_date"`
	Venue             string          `gorm:"column:venue"`
	ExpectedAttendees int             `gorm:"column:expected_attendees"`
	Category          string          `gorm:"column:category"`
	Justification     string          `gorm:"column:justification"`
	Status            string          `gorm:"column:status;index"`
	AdminNotes        string          `gorm:"column:admin_notes"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (budgetRequestModel) TableName() string {
	return "budget_requests"
}

func budgetRequestModelFromEntity(request entities.BudgetRequest) budgetRequestModel {
	row := budgetRequestModel{
		ID:                request.ID,
		RequesterID:       request.RequesterID,
		RequesterType:     string(request.RequesterType),
		EventName:         request.EventName,
		EventDescription:  request.EventDescription,
		AmountRequested:   request.AmountRequested,
		EventDate:         normalizeOptionalTime(request.EventDate),
		Venue:             request.Venue,
		ExpectedAttendees: request.ExpectedAttendees,
		Category:          request.Category,
		Justification:     request.Justification,
		Status:            string(request.Status),
		AdminNotes:        request.AdminNotes,
		CreatedAt:         request.CreatedAt.UTC(),
		UpdatedAt:         request.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m budgetRequestModel) toEntity() entities.BudgetRequest {
	return entities.BudgetRequest{
		ID:                m.ID,
		RequesterID:       m.RequesterID,
		RequesterType:     entities.Role(m.RequesterType),
		EventName:         m.EventName,
		EventDescription:  m.EventDescription,
		AmountRequested:   m.AmountRequested,
		EventDate:         normalizeOptionalTime(m.EventDate),
		Venue:             m.Venue,
		ExpectedAttendees: m.ExpectedAttendees,
		Category:          m.Category,
		Justification:     m.Justification,
		Status:            entities.RequestStatus(m.Status),
		AdminNotes:        m.AdminNotes,
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
}

type requestJoinRow struct {
	budgetRequestModel
	RequesterName      string `gorm:"column:requester_name"`
	RequesterEmail     string `gorm:"column:requester_email"`
	RequesterDept      string `gorm:"column:requester_dept"`
	RequesterStudentID string `gorm:"column:requester_student_id"`
}

func (m requestJoinRow) toRecord() requestports.RequestRecord {
	return requestports.RequestRecord{
		Request:            m.budgetRequestModel.toEntity(),
		RequesterName:      m.RequesterName,
		RequesterEmail:     m.RequesterEmail,
		RequesterDept:      m.RequesterDept,
		RequesterStudentID: m.RequesterStudentID,
	}
}

func toRequestRecords(rows []requestJoinRow) []requestports.RequestRecord {
	items := make([]requestports.RequestRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toRecord())
	}
	return items
}

type allocationModel struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	DonationID      int64           `gorm:"column:donation_id;index"`
	RequestID       int64           `gorm:"column:request_id;index"`
	AmountAllocated decimal.Decimal `gorm:"column:amount_allocated;type:decimal(14,2)"`
	BeneficiaryType string          `gorm:"column:beneficiary_type"`
	Reason          string          `gorm:"column:reason"`
	Notes           string          `gorm:"column:notes"`
	Status          string          `gorm:"column:status;index"`
	AllocatedBy     int64           `gorm:"column:allocated_by"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (allocationModel) TableName() string {
	return "allocations"
}

func allocationModelFromEntity(allocation entities.Allocation) allocationModel {
	row := allocationModel{
		ID:              allocation.ID,
		DonationID:      allocation.DonationID,
		RequestID:       allocation.RequestID,
		AmountAllocated: allocation.AmountAllocated,
		BeneficiaryType: string(allocation.BeneficiaryType),
		Reason:          allocation.Reason,
		Notes:           allocation.Notes,
		Status:          string(allocation.Status),
		AllocatedBy:     allocation.AllocatedBy,
		CreatedAt:       allocation.CreatedAt.UTC(),
		UpdatedAt:       allocation.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m allocationModel) toEntity() entities.Allocation {
	return entities.Allocation{
		ID:              m.ID,
		DonationID:      m.DonationID,
		RequestID:       m.RequestID,
		AmountAllocated: m.AmountAllocated,
		BeneficiaryType: entities.Role(m.BeneficiaryType),
		Reason:          m.Reason,
		Notes:           m.Notes,
		Status:          entities.AllocationStatus(m.Status),
		AllocatedBy:     m.AllocatedBy,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type allocationJoinRow struct {
	allocationModel
	DonationPurpose string `gorm:"column:donation_purpose"`
	DonorName       string `gorm:"column:donor_name"`
	DonorSourceTag  string `gorm:"column:donor_source_tag"`
	EventName       string `gorm:"column:event_name"`
	RequesterName   string `gorm:"column:requester_name"`
	AllocatorName   string `gorm:"column:allocator_name"`
}

func (m allocationJoinRow) toRecord() allocationports.AllocationRecord {
	return allocationports.AllocationRecord{
		Allocation:      m.allocationModel.toEntity(),
		DonationPurpose: m.DonationPurpose,
		DonorName:       m.DonorName,
		DonorSourceTag:  m.DonorSourceTag,
		EventName:       m.EventName,
		RequesterName:   m.RequesterName,
		AllocatorName:   m.AllocatorName,
	}
}

func toAllocationRecords(rows []allocationJoinRow) []allocationports.AllocationRecord {
	items := make([]allocationports.AllocationRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toRecord())
	}
	return items
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
