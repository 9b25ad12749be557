package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	allocationports "clearfund/contexts/funding/allocation-engine/ports"
	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
	donationports "clearfund/contexts/funding/donation-ledger/ports"
	requestports "clearfund/contexts/funding/request-ledger/ports"
)

// Repository is the postgres backend for every funding port. The ledgers
// share one repository because their relations join each other; the
// allocation funds check locks the donation row so the check and the insert
// commit together.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the funding relations. The users table is owned by the
// identity context and must already exist.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&donationModel{},
		&budgetRequestModel{},
		&allocationModel{},
	)
}

// --- donation ledger ---

func (r *Repository) CreateDonation(ctx context.Context, donation entities.Donation) (entities.Donation, error) {
	row := donationModelFromEntity(donation)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Donation{}, domainerrors.ErrDuplicate
		}
		return entities.Donation{}, r.logError("funding_repo_create_donation_failed", err,
			"donor_id", donation.DonorID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetDonation(ctx context.Context, donationID int64) (donationports.DonationRecord, error) {
	var row donationJoinRow
	err := r.donationJoinQuery(ctx).
		Where("d.id = ?", donationID).
		Scan(&row).
		Error
	if err != nil {
		return donationports.DonationRecord{}, r.logError("funding_repo_get_donation_failed", err,
			"donation_id", donationID,
		)
	}
	if row.ID == 0 {
		return donationports.DonationRecord{}, domainerrors.ErrDonationNotFound
	}
	return row.toRecord(), nil
}

func (r *Repository) ListDonations(ctx context.Context) ([]donationports.DonationRecord, error) {
	var rows []donationJoinRow
	if err := r.donationJoinQuery(ctx).Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_donations_failed", err)
	}
	return toDonationRecords(rows), nil
}

func (r *Repository) ListDonationsByDonor(ctx context.Context, donorID int64) ([]donationports.DonationRecord, error) {
	var rows []donationJoinRow
	if err := r.donationJoinQuery(ctx).
		Where("d.donor_id = ?", donorID).
		Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_donations_by_donor_failed", err,
			"donor_id", donorID,
		)
	}
	return toDonationRecords(rows), nil
}

func (r *Repository) ListDonationsBySourceTag(ctx context.Context, sourceTag string) ([]donationports.DonationRecord, error) {
	var rows []donationJoinRow
	if err := r.donationJoinQuery(ctx).
		Where("u.source_tag = ?", sourceTag).
		Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_donations_by_source_tag_failed", err,
			"source_tag", sourceTag,
		)
	}
	return toDonationRecords(rows), nil
}

func (r *Repository) GetDonationBalance(ctx context.Context, donationID int64) (donationports.Balance, error) {
	var row donationModel
	err := r.db.WithContext(ctx).
		Where("id = ?", donationID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return donationports.Balance{}, domainerrors.ErrDonationNotFound
		}
		return donationports.Balance{}, r.logError("funding_repo_get_balance_failed", err,
			"donation_id", donationID,
		)
	}
	allocated, err := r.allocatedSum(r.db.WithContext(ctx), donationID)
	if err != nil {
		return donationports.Balance{}, r.logError("funding_repo_get_balance_sum_failed", err,
			"donation_id", donationID,
		)
	}
	return donationports.Balance{
		Amount:    row.Amount,
		Allocated: allocated,
		Remaining: row.Amount.Sub(allocated),
	}, nil
}

func (r *Repository) DonationStats(ctx context.Context) (donationports.Stats, error) {
	var agg struct {
		TotalDonations int             `gorm:"column:total_donations"`
		TotalAmount    decimal.Decimal `gorm:"column:total_amount"`
		UniqueDonors   int             `gorm:"column:unique_donors"`
	}
	err := r.db.WithContext(ctx).
		Model(&donationModel{}).
		Select("COUNT(*) AS total_donations, COALESCE(SUM(amount), 0) AS total_amount, COUNT(DISTINCT donor_id) AS unique_donors").
		Where("status = ?", string(entities.DonationStatusCompleted)).
		Scan(&agg).
		Error
	if err != nil {
		return donationports.Stats{}, r.logError("funding_repo_donation_stats_failed", err)
	}
	stats := donationports.Stats{
		TotalDonations: agg.TotalDonations,
		TotalAmount:    agg.TotalAmount,
		UniqueDonors:   agg.UniqueDonors,
	}
	if stats.TotalDonations > 0 {
		stats.AverageAmount = stats.TotalAmount.
			Div(decimal.NewFromInt(int64(stats.TotalDonations))).Round(2)
	}
	return stats, nil
}

// --- request ledger ---

func (r *Repository) CreateRequest(ctx context.Context, request entities.BudgetRequest) (entities.BudgetRequest, error) {
	row := budgetRequestModelFromEntity(request)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.BudgetRequest{}, r.logError("funding_repo_create_request_failed", err,
			"requester_id", request.RequesterID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetRequest(ctx context.Context, requestID int64) (requestports.RequestRecord, error) {
	var row requestJoinRow
	err := r.requestJoinQuery(ctx).
		Where("br.id = ?", requestID).
		Scan(&row).
		Error
	if err != nil {
		return requestports.RequestRecord{}, r.logError("funding_repo_get_request_failed", err,
			"request_id", requestID,
		)
	}
	if row.ID == 0 {
		return requestports.RequestRecord{}, domainerrors.ErrRequestNotFound
	}
	return row.toRecord(), nil
}

func (r *Repository) ListRequests(ctx context.Context) ([]requestports.RequestRecord, error) {
	var rows []requestJoinRow
	if err := r.requestJoinQuery(ctx).Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_requests_failed", err)
	}
	return toRequestRecords(rows), nil
}

func (r *Repository) ListRequestsByStatus(ctx context.Context, status entities.RequestStatus) ([]requestports.RequestRecord, error) {
	var rows []requestJoinRow
	if err := r.requestJoinQuery(ctx).
		Where("br.status = ?", string(status)).
		Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_requests_by_status_failed", err,
			"status", string(status),
		)
	}
	return toRequestRecords(rows), nil
}

func (r *Repository) ListRequestsByRequester(ctx context.Context, requesterID int64) ([]requestports.RequestRecord, error) {
	var rows []requestJoinRow
	if err := r.requestJoinQuery(ctx).
		Where("br.requester_id = ?", requesterID).
		Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_requests_by_requester_failed", err,
			"requester_id", requesterID,
		)
	}
	return toRequestRecords(rows), nil
}

func (r *Repository) UpdateRequest(ctx context.Context, request entities.BudgetRequest) (entities.BudgetRequest, error) {
	result := r.db.WithContext(ctx).
		Model(&budgetRequestModel{}).
		Where("id = ?", request.ID).
		Where("status = ?", string(entities.RequestStatusPending)).
		Updates(map[string]any{
			"event_name":         request.EventName,
			"event_description":  request.EventDescription,
			"amount_requested":   request.AmountRequested,
			"event_date":         request.EventDate,
			"venue":              request.Venue,
			"expected_attendees": request.ExpectedAttendees,
			"category":           request.Category,
			"justification":      request.Justification,
			"updated_at":         request.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return entities.BudgetRequest{}, r.logError("funding_repo_update_request_failed", result.Error,
			"request_id", request.ID,
		)
	}
	if result.RowsAffected == 0 {
		return entities.BudgetRequest{}, r.requestMissingOrLocked(ctx, request.ID)
	}
	return r.loadRequest(ctx, request.ID)
}

func (r *Repository) DeleteRequest(ctx context.Context, requestID int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", requestID).
		Where("status = ?", string(entities.RequestStatusPending)).
		Delete(&budgetRequestModel{})
	if result.Error != nil {
		return r.logError("funding_repo_delete_request_failed", result.Error,
			"request_id", requestID,
		)
	}
	if result.RowsAffected == 0 {
		return r.requestMissingOrLocked(ctx, requestID)
	}
	return nil
}

func (r *Repository) DecideRequest(ctx context.Context, requestID int64, status entities.RequestStatus, adminNotes string, decidedAt time.Time) (entities.BudgetRequest, error) {
	result := r.db.WithContext(ctx).
		Model(&budgetRequestModel{}).
		Where("id = ?", requestID).
		Where("status = ?", string(entities.RequestStatusPending)).
		Updates(map[string]any{
			"status":      string(status),
			"admin_notes": adminNotes,
			"updated_at":  decidedAt.UTC(),
		})
	if result.Error != nil {
		return entities.BudgetRequest{}, r.logError("funding_repo_decide_request_failed", result.Error,
			"request_id", requestID,
		)
	}
	if result.RowsAffected == 0 {
		return entities.BudgetRequest{}, r.requestMissingOrLocked(ctx, requestID)
	}
	return r.loadRequest(ctx, requestID)
}

func (r *Repository) RequestStats(ctx context.Context) (requestports.Stats, error) {
	var agg struct {
		TotalRequests    int             `gorm:"column:total_requests"`
		TotalRequested   decimal.Decimal `gorm:"column:total_requested"`
		PendingRequests  int             `gorm:"column:pending_requests"`
		ApprovedRequests int             `gorm:"column:approved_requests"`
		RejectedRequests int             `gorm:"column:rejected_requests"`
		UniqueRequesters int             `gorm:"column:unique_requesters"`
	}
	err := r.db.WithContext(ctx).
		Model(&budgetRequestModel{}).
		Select(`COUNT(*) AS total_requests,
			COALESCE(SUM(amount_requested), 0) AS total_requested,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_requests,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved_requests,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected_requests,
			COUNT(DISTINCT requester_id) AS unique_requesters`).
		Scan(&agg).
		Error
	if err != nil {
		return requestports.Stats{}, r.logError("funding_repo_request_stats_failed", err)
	}
	stats := requestports.Stats{
		TotalRequests:    agg.TotalRequests,
		TotalRequested:   agg.TotalRequested,
		PendingRequests:  agg.PendingRequests,
		ApprovedRequests: agg.ApprovedRequests,
		RejectedRequests: agg.RejectedRequests,
		UniqueRequesters: agg.UniqueRequesters,
	}
	if stats.TotalRequests > 0 {
		stats.AverageRequested = stats.TotalRequested.
			Div(decimal.NewFromInt(int64(stats.TotalRequests))).Round(2)
	}
	return stats, nil
}

// --- allocation engine ---

// CreateAllocation locks the donation row FOR UPDATE, sums the existing
// non-cancelled allocations, and inserts inside the same transaction.
// Concurrent creates against the same donation serialize on the row lock,
// so two funds checks can never both pass against the same remaining
// balance.
func (r *Repository) CreateAllocation(ctx context.Context, allocation entities.Allocation) (entities.Allocation, error) {
	row := allocationModelFromEntity(allocation)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var donation donationModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", allocation.DonationID).
			First(&donation).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrDonationNotFound
			}
			return err
		}

		var requestCount int64
		if err := tx.Model(&budgetRequestModel{}).
			Where("id = ?", allocation.RequestID).
			Count(&requestCount).Error; err != nil {
			return err
		}
		if requestCount == 0 {
			return domainerrors.ErrRequestNotFound
		}

		allocated, err := r.allocatedSum(tx, allocation.DonationID)
		if err != nil {
			return err
		}
		remaining := donation.Amount.Sub(allocated)
		if allocation.AmountAllocated.GreaterThan(remaining) {
			return &domainerrors.InsufficientFundsError{
				Remaining: remaining,
				Requested: allocation.AmountAllocated,
			}
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDonationNotFound) ||
			errors.Is(err, domainerrors.ErrRequestNotFound) ||
			errors.Is(err, domainerrors.ErrInsufficientFunds) {
			return entities.Allocation{}, err
		}
		return entities.Allocation{}, r.logError("funding_repo_create_allocation_failed", err,
			"donation_id", allocation.DonationID,
			"request_id", allocation.RequestID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetAllocation(ctx context.Context, allocationID int64) (allocationports.AllocationRecord, error) {
	var row allocationJoinRow
	err := r.allocationJoinQuery(ctx).
		Where("a.id = ?", allocationID).
		Scan(&row).
		Error
	if err != nil {
		return allocationports.AllocationRecord{}, r.logError("funding_repo_get_allocation_failed", err,
			"allocation_id", allocationID,
		)
	}
	if row.ID == 0 {
		return allocationports.AllocationRecord{}, domainerrors.ErrAllocationNotFound
	}
	return row.toRecord(), nil
}

func (r *Repository) ListAllocations(ctx context.Context) ([]allocationports.AllocationRecord, error) {
	var rows []allocationJoinRow
	if err := r.allocationJoinQuery(ctx).Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_allocations_failed", err)
	}
	return toAllocationRecords(rows), nil
}

func (r *Repository) ListAllocationsByDonation(ctx context.Context, donationID int64) ([]allocationports.AllocationRecord, error) {
	var rows []allocationJoinRow
	if err := r.allocationJoinQuery(ctx).
		Where("a.donation_id = ?", donationID).
		Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_allocations_by_donation_failed", err,
			"donation_id", donationID,
		)
	}
	return toAllocationRecords(rows), nil
}

func (r *Repository) ListAllocationsByRequest(ctx context.Context, requestID int64) ([]allocationports.AllocationRecord, error) {
	var rows []allocationJoinRow
	if err := r.allocationJoinQuery(ctx).
		Where("a.request_id = ?", requestID).
		Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_allocations_by_request_failed", err,
			"request_id", requestID,
		)
	}
	return toAllocationRecords(rows), nil
}

func (r *Repository) ListAllocationsByBeneficiaryType(ctx context.Context, beneficiaryType entities.Role) ([]allocationports.AllocationRecord, error) {
	var rows []allocationJoinRow
	if err := r.allocationJoinQuery(ctx).
		Where("a.beneficiary_type = ?", string(beneficiaryType)).
		Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_allocations_by_beneficiary_failed", err,
			"beneficiary_type", string(beneficiaryType),
		)
	}
	return toAllocationRecords(rows), nil
}

// ListAllocationsBySourceTag filters on the donation owner's source tag in
// the query itself, so the donor-privacy boundary holds even if a caller
// skips its own access check.
func (r *Repository) ListAllocationsBySourceTag(ctx context.Context, sourceTag string) ([]allocationports.AllocationRecord, error) {
	var rows []allocationJoinRow
	if err := r.allocationJoinQuery(ctx).
		Where("du.source_tag = ?", sourceTag).
		Scan(&rows).Error; err != nil {
		return nil, r.logError("funding_repo_list_allocations_by_source_tag_failed", err,
			"source_tag", sourceTag,
		)
	}
	return toAllocationRecords(rows), nil
}

func (r *Repository) SetAllocationStatus(ctx context.Context, allocationID int64, from, to entities.AllocationStatus, updatedAt time.Time) (entities.Allocation, error) {
	result := r.db.WithContext(ctx).
		Model(&allocationModel{}).
		Where("id = ?", allocationID).
		Where("status = ?", string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return entities.Allocation{}, r.logError("funding_repo_set_allocation_status_failed", result.Error,
			"allocation_id", allocationID,
			"from", string(from),
			"to", string(to),
		)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&allocationModel{}).
			Where("id = ?", allocationID).
			Count(&count).Error; err != nil {
			return entities.Allocation{}, r.logError("funding_repo_set_allocation_status_check_failed", err,
				"allocation_id", allocationID,
			)
		}
		if count == 0 {
			return entities.Allocation{}, domainerrors.ErrAllocationNotFound
		}
		return entities.Allocation{}, domainerrors.ErrInvalidTransition
	}

	var row allocationModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", allocationID).
		First(&row).Error; err != nil {
		return entities.Allocation{}, r.logError("funding_repo_set_allocation_status_load_failed", err,
			"allocation_id", allocationID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) AllocationStats(ctx context.Context) (allocationports.Stats, error) {
	var agg struct {
		TotalAllocations         int             `gorm:"column:total_allocations"`
		TotalAllocated           decimal.Decimal `gorm:"column:total_allocated"`
		UniqueBeneficiaryTypes   int             `gorm:"column:unique_beneficiary_types"`
		DonationsWithAllocations int             `gorm:"column:donations_with_allocations"`
		ActiveAllocations        int             `gorm:"column:active_allocations"`
		DisbursedAllocations     int             `gorm:"column:disbursed_allocations"`
		CompletedAllocations     int             `gorm:"column:completed_allocations"`
		CancelledAllocations     int             `gorm:"column:cancelled_allocations"`
	}
	err := r.db.WithContext(ctx).
		Model(&allocationModel{}).
		Select(`COUNT(*) FILTER (WHERE status <> 'cancelled') AS total_allocations,
			COALESCE(SUM(amount_allocated) FILTER (WHERE status <> 'cancelled'), 0) AS total_allocated,
			COUNT(DISTINCT beneficiary_type) FILTER (WHERE status <> 'cancelled') AS unique_beneficiary_types,
			COUNT(DISTINCT donation_id) FILTER (WHERE status <> 'cancelled') AS donations_with_allocations,
			COUNT(*) FILTER (WHERE status = 'allocated') AS active_allocations,
			COUNT(*) FILTER (WHERE status = 'disbursed') AS disbursed_allocations,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_allocations,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled_allocations`).
		Scan(&agg).
		Error
	if err != nil {
		return allocationports.Stats{}, r.logError("funding_repo_allocation_stats_failed", err)
	}
	stats := allocationports.Stats{
		TotalAllocations:         agg.TotalAllocations,
		TotalAllocated:           agg.TotalAllocated,
		UniqueBeneficiaryTypes:   agg.UniqueBeneficiaryTypes,
		DonationsWithAllocations: agg.DonationsWithAllocations,
		ActiveAllocations:        agg.ActiveAllocations,
		DisbursedAllocations:     agg.DisbursedAllocations,
		CompletedAllocations:     agg.CompletedAllocations,
		CancelledAllocations:     agg.CancelledAllocations,
	}
	if stats.TotalAllocations > 0 {
		stats.AverageAllocated = stats.TotalAllocated.
			Div(decimal.NewFromInt(int64(stats.TotalAllocations))).Round(2)
	}
	return stats, nil
}

// --- internals ---

func (r *Repository) donationJoinQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("donations AS d").
		Select("d.*, u.name AS donor_name, u.email AS donor_email, u.source_tag AS donor_source_tag").
		Joins("LEFT JOIN users AS u ON u.id = d.donor_id").
		Order("d.id ASC")
}

func (r *Repository) requestJoinQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("budget_requests AS br").
		Select("br.*, u.name AS requester_name, u.email AS requester_email, u.department AS requester_dept, u.student_id AS requester_student_id").
		Joins("LEFT JOIN users AS u ON u.id = br.requester_id").
		Order("br.id ASC")
}

func (r *Repository) allocationJoinQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("allocations AS a").
		Select(`a.*, d.purpose AS donation_purpose,
			du.name AS donor_name, du.source_tag AS donor_source_tag,
			br.event_name AS event_name, ru.name AS requester_name,
			au.name AS allocator_name`).
		Joins("LEFT JOIN donations AS d ON d.id = a.donation_id").
		Joins("LEFT JOIN users AS du ON du.id = d.donor_id").
		Joins("LEFT JOIN budget_requests AS br ON br.id = a.request_id").
		Joins("LEFT JOIN users AS ru ON ru.id = br.requester_id").
		Joins("LEFT JOIN users AS au ON au.id = a.allocated_by").
		Order("a.id ASC")
}

func (r *Repository) allocatedSum(tx *gorm.DB, donationID int64) (decimal.Decimal, error) {
	var row struct {
		Allocated decimal.Decimal `gorm:"column:allocated"`
	}
	err := tx.Model(&allocationModel{}).
		Select("COALESCE(SUM(amount_allocated), 0) AS allocated").
		Where("donation_id = ?", donationID).
		Where("status <> ?", string(entities.AllocationStatusCancelled)).
		Scan(&row).
		Error
	if err != nil {
		return decimal.Decimal{}, err
	}
	return row.Allocated, nil
}

func (r *Repository) loadRequest(ctx context.Context, requestID int64) (entities.BudgetRequest, error) {
	var row budgetRequestModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", requestID).
		First(&row).Error; err != nil {
		return entities.BudgetRequest{}, r.logError("funding_repo_load_request_failed", err,
			"request_id", requestID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) requestMissingOrLocked(ctx context.Context, requestID int64) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&budgetRequestModel{}).
		Where("id = ?", requestID).
		Count(&count).Error; err != nil {
		return r.logError("funding_repo_request_lock_check_failed", err,
			"request_id", requestID,
		)
	}
	if count == 0 {
		return domainerrors.ErrRequestNotFound
	}
	return domainerrors.ErrRequestLocked
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "funding/adapters",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("funding repository operation failed", fields...)
	return domainerrors.ErrStorageFailure
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ donationports.Repository = (*Repository)(nil)
var _ requestports.Repository = (*Repository)(nil)
var _ allocationports.Repository = (*Repository)(nil)
