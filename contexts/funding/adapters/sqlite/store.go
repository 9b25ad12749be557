// Package sqlite provides the SQLite backend for the funding ports, used for
// local development without a postgres instance.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	allocationports "clearfund/contexts/funding/allocation-engine/ports"
	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
	donationports "clearfund/contexts/funding/donation-ledger/ports"
	requestports "clearfund/contexts/funding/request-ledger/ports"
	viewports "clearfund/contexts/funding/transparency-view/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS donations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    donor_id INTEGER NOT NULL,
    amount TEXT NOT NULL,
    purpose TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL DEFAULT '',
    donation_type TEXT NOT NULL,
    status TEXT NOT NULL,
    receipt_number TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS budget_requests (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    requester_id INTEGER NOT NULL,
    requester_type TEXT NOT NULL,
    event_name TEXT NOT NULL,
    event_description TEXT NOT NULL DEFAULT '',
    amount_requested TEXT NOT NULL,
    event_date INTEGER,
    venue TEXT NOT NULL DEFAULT '',
    expected_attendees INTEGER NOT NULL DEFAULT 0,
    category TEXT NOT NULL DEFAULT '',
    justification TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    admin_notes TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS allocations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    donation_id INTEGER NOT NULL,
    request_id INTEGER NOT NULL,
    amount_allocated TEXT NOT NULL,
    beneficiary_type TEXT NOT NULL DEFAULT '',
    reason TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    allocated_by INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (donation_id) REFERENCES donations(id),
    FOREIGN KEY (request_id) REFERENCES budget_requests(id)
);

CREATE INDEX IF NOT EXISTS idx_donations_donor_id ON donations(donor_id);
CREATE INDEX IF NOT EXISTS idx_budget_requests_requester_id ON budget_requests(requester_id);
CREATE INDEX IF NOT EXISTS idx_budget_requests_status ON budget_requests(status);
CREATE INDEX IF NOT EXISTS idx_allocations_donation_id ON allocations(donation_id);
CREATE INDEX IF NOT EXISTS idx_allocations_request_id ON allocations(request_id);
`

// Store implements every funding port against a shared *sql.DB. Write
// transactions are opened immediate (via the _txlock DSN parameter), so the
// funds check inside CreateAllocation serializes against concurrent writers.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Migrate creates the funding relations. The users table is owned by the
// identity context.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// --- donation ledger ---

func (s *Store) CreateDonation(ctx context.Context, donation entities.Donation) (entities.Donation, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO donations (donor_id, amount, purpose, message, donation_type, status, receipt_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		donation.DonorID, donation.Amount.String(), donation.Purpose, donation.Message,
		string(donation.DonationType), string(donation.Status), donation.ReceiptNumber,
		donation.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return entities.Donation{}, s.logError("funding_sqlite_create_donation_failed", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return entities.Donation{}, s.logError("funding_sqlite_create_donation_id_failed", err)
	}
	donation.ID = id
	return donation, nil
}

const donationJoinSelect = `
	SELECT d.id, d.donor_id, d.amount, d.purpose, d.message, d.donation_type,
		d.status, d.receipt_number, d.created_at,
		COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.source_tag, '')
	FROM donations AS d
	LEFT JOIN users AS u ON u.id = d.donor_id`

func (s *Store) GetDonation(ctx context.Context, donationID int64) (donationports.DonationRecord, error) {
	row := s.db.QueryRowContext(ctx, donationJoinSelect+" WHERE d.id = ?", donationID)
	record, err := scanDonationRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return donationports.DonationRecord{}, domainerrors.ErrDonationNotFound
	}
	if err != nil {
		return donationports.DonationRecord{}, s.logError("funding_sqlite_get_donation_failed", err)
	}
	return record, nil
}

func (s *Store) ListDonations(ctx context.Context) ([]donationports.DonationRecord, error) {
	return s.queryDonations(ctx, donationJoinSelect+" ORDER BY d.id ASC")
}

func (s *Store) ListDonationsByDonor(ctx context.Context, donorID int64) ([]donationports.DonationRecord, error) {
	return s.queryDonations(ctx, donationJoinSelect+" WHERE d.donor_id = ? ORDER BY d.id ASC", donorID)
}

func (s *Store) ListDonationsBySourceTag(ctx context.Context, sourceTag string) ([]donationports.DonationRecord, error) {
	return s.queryDonations(ctx, donationJoinSelect+" WHERE u.source_tag = ? ORDER BY d.id ASC", sourceTag)
}

func (s *Store) GetDonationBalance(ctx context.Context, donationID int64) (donationports.Balance, error) {
	var amount, allocated decimal.Decimal
	err := s.db.QueryRowContext(ctx, `
		SELECT d.amount,
			COALESCE((SELECT SUM(a.amount_allocated) FROM allocations AS a
				WHERE a.donation_id = d.id AND a.status <> 'cancelled'), 0)
		FROM donations AS d WHERE d.id = ?`, donationID).Scan(&amount, &allocated)
	if errors.Is(err, sql.ErrNoRows) {
		return donationports.Balance{}, domainerrors.ErrDonationNotFound
	}
	if err != nil {
		return donationports.Balance{}, s.logError("funding_sqlite_get_balance_failed", err)
	}
	return donationports.Balance{
		Amount:    amount,
		Allocated: allocated,
		Remaining: amount.Sub(allocated),
	}, nil
}

func (s *Store) DonationStats(ctx context.Context) (donationports.Stats, error) {
	stats := donationports.Stats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0), COUNT(DISTINCT donor_id)
		FROM donations WHERE status = 'completed'`).Scan(&stats.TotalDonations, &stats.TotalAmount, &stats.UniqueDonors)
	if err != nil {
		return donationports.Stats{}, s.logError("funding_sqlite_donation_stats_failed", err)
	}
	if stats.TotalDonations > 0 {
		stats.AverageAmount = stats.TotalAmount.
			Div(decimal.NewFromInt(int64(stats.TotalDonations))).Round(2)
	}
	return stats, nil
}

// --- request ledger ---

func (s *Store) CreateRequest(ctx context.Context, request entities.BudgetRequest) (entities.BudgetRequest, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO budget_requests (requester_id, requester_type, event_name, event_description,
			amount_requested, event_date, venue, expected_attendees, category, justification,
			status, admin_notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		request.RequesterID, string(request.RequesterType), request.EventName, request.EventDescription,
		request.AmountRequested.String(), optionalMillis(request.EventDate), request.Venue,
		request.ExpectedAttendees, request.Category, request.Justification,
		string(request.Status), request.AdminNotes,
		request.CreatedAt.UTC().UnixMilli(), request.UpdatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return entities.BudgetRequest{}, s.logError("funding_sqlite_create_request_failed", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return entities.BudgetRequest{}, s.logError("funding_sqlite_create_request_id_failed", err)
	}
	request.ID = id
	return request, nil
}

const requestJoinSelect = `
	SELECT br.id, br.requester_id, br.requester_type, br.event_name, br.event_description,
		br.amount_requested, br.event_date, br.venue, br.expected_attendees, br.category,
		br.justification, br.status, br.admin_notes, br.created_at, br.updated_at,
		COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.department, ''), COALESCE(u.student_id, '')
	FROM budget_requests AS br
	LEFT JOIN users AS u ON u.id = br.requester_id`

func (s *Store) GetRequest(ctx context.Context, requestID int64) (requestports.RequestRecord, error) {
	row := s.db.QueryRowContext(ctx, requestJoinSelect+" WHERE br.id = ?", requestID)
	record, err := scanRequestRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return requestports.RequestRecord{}, domainerrors.ErrRequestNotFound
	}
	if err != nil {
		return requestports.RequestRecord{}, s.logError("funding_sqlite_get_request_failed", err)
	}
	return record, nil
}

func (s *Store) ListRequests(ctx context.Context) ([]requestports.RequestRecord, error) {
	return s.queryRequests(ctx, requestJoinSelect+" ORDER BY br.id ASC")
}

func (s *Store) ListRequestsByStatus(ctx context.Context, status entities.RequestStatus) ([]requestports.RequestRecord, error) {
	return s.queryRequests(ctx, requestJoinSelect+" WHERE br.status = ? ORDER BY br.id ASC", string(status))
}

func (s *Store) ListRequestsByRequester(ctx context.Context, requesterID int64) ([]requestports.RequestRecord, error) {
	return s.queryRequests(ctx, requestJoinSelect+" WHERE br.requester_id = ? ORDER BY br.id ASC", requesterID)
}

func (s *Store) UpdateRequest(ctx context.Context, request entities.BudgetRequest) (entities.BudgetRequest, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE budget_requests
		SET event_name = ?, event_description = ?, amount_requested = ?, event_date = ?,
			venue = ?, expected_attendees = ?, category = ?, justification = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		request.EventName, request.EventDescription, request.AmountRequested.String(),
		optionalMillis(request.EventDate), request.Venue, request.ExpectedAttendees,
		request.Category, request.Justification, request.UpdatedAt.UTC().UnixMilli(),
		request.ID,
	)
	if err != nil {
		return entities.BudgetRequest{}, s.logError("funding_sqlite_update_request_failed", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return entities.BudgetRequest{}, s.requestMissingOrLocked(ctx, request.ID)
	}
	record, err := s.GetRequest(ctx, request.ID)
	if err != nil {
		return entities.BudgetRequest{}, err
	}
	return record.Request, nil
}

func (s *Store) DeleteRequest(ctx context.Context, requestID int64) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM budget_requests WHERE id = ? AND status = 'pending'", requestID)
	if err != nil {
		return s.logError("funding_sqlite_delete_request_failed", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return s.requestMissingOrLocked(ctx, requestID)
	}
	return nil
}

func (s *Store) DecideRequest(ctx context.Context, requestID int64, status entities.RequestStatus, adminNotes string, decidedAt time.Time) (entities.BudgetRequest, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE budget_requests SET status = ?, admin_notes = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		string(status), adminNotes, decidedAt.UTC().UnixMilli(), requestID,
	)
	if err != nil {
		return entities.BudgetRequest{}, s.logError("funding_sqlite_decide_request_failed", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return entities.BudgetRequest{}, s.requestMissingOrLocked(ctx, requestID)
	}
	record, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return entities.BudgetRequest{}, err
	}
	return record.Request, nil
}

func (s *Store) RequestStats(ctx context.Context) (requestports.Stats, error) {
	stats := requestports.Stats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount_requested), 0),
			SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END),
			COUNT(DISTINCT requester_id)
		FROM budget_requests`).Scan(
		&stats.TotalRequests, &stats.TotalRequested,
		&stats.PendingRequests, &stats.ApprovedRequests, &stats.RejectedRequests,
		&stats.UniqueRequesters,
	)
	if err != nil {
		return requestports.Stats{}, s.logError("funding_sqlite_request_stats_failed", err)
	}
	if stats.TotalRequests > 0 {
		stats.AverageRequested = stats.TotalRequested.
			Div(decimal.NewFromInt(int64(stats.TotalRequests))).Round(2)
	}
	return stats, nil
}

// --- allocation engine ---

// CreateAllocation runs the funds check and the insert inside one immediate
// transaction. SQLite admits a single writer, so the check can never race a
// concurrent insert against the same donation.
func (s *Store) CreateAllocation(ctx context.Context, allocation entities.Allocation) (entities.Allocation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return entities.Allocation{}, s.logError("funding_sqlite_create_allocation_begin_failed", err)
	}
	defer tx.Rollback()

	var amount decimal.Decimal
	err = tx.QueryRowContext(ctx, "SELECT amount FROM donations WHERE id = ?", allocation.DonationID).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Allocation{}, domainerrors.ErrDonationNotFound
	}
	if err != nil {
		return entities.Allocation{}, s.logError("funding_sqlite_create_allocation_donation_failed", err)
	}

	var requestCount int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM budget_requests WHERE id = ?", allocation.RequestID).Scan(&requestCount); err != nil {
		return entities.Allocation{}, s.logError("funding_sqlite_create_allocation_request_failed", err)
	}
	if requestCount == 0 {
		return entities.Allocation{}, domainerrors.ErrRequestNotFound
	}

	var allocated decimal.Decimal
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_allocated), 0) FROM allocations
		WHERE donation_id = ? AND status <> 'cancelled'`, allocation.DonationID).Scan(&allocated); err != nil {
		return entities.Allocation{}, s.logError("funding_sqlite_create_allocation_sum_failed", err)
	}
	remaining := amount.Sub(allocated)
	if allocation.AmountAllocated.GreaterThan(remaining) {
		return entities.Allocation{}, &domainerrors.InsufficientFundsError{
			Remaining: remaining,
			Requested: allocation.AmountAllocated,
		}
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO allocations (donation_id, request_id, amount_allocated, beneficiary_type,
			reason, notes, status, allocated_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		allocation.DonationID, allocation.RequestID, allocation.AmountAllocated.String(),
		string(allocation.BeneficiaryType), allocation.Reason, allocation.Notes,
		string(allocation.Status), allocation.AllocatedBy,
		allocation.CreatedAt.UTC().UnixMilli(), allocation.UpdatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return entities.Allocation{}, s.logError("funding_sqlite_create_allocation_insert_failed", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return entities.Allocation{}, s.logError("funding_sqlite_create_allocation_id_failed", err)
	}
	if err := tx.Commit(); err != nil {
		return entities.Allocation{}, s.logError("funding_sqlite_create_allocation_commit_failed", err)
	}
	allocation.ID = id
	return allocation, nil
}

const allocationJoinSelect = `
	SELECT a.id, a.donation_id, a.request_id, a.amount_allocated, a.beneficiary_type,
		a.reason, a.notes, a.status, a.allocated_by, a.created_at, a.updated_at,
		COALESCE(d.purpose, ''), COALESCE(du.name, ''), COALESCE(du.source_tag, ''),
		COALESCE(br.event_name, ''), COALESCE(ru.name, ''), COALESCE(au.name, '')
	FROM allocations AS a
	LEFT JOIN donations AS d ON d.id = a.donation_id
	LEFT JOIN users AS du ON du.id = d.donor_id
	LEFT JOIN budget_requests AS br ON br.id = a.request_id
	LEFT JOIN users AS ru ON ru.id = br.requester_id
	LEFT JOIN users AS au ON au.id = a.allocated_by`

func (s *Store) GetAllocation(ctx context.Context, allocationID int64) (allocationports.AllocationRecord, error) {
	row := s.db.QueryRowContext(ctx, allocationJoinSelect+" WHERE a.id = ?", allocationID)
	record, err := scanAllocationRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return allocationports.AllocationRecord{}, domainerrors.ErrAllocationNotFound
	}
	if err != nil {
		return allocationports.AllocationRecord{}, s.logError("funding_sqlite_get_allocation_failed", err)
	}
	return record, nil
}

func (s *Store) ListAllocations(ctx context.Context) ([]allocationports.AllocationRecord, error) {
	return s.queryAllocations(ctx, allocationJoinSelect+" ORDER BY a.id ASC")
}

func (s *Store) ListAllocationsByDonation(ctx context.Context, donationID int64) ([]allocationports.AllocationRecord, error) {
	return s.queryAllocations(ctx, allocationJoinSelect+" WHERE a.donation_id = ? ORDER BY a.id ASC", donationID)
}

func (s *Store) ListAllocationsByRequest(ctx context.Context, requestID int64) ([]allocationports.AllocationRecord, error) {
	return s.queryAllocations(ctx, allocationJoinSelect+" WHERE a.request_id = ? ORDER BY a.id ASC", requestID)
}

func (s *Store) ListAllocationsByBeneficiaryType(ctx context.Context, beneficiaryType entities.Role) ([]allocationports.AllocationRecord, error) {
	return s.queryAllocations(ctx, allocationJoinSelect+" WHERE a.beneficiary_type = ? ORDER BY a.id ASC", string(beneficiaryType))
}

// ListAllocationsBySourceTag filters on the donation owner's source tag in
// the query itself; the donor-privacy boundary does not depend on the caller.
func (s *Store) ListAllocationsBySourceTag(ctx context.Context, sourceTag string) ([]allocationports.AllocationRecord, error) {
	return s.queryAllocations(ctx, allocationJoinSelect+" WHERE du.source_tag = ? ORDER BY a.id ASC", sourceTag)
}

func (s *Store) SetAllocationStatus(ctx context.Context, allocationID int64, from, to entities.AllocationStatus, updatedAt time.Time) (entities.Allocation, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE allocations SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
		string(to), updatedAt.UTC().UnixMilli(), allocationID, string(from),
	)
	if err != nil {
		return entities.Allocation{}, s.logError("funding_sqlite_set_allocation_status_failed", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		var count int
		if err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM allocations WHERE id = ?", allocationID).Scan(&count); err != nil {
			return entities.Allocation{}, s.logError("funding_sqlite_set_allocation_status_check_failed", err)
		}
		if count == 0 {
			return entities.Allocation{}, domainerrors.ErrAllocationNotFound
		}
		return entities.Allocation{}, domainerrors.ErrInvalidTransition
	}
	record, err := s.GetAllocation(ctx, allocationID)
	if err != nil {
		return entities.Allocation{}, err
	}
	return record.Allocation, nil
}

func (s *Store) AllocationStats(ctx context.Context) (allocationports.Stats, error) {
	stats := allocationports.Stats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN amount_allocated ELSE 0 END), 0),
			COUNT(DISTINCT CASE WHEN status <> 'cancelled' THEN beneficiary_type END),
			COUNT(DISTINCT CASE WHEN status <> 'cancelled' THEN donation_id END),
			COALESCE(SUM(CASE WHEN status = 'allocated' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'disbursed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0)
		FROM allocations`).Scan(
		&stats.TotalAllocations, &stats.TotalAllocated,
		&stats.UniqueBeneficiaryTypes, &stats.DonationsWithAllocations,
		&stats.ActiveAllocations, &stats.DisbursedAllocations,
		&stats.CompletedAllocations, &stats.CancelledAllocations,
	)
	if err != nil {
		return allocationports.Stats{}, s.logError("funding_sqlite_allocation_stats_failed", err)
	}
	if stats.TotalAllocations > 0 {
		stats.AverageAllocated = stats.TotalAllocated.
			Div(decimal.NewFromInt(int64(stats.TotalAllocations))).Round(2)
	}
	return stats, nil
}

// --- internals ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonationRecord(row rowScanner) (donationports.DonationRecord, error) {
	var (
		donation  entities.Donation
		createdAt int64
		record    donationports.DonationRecord
	)
	err := row.Scan(
		&donation.ID, &donation.DonorID, &donation.Amount, &donation.Purpose, &donation.Message,
		&donation.DonationType, &donation.Status, &donation.ReceiptNumber, &createdAt,
		&record.DonorName, &record.DonorEmail, &record.DonorSourceTag,
	)
	if err != nil {
		return donationports.DonationRecord{}, err
	}
	donation.CreatedAt = time.UnixMilli(createdAt).UTC()
	record.Donation = donation
	return record, nil
}

func (s *Store) queryDonations(ctx context.Context, query string, args ...any) ([]donationports.DonationRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.logError("funding_sqlite_list_donations_failed", err)
	}
	defer rows.Close()

	records := make([]donationports.DonationRecord, 0)
	for rows.Next() {
		record, err := scanDonationRecord(rows)
		if err != nil {
			return nil, s.logError("funding_sqlite_scan_donation_failed", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, s.logError("funding_sqlite_iterate_donations_failed", err)
	}
	return records, nil
}

func scanRequestRecord(row rowScanner) (requestports.RequestRecord, error) {
	var (
		request   entities.BudgetRequest
		eventDate sql.NullInt64
		createdAt int64
		updatedAt int64
		record    requestports.RequestRecord
	)
	err := row.Scan(
		&request.ID, &request.RequesterID, &request.RequesterType, &request.EventName,
		&request.EventDescription, &request.AmountRequested, &eventDate, &request.Venue,
		&request.ExpectedAttendees, &request.Category, &request.Justification,
		&request.Status, &request.AdminNotes, &createdAt, &updatedAt,
		&record.RequesterName, &record.RequesterEmail, &record.RequesterDept, &record.RequesterStudentID,
	)
	if err != nil {
		return requestports.RequestRecord{}, err
	}
	if eventDate.Valid {
		parsed := time.UnixMilli(eventDate.Int64).UTC()
		request.EventDate = &parsed
	}
	request.CreatedAt = time.UnixMilli(createdAt).UTC()
	request.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	record.Request = request
	return record, nil
}

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]requestports.RequestRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.logError("funding_sqlite_list_requests_failed", err)
	}
	defer rows.Close()

	records := make([]requestports.RequestRecord, 0)
	for rows.Next() {
		record, err := scanRequestRecord(rows)
		if err != nil {
			return nil, s.logError("funding_sqlite_scan_request_failed", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, s.logError("funding_sqlite_iterate_requests_failed", err)
	}
	return records, nil
}

func scanAllocationRecord(row rowScanner) (allocationports.AllocationRecord, error) {
	var (
		allocation entities.Allocation
		createdAt  int64
		updatedAt  int64
		record     allocationports.AllocationRecord
	)
	err := row.Scan(
		&allocation.ID, &allocation.DonationID, &allocation.RequestID, &allocation.AmountAllocated,
		&allocation.BeneficiaryType, &allocation.Reason, &allocation.Notes, &allocation.Status,
		&allocation.AllocatedBy, &createdAt, &updatedAt,
		&record.DonationPurpose, &record.DonorName, &record.DonorSourceTag,
		&record.EventName, &record.RequesterName, &record.AllocatorName,
	)
	if err != nil {
		return allocationports.AllocationRecord{}, err
	}
	allocation.CreatedAt = time.UnixMilli(createdAt).UTC()
	allocation.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	record.Allocation = allocation
	return record, nil
}

func (s *Store) queryAllocations(ctx context.Context, query string, args ...any) ([]allocationports.AllocationRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.logError("funding_sqlite_list_allocations_failed", err)
	}
	defer rows.Close()

	records := make([]allocationports.AllocationRecord, 0)
	for rows.Next() {
		record, err := scanAllocationRecord(rows)
		if err != nil {
			return nil, s.logError("funding_sqlite_scan_allocation_failed", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, s.logError("funding_sqlite_iterate_allocations_failed", err)
	}
	return records, nil
}

func (s *Store) requestMissingOrLocked(ctx context.Context, requestID int64) error {
	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM budget_requests WHERE id = ?", requestID).Scan(&count); err != nil {
		return s.logError("funding_sqlite_request_lock_check_failed", err)
	}
	if count == 0 {
		return domainerrors.ErrRequestNotFound
	}
	return domainerrors.ErrRequestLocked
}

func optionalMillis(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().UnixMilli()
}

func (s *Store) logError(event string, err error) error {
	s.logger.Error("funding sqlite operation failed",
		"event", event,
		"module", "funding/adapters",
		"layer", "adapter",
		"error", err.Error(),
	)
	return domainerrors.ErrStorageFailure
}

var _ donationports.Repository = (*Store)(nil)
var _ requestports.Repository = (*Store)(nil)
var _ allocationports.Repository = (*Store)(nil)
var _ viewports.Repository = (*Store)(nil)
