package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"clearfund/contexts/funding/domain/entities"
	viewports "clearfund/contexts/funding/transparency-view/ports"
)

// FundingTrail builds the donor to donation to allocation to request chain
// in three passes: linked rows, then donations and requests with no
// allocation (outer-join semantics).
func (s *Store) FundingTrail(ctx context.Context) ([]viewports.TrailEntry, error) {
	entries := make([]viewports.TrailEntry, 0)

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.amount_allocated, a.status, a.created_at,
			d.id, d.amount, COALESCE(d.purpose, ''), COALESCE(du.name, ''), COALESCE(du.source_tag, ''), d.created_at,
			br.id, COALESCE(br.event_name, ''), COALESCE(ru.name, ''), COALESCE(br.requester_type, ''),
			br.amount_requested, br.created_at
		FROM allocations AS a
		LEFT JOIN donations AS d ON d.id = a.donation_id
		LEFT JOIN users AS du ON du.id = d.donor_id
		LEFT JOIN budget_requests AS br ON br.id = a.request_id
		LEFT JOIN users AS ru ON ru.id = br.requester_id
		ORDER BY a.id ASC`)
	if err != nil {
		return nil, s.logError("funding_sqlite_trail_linked_failed", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			entry            viewports.TrailEntry
			allocationID     int64
			amountAllocated  decimal.Decimal
			allocationStatus string
			allocatedAt      int64
			donationID       sql.NullInt64
			donationAmount   decimal.NullDecimal
			donatedAt        sql.NullInt64
			requestID        sql.NullInt64
			amountRequested  decimal.NullDecimal
			requestedAt      sql.NullInt64
		)
		if err := rows.Scan(
			&allocationID, &amountAllocated, &allocationStatus, &allocatedAt,
			&donationID, &donationAmount, &entry.DonationPurpose, &entry.DonorName, &entry.DonorSourceTag, &donatedAt,
			&requestID, &entry.EventName, &entry.RequesterName, &entry.RequesterType,
			&amountRequested, &requestedAt,
		); err != nil {
			return nil, s.logError("funding_sqlite_trail_scan_failed", err)
		}
		entry.AllocationID = &allocationID
		entry.AmountAllocated = &amountAllocated
		entry.AllocationStatus = entities.AllocationStatus(allocationStatus)
		entry.AllocatedAt = millisPtr(sql.NullInt64{Int64: allocatedAt, Valid: true})
		if donationID.Valid {
			entry.DonationID = &donationID.Int64
		}
		if donationAmount.Valid {
			entry.DonationAmount = &donationAmount.Decimal
		}
		entry.DonatedAt = millisPtr(donatedAt)
		if requestID.Valid {
			entry.RequestID = &requestID.Int64
		}
		if amountRequested.Valid {
			entry.AmountRequested = &amountRequested.Decimal
		}
		entry.RequestedAt = millisPtr(requestedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, s.logError("funding_sqlite_trail_iterate_failed", err)
	}

	unlinked, err := s.unlinkedDonations(ctx)
	if err != nil {
		return nil, err
	}
	entries = append(entries, unlinked...)

	unlinked, err = s.unlinkedRequests(ctx)
	if err != nil {
		return nil, err
	}
	entries = append(entries, unlinked...)
	return entries, nil
}

func (s *Store) unlinkedDonations(ctx context.Context) ([]viewports.TrailEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.amount, COALESCE(d.purpose, ''), COALESCE(du.name, ''), COALESCE(du.source_tag, ''), d.created_at
		FROM donations AS d
		LEFT JOIN users AS du ON du.id = d.donor_id
		WHERE NOT EXISTS (SELECT 1 FROM allocations AS a WHERE a.donation_id = d.id)
		ORDER BY d.id ASC`)
	if err != nil {
		return nil, s.logError("funding_sqlite_trail_unlinked_donations_failed", err)
	}
	defer rows.Close()

	entries := make([]viewports.TrailEntry, 0)
	for rows.Next() {
		var (
			entry     viewports.TrailEntry
			id        int64
			amount    decimal.Decimal
			createdAt int64
		)
		if err := rows.Scan(&id, &amount, &entry.DonationPurpose, &entry.DonorName, &entry.DonorSourceTag, &createdAt); err != nil {
			return nil, s.logError("funding_sqlite_trail_unlinked_donations_scan_failed", err)
		}
		entry.DonationID = &id
		entry.DonationAmount = &amount
		entry.DonatedAt = millisPtr(sql.NullInt64{Int64: createdAt, Valid: true})
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, s.logError("funding_sqlite_trail_unlinked_donations_iterate_failed", err)
	}
	return entries, nil
}

func (s *Store) unlinkedRequests(ctx context.Context) ([]viewports.TrailEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT br.id, COALESCE(br.event_name, ''), COALESCE(ru.name, ''), COALESCE(br.requester_type, ''),
			br.amount_requested, br.created_at
		FROM budget_requests AS br
		LEFT JOIN users AS ru ON ru.id = br.requester_id
		WHERE NOT EXISTS (SELECT 1 FROM allocations AS a WHERE a.request_id = br.id)
		ORDER BY br.id ASC`)
	if err != nil {
		return nil, s.logError("funding_sqlite_trail_unlinked_requests_failed", err)
	}
	defer rows.Close()

	entries := make([]viewports.TrailEntry, 0)
	for rows.Next() {
		var (
			entry     viewports.TrailEntry
			id        int64
			amount    decimal.Decimal
			createdAt int64
		)
		if err := rows.Scan(&id, &entry.EventName, &entry.RequesterName, &entry.RequesterType, &amount, &createdAt); err != nil {
			return nil, s.logError("funding_sqlite_trail_unlinked_requests_scan_failed", err)
		}
		entry.RequestID = &id
		entry.AmountRequested = &amount
		entry.RequestedAt = millisPtr(sql.NullInt64{Int64: createdAt, Valid: true})
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, s.logError("funding_sqlite_trail_unlinked_requests_iterate_failed", err)
	}
	return entries, nil
}

func (s *Store) DonationSummaries(ctx context.Context) ([]viewports.DonationSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, COALESCE(u.name, ''), COALESCE(u.source_tag, ''), COALESCE(d.purpose, ''),
			d.donation_type, d.amount,
			COALESCE(SUM(CASE WHEN a.status <> 'cancelled' THEN a.amount_allocated ELSE 0 END), 0),
			SUM(CASE WHEN a.id IS NOT NULL AND a.status <> 'cancelled' THEN 1 ELSE 0 END),
			d.created_at
		FROM donations AS d
		LEFT JOIN users AS u ON u.id = d.donor_id
		LEFT JOIN allocations AS a ON a.donation_id = d.id
		GROUP BY d.id, u.name, u.source_tag, d.purpose, d.donation_type, d.amount, d.created_at
		ORDER BY d.id ASC`)
	if err != nil {
		return nil, s.logError("funding_sqlite_donation_summaries_failed", err)
	}
	defer rows.Close()

	summaries := make([]viewports.DonationSummary, 0)
	for rows.Next() {
		var (
			summary   viewports.DonationSummary
			createdAt int64
		)
		if err := rows.Scan(
			&summary.DonationID, &summary.DonorName, &summary.DonorSourceTag, &summary.Purpose,
			&summary.DonationType, &summary.Amount, &summary.Allocated, &summary.AllocationCount,
			&createdAt,
		); err != nil {
			return nil, s.logError("funding_sqlite_donation_summaries_scan_failed", err)
		}
		summary.Remaining = summary.Amount.Sub(summary.Allocated)
		summary.CreatedAt = time.UnixMilli(createdAt).UTC()
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, s.logError("funding_sqlite_donation_summaries_iterate_failed", err)
	}
	return summaries, nil
}

func (s *Store) RequestSummaries(ctx context.Context) ([]viewports.RequestSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT br.id, COALESCE(u.name, ''), br.requester_type, br.event_name, br.amount_requested,
			COALESCE(SUM(CASE WHEN a.status <> 'cancelled' THEN a.amount_allocated ELSE 0 END), 0),
			SUM(CASE WHEN a.id IS NOT NULL AND a.status <> 'cancelled' THEN 1 ELSE 0 END),
			br.status, br.created_at
		FROM budget_requests AS br
		LEFT JOIN users AS u ON u.id = br.requester_id
		LEFT JOIN allocations AS a ON a.request_id = br.id
		GROUP BY br.id, u.name, br.requester_type, br.event_name, br.amount_requested, br.status, br.created_at
		ORDER BY br.id ASC`)
	if err != nil {
		return nil, s.logError("funding_sqlite_request_summaries_failed", err)
	}
	defer rows.Close()

	summaries := make([]viewports.RequestSummary, 0)
	for rows.Next() {
		var (
			summary   viewports.RequestSummary
			createdAt int64
		)
		if err := rows.Scan(
			&summary.RequestID, &summary.RequesterName, &summary.RequesterType, &summary.EventName,
			&summary.AmountRequested, &summary.Allocated, &summary.AllocationCount,
			&summary.Status, &createdAt,
		); err != nil {
			return nil, s.logError("funding_sqlite_request_summaries_scan_failed", err)
		}
		summary.EffectiveStatus = string(summary.Status)
		if summary.Allocated.IsPositive() {
			summary.EffectiveStatus = "allocated"
		}
		summary.CreatedAt = time.UnixMilli(createdAt).UTC()
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, s.logError("funding_sqlite_request_summaries_iterate_failed", err)
	}
	return summaries, nil
}

func (s *Store) Overview(ctx context.Context) (viewports.Overview, error) {
	overview := viewports.Overview{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM donations),
			(SELECT COALESCE(SUM(amount), 0) FROM donations),
			(SELECT COUNT(DISTINCT donor_id) FROM donations),
			(SELECT COUNT(*) FROM budget_requests),
			(SELECT COALESCE(SUM(amount_requested), 0) FROM budget_requests),
			(SELECT COUNT(*) FROM budget_requests WHERE status = 'pending'),
			(SELECT COUNT(*) FROM budget_requests WHERE status = 'approved'),
			(SELECT COUNT(*) FROM allocations WHERE status <> 'cancelled'),
			(SELECT COALESCE(SUM(amount_allocated), 0) FROM allocations WHERE status <> 'cancelled')`).Scan(
		&overview.TotalDonations, &overview.TotalDonated, &overview.UniqueDonors,
		&overview.TotalRequests, &overview.TotalRequested,
		&overview.PendingRequests, &overview.ApprovedRequests,
		&overview.TotalAllocations, &overview.TotalAllocated,
	)
	if err != nil {
		return viewports.Overview{}, s.logError("funding_sqlite_overview_failed", err)
	}
	overview.TotalRemaining = overview.TotalDonated.Sub(overview.TotalAllocated)
	return overview, nil
}

func millisPtr(value sql.NullInt64) *time.Time {
	if !value.Valid {
		return nil
	}
	timestamp := time.UnixMilli(value.Int64).UTC()
	return &timestamp
}
