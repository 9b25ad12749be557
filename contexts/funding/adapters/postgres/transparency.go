package postgresadapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"clearfund/contexts/funding/domain/entities"
	viewports "clearfund/contexts/funding/transparency-view/ports"
)

// FundingTrail walks the donor to donation to allocation to request chain.
// Donations and requests without an allocation still produce rows; absence
// of a link is a displayable state.
func (r *Repository) FundingTrail(ctx context.Context) ([]viewports.TrailEntry, error) {
	type trailRow struct {
		AllocationID     *int64           `gorm:"column:allocation_id"`
		AmountAllocated  *decimal.Decimal `gorm:"column:amount_allocated"`
		AllocationStatus string           `gorm:"column:allocation_status"`
		AllocatedAt      *time.Time       `gorm:"column:allocated_at"`
		DonationID       *int64           `gorm:"column:donation_id"`
		DonationAmount   *decimal.Decimal `gorm:"column:donation_amount"`
		DonationPurpose  string           `gorm:"column:donation_purpose"`
		DonorName        string           `gorm:"column:donor_name"`
		DonorSourceTag   string           `gorm:"column:donor_source_tag"`
		DonatedAt        *time.Time       `gorm:"column:donated_at"`
		RequestID        *int64           `gorm:"column:request_id"`
		EventName        string           `gorm:"column:event_name"`
		RequesterName    string           `gorm:"column:requester_name"`
		RequesterType    string           `gorm:"column:requester_type"`
		AmountRequested  *decimal.Decimal `gorm:"column:amount_requested"`
		RequestedAt      *time.Time       `gorm:"column:requested_at"`
	}

	var rows []trailRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.id AS allocation_id, a.amount_allocated, a.status AS allocation_status, a.created_at AS allocated_at,
			d.id AS donation_id, d.amount AS donation_amount, d.purpose AS donation_purpose,
			du.name AS donor_name, du.source_tag AS donor_source_tag, d.created_at AS donated_at,
			br.id AS request_id, br.event_name, ru.name AS requester_name, br.requester_type,
			br.amount_requested, br.created_at AS requested_at
		FROM allocations AS a
		LEFT JOIN donations AS d ON d.id = a.donation_id
		LEFT JOIN users AS du ON du.id = d.donor_id
		LEFT JOIN budget_requests AS br ON br.id = a.request_id
		LEFT JOIN users AS ru ON ru.id = br.requester_id
		UNION ALL
		SELECT NULL, NULL, '', NULL,
			d.id, d.amount, d.purpose, du.name, du.source_tag, d.created_at,
			NULL, '', '', '', NULL, NULL
		FROM donations AS d
		LEFT JOIN users AS du ON du.id = d.donor_id
		WHERE NOT EXISTS (SELECT 1 FROM allocations AS a WHERE a.donation_id = d.id)
		UNION ALL
		SELECT NULL, NULL, '', NULL,
			NULL, NULL, '', '', '', NULL,
			br.id, br.event_name, ru.name, br.requester_type, br.amount_requested, br.created_at
		FROM budget_requests AS br
		LEFT JOIN users AS ru ON ru.id = br.requester_id
		WHERE NOT EXISTS (SELECT 1 FROM allocations AS a WHERE a.request_id = br.id)
		ORDER BY allocation_id NULLS LAST, donation_id NULLS LAST, request_id NULLS LAST
	`).Scan(&rows).Error
	if err != nil {
		return nil, r.logError("funding_repo_funding_trail_failed", err)
	}

	entries := make([]viewports.TrailEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, viewports.TrailEntry{
			AllocationID:     row.AllocationID,
			AmountAllocated:  row.AmountAllocated,
			AllocationStatus: entities.AllocationStatus(row.AllocationStatus),
			AllocatedAt:      normalizeOptionalTime(row.AllocatedAt),
			DonationID:       row.DonationID,
			DonationAmount:   row.DonationAmount,
			DonationPurpose:  row.DonationPurpose,
			DonorName:        row.DonorName,
			DonorSourceTag:   row.DonorSourceTag,
			DonatedAt:        normalizeOptionalTime(row.DonatedAt),
			RequestID:        row.RequestID,
			EventName:        row.EventName,
			RequesterName:    row.RequesterName,
			RequesterType:    entities.Role(row.RequesterType),
			AmountRequested:  row.AmountRequested,
			RequestedAt:      normalizeOptionalTime(row.RequestedAt),
		})
	}
	return entries, nil
}

func (r *Repository) DonationSummaries(ctx context.Context) ([]viewports.DonationSummary, error) {
	type summaryRow struct {
		DonationID      int64           `gorm:"column:donation_id"`
		DonorName       string          `gorm:"column:donor_name"`
		DonorSourceTag  string          `gorm:"column:donor_source_tag"`
		Purpose         string          `gorm:"column:purpose"`
		DonationType    string          `gorm:"column:donation_type"`
		Amount          decimal.Decimal `gorm:"column:amount"`
		Allocated       decimal.Decimal `gorm:"column:allocated"`
		AllocationCount int             `gorm:"column:allocation_count"`
		CreatedAt       time.Time       `gorm:"column:created_at"`
	}

	var rows []summaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT d.id AS donation_id, u.name AS donor_name, u.source_tag AS donor_source_tag,
			d.purpose, d.donation_type, d.amount,
			COALESCE(SUM(a.amount_allocated) FILTER (WHERE a.status <> 'cancelled'), 0) AS allocated,
			COUNT(a.id) FILTER (WHERE a.status <> 'cancelled') AS allocation_count,
			d.created_at
		FROM donations AS d
		LEFT JOIN users AS u ON u.id = d.donor_id
		LEFT JOIN allocations AS a ON a.donation_id = d.id
		GROUP BY d.id, u.name, u.source_tag, d.purpose, d.donation_type, d.amount, d.created_at
		ORDER BY d.id ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, r.logError("funding_repo_donation_summaries_failed", err)
	}

	summaries := make([]viewports.DonationSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, viewports.DonationSummary{
			DonationID:      row.DonationID,
			DonorName:       row.DonorName,
			DonorSourceTag:  row.DonorSourceTag,
			Purpose:         row.Purpose,
			DonationType:    entities.DonationType(row.DonationType),
			Amount:          row.Amount,
			Allocated:       row.Allocated,
			Remaining:       row.Amount.Sub(row.Allocated),
			AllocationCount: row.AllocationCount,
			CreatedAt:       row.CreatedAt.UTC(),
		})
	}
	return summaries, nil
}

func (r *Repository) RequestSummaries(ctx context.Context) ([]viewports.RequestSummary, error) {
	type summaryRow struct {
		RequestID       int64           `gorm:"column:request_id"`
		RequesterName   string          `gorm:"column:requester_name"`
		RequesterType   string          `gorm:"column:requester_type"`
		EventName       string          `gorm:"column:event_name"`
		AmountRequested decimal.Decimal `gorm:"column:amount_requested"`
		Allocated       decimal.Decimal `gorm:"column:allocated"`
		Status          string          `gorm:"column:status"`
		AllocationCount int             `gorm:"column:allocation_count"`
		CreatedAt       time.Time       `gorm:"column:created_at"`
	}

	var rows []summaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT br.id AS request_id, u.name AS requester_name, br.requester_type,
			br.event_name, br.amount_requested,
			COALESCE(SUM(a.amount_allocated) FILTER (WHERE a.status <> 'cancelled'), 0) AS allocated,
			COUNT(a.id) FILTER (WHERE a.status <> 'cancelled') AS allocation_count,
			br.status, br.created_at
		FROM budget_requests AS br
		LEFT JOIN users AS u ON u.id = br.requester_id
		LEFT JOIN allocations AS a ON a.request_id = br.id
		GROUP BY br.id, u.name, br.requester_type, br.event_name, br.amount_requested, br.status, br.created_at
		ORDER BY br.id ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, r.logError("funding_repo_request_summaries_failed", err)
	}

	summaries := make([]viewports.RequestSummary, 0, len(rows))
	for _, row := range rows {
		effective := row.Status
		if row.Allocated.IsPositive() {
			effective = "allocated"
		}
		summaries = append(summaries, viewports.RequestSummary{
			RequestID:       row.RequestID,
			RequesterName:   row.RequesterName,
			RequesterType:   entities.Role(row.RequesterType),
			EventName:       row.EventName,
			AmountRequested: row.AmountRequested,
			Allocated:       row.Allocated,
			Status:          entities.RequestStatus(row.Status),
			EffectiveStatus: effective,
			AllocationCount: row.AllocationCount,
			CreatedAt:       row.CreatedAt.UTC(),
		})
	}
	return summaries, nil
}

func (r *Repository) Overview(ctx context.Context) (viewports.Overview, error) {
	var row struct {
		TotalDonations   int             `gorm:"column:total_donations"`
		TotalDonated     decimal.Decimal `gorm:"column:total_donated"`
		UniqueDonors     int             `gorm:"column:unique_donors"`
		TotalRequests    int             `gorm:"column:total_requests"`
		TotalRequested   decimal.Decimal `gorm:"column:total_requested"`
		PendingRequests  int             `gorm:"column:pending_requests"`
		ApprovedRequests int             `gorm:"column:approved_requests"`
		TotalAllocations int             `gorm:"column:total_allocations"`
		TotalAllocated   decimal.Decimal `gorm:"column:total_allocated"`
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM donations) AS total_donations,
			(SELECT COALESCE(SUM(amount), 0) FROM donations) AS total_donated,
			(SELECT COUNT(DISTINCT donor_id) FROM donations) AS unique_donors,
			(SELECT COUNT(*) FROM budget_requests) AS total_requests,
			(SELECT COALESCE(SUM(amount_requested), 0) FROM budget_requests) AS total_requested,
			(SELECT COUNT(*) FROM budget_requests WHERE status = 'pending') AS pending_requests,
			(SELECT COUNT(*) FROM budget_requests WHERE status = 'approved') AS approved_requests,
			(SELECT COUNT(*) FROM allocations WHERE status <> 'cancelled') AS total_allocations,
			(SELECT COALESCE(SUM(amount_allocated), 0) FROM allocations WHERE status <> 'cancelled') AS total_allocated
	`).Scan(&row).Error
	if err != nil {
		return viewports.Overview{}, r.logError("funding_repo_overview_failed", err)
	}
	return viewports.Overview{
		TotalDonations:   row.TotalDonations,
		TotalDonated:     row.TotalDonated,
		TotalRequests:    row.TotalRequests,
		TotalRequested:   row.TotalRequested,
		TotalAllocations: row.TotalAllocations,
		TotalAllocated:   row.TotalAllocated,
		TotalRemaining:   row.TotalDonated.Sub(row.TotalAllocated),
		PendingRequests:  row.PendingRequests,
		ApprovedRequests: row.ApprovedRequests,
		UniqueDonors:     row.UniqueDonors,
	}, nil
}

var _ viewports.Repository = (*Repository)(nil)
