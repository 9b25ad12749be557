package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clearfund/contexts/funding/domain/entities"
	"clearfund/contexts/funding/transparency-view/application"
	"clearfund/contexts/funding/transparency-view/ports"
	httptransport "clearfund/contexts/funding/transparency-view/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) TrailHandler(
	ctx context.Context,
	caller entities.Caller,
) (httptransport.TrailResponse, error) {
	entries, err := h.Service.Trail(ctx, caller)
	if err != nil {
		return httptransport.TrailResponse{}, err
	}
	resp := httptransport.TrailResponse{
		Status: "success",
		Count:  len(entries),
		Data:   make([]httptransport.TrailEntryDTO, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Data = append(resp.Data, trailEntryToDTO(entry))
	}
	return resp, nil
}

func (h Handler) DonationSummariesHandler(
	ctx context.Context,
	caller entities.Caller,
) (httptransport.DonationSummariesResponse, error) {
	summaries, err := h.Service.DonationSummaries(ctx, caller)
	if err != nil {
		return httptransport.DonationSummariesResponse{}, err
	}
	resp := httptransport.DonationSummariesResponse{
		Status: "success",
		Count:  len(summaries),
		Data:   make([]httptransport.DonationSummaryDTO, 0, len(summaries)),
	}
	for _, summary := range summaries {
		resp.Data = append(resp.Data, httptransport.DonationSummaryDTO{
			DonationID:      summary.DonationID,
			DonorName:       summary.DonorName,
			DonorSourceTag:  summary.DonorSourceTag,
			Purpose:         summary.Purpose,
			DonationType:    string(summary.DonationType),
			Amount:          summary.Amount,
			Allocated:       summary.Allocated,
			Remaining:       summary.Remaining,
			AllocationCount: summary.AllocationCount,
			CreatedAt:       summary.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (h Handler) RequestSummariesHandler(
	ctx context.Context,
	caller entities.Caller,
) (httptransport.RequestSummariesResponse, error) {
	summaries, err := h.Service.RequestSummaries(ctx, caller)
	if err != nil {
		return httptransport.RequestSummariesResponse{}, err
	}
	resp := httptransport.RequestSummariesResponse{
		Status: "success",
		Count:  len(summaries),
		Data:   make([]httptransport.RequestSummaryDTO, 0, len(summaries)),
	}
	for _, summary := range summaries {
		resp.Data = append(resp.Data, httptransport.RequestSummaryDTO{
			RequestID:       summary.RequestID,
			RequesterName:   summary.RequesterName,
			RequesterType:   string(summary.RequesterType),
			EventName:       summary.EventName,
			AmountRequested: summary.AmountRequested,
			Allocated:       summary.Allocated,
			Status:          string(summary.Status),
			EffectiveStatus: summary.EffectiveStatus,
			AllocationCount: summary.AllocationCount,
			CreatedAt:       summary.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (h Handler) OverviewHandler(
	ctx context.Context,
	caller entities.Caller,
) (httptransport.OverviewResponse, error) {
	overview, err := h.Service.Overview(ctx, caller)
	if err != nil {
		return httptransport.OverviewResponse{}, err
	}
	resp := httptransport.OverviewResponse{Status: "success"}
	resp.Data.TotalDonations = overview.TotalDonations
	resp.Data.TotalDonated = overview.TotalDonated
	resp.Data.TotalRequests = overview.TotalRequests
	resp.Data.TotalRequested = overview.TotalRequested
	resp.Data.TotalAllocations = overview.TotalAllocations
	resp.Data.TotalAllocated = overview.TotalAllocated
	resp.Data.TotalRemaining = overview.TotalRemaining
	resp.Data.PendingRequests = overview.PendingRequests
	resp.Data.ApprovedRequests = overview.ApprovedRequests
	resp.Data.UniqueDonors = overview.UniqueDonors
	return resp, nil
}

func trailEntryToDTO(entry ports.TrailEntry) httptransport.TrailEntryDTO {
	dto := httptransport.TrailEntryDTO{
		AllocationID:     entry.AllocationID,
		AmountAllocated:  entry.AmountAllocated,
		AllocationStatus: string(entry.AllocationStatus),
		DonationID:       entry.DonationID,
		DonationAmount:   entry.DonationAmount,
		DonationPurpose:  entry.DonationPurpose,
		DonorName:        entry.DonorName,
		DonorSourceTag:   entry.DonorSourceTag,
		RequestID:        entry.RequestID,
		EventName:        entry.EventName,
		RequesterName:    entry.RequesterName,
		RequesterType:    string(entry.RequesterType),
		AmountRequested:  entry.AmountRequested,
	}
	if entry.AllocatedAt != nil {
		dto.AllocatedAt = entry.AllocatedAt.UTC().Format(time.RFC3339)
	}
	if entry.DonatedAt != nil {
		dto.DonatedAt = entry.DonatedAt.UTC().Format(time.RFC3339)
	}
	if entry.RequestedAt != nil {
		dto.RequestedAt = entry.RequestedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
