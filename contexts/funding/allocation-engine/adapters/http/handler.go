package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clearfund/contexts/funding/allocation-engine/application"
	"clearfund/contexts/funding/allocation-engine/ports"
	httptransport "clearfund/contexts/funding/allocation-engine/transport/http"
	"clearfund/contexts/funding/domain/entities"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateHandler(
	ctx context.Context,
	caller entities.Caller,
	req httptransport.CreateAllocationRequest,
) (httptransport.AllocationResponse, error) {
	allocation, err := h.Service.Create(ctx, caller, ports.CreateAllocationInput{
		DonationID:      req.DonationID,
		RequestID:       req.RequestID,
		AmountAllocated: req.AmountAllocated,
		BeneficiaryType: entities.Role(req.BeneficiaryType),
		Reason:          req.Reason,
		Notes:           req.Notes,
	})
	if err != nil {
		return httptransport.AllocationResponse{}, err
	}
	return httptransport.AllocationResponse{
		Status: "success",
		Data:   allocationToDTO(allocation),
	}, nil
}

func (h Handler) GetHandler(
	ctx context.Context,
	caller entities.Caller,
	allocationID int64,
) (httptransport.AllocationResponse, error) {
	record, err := h.Service.Get(ctx, caller, allocationID)
	if err != nil {
		return httptransport.AllocationResponse{}, err
	}
	return httptransport.AllocationResponse{
		Status: "success",
		Data:   recordToDTO(record),
	}, nil
}

func (h Handler) ListAllHandler(
	ctx context.Context,
	caller entities.Caller,
) (httptransport.AllocationListResponse, error) {
	records, err := h.Service.ListAll(ctx, caller)
	if err != nil {
		return httptransport.AllocationListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) ListByDonationHandler(
	ctx context.Context,
	caller entities.Caller,
	donationID int64,
) (httptransport.AllocationListResponse, error) {
	records, err := h.Service.ListByDonation(ctx, caller, donationID)
	if err != nil {
		return httptransport.AllocationListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) ListByRequestHandler(
	ctx context.Context,
	caller entities.Caller,
	requestID int64,
) (httptransport.AllocationListResponse, error) {
	records, err := h.Service.ListByRequest(ctx, caller, requestID)
	if err != nil {
		return httptransport.AllocationListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) ListByBeneficiaryTypeHandler(
	ctx context.Context,
	caller entities.Caller,
	beneficiaryType string,
) (httptransport.AllocationListResponse, error) {
	records, err := h.Service.ListByBeneficiaryType(ctx, caller, entities.Role(beneficiaryType))
	if err != nil {
		return httptransport.AllocationListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) ListBySourceTagHandler(
	ctx context.Context,
	caller entities.Caller,
	sourceTag string,
) (httptransport.AllocationListResponse, error) {
	records, err := h.Service.ListBySourceTag(ctx, caller, sourceTag)
	if err != nil {
		return httptransport.AllocationListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) SetStatusHandler(
	ctx context.Context,
	caller entities.Caller,
	allocationID int64,
	req httptransport.SetStatusRequest,
) (httptransport.AllocationResponse, error) {
	allocation, err := h.Service.SetStatus(ctx, caller, allocationID, entities.AllocationStatus(req.Status))
	if err != nil {
		return httptransport.AllocationResponse{}, err
	}
	return httptransport.AllocationResponse{
		Status: "success",
		Data:   allocationToDTO(allocation),
	}, nil
}

func (h Handler) StatsHandler(
	ctx context.Context,
	caller entities.Caller,
) (httptransport.StatsResponse, error) {
	stats, err := h.Service.Stats(ctx, caller)
	if err != nil {
		return httptransport.StatsResponse{}, err
	}
	resp := httptransport.StatsResponse{Status: "success"}
	resp.Data.TotalAllocations = stats.TotalAllocations
	resp.Data.TotalAllocated = stats.TotalAllocated
	resp.Data.AverageAllocated = stats.AverageAllocated
	resp.Data.UniqueBeneficiaryTypes = stats.UniqueBeneficiaryTypes
	resp.Data.DonationsWithAllocations = stats.DonationsWithAllocations
	resp.Data.ActiveAllocations = stats.ActiveAllocations
	resp.Data.DisbursedAllocations = stats.DisbursedAllocations
	resp.Data.CompletedAllocations = stats.CompletedAllocations
	resp.Data.CancelledAllocations = stats.CancelledAllocations
	return resp, nil
}

func listResponse(records []ports.AllocationRecord) httptransport.AllocationListResponse {
	resp := httptransport.AllocationListResponse{
		Status: "success",
		Count:  len(records),
		Data:   make([]httptransport.AllocationDTO, 0, len(records)),
	}
	for _, record := range records {
		resp.Data = append(resp.Data, recordToDTO(record))
	}
	return resp
}

func recordToDTO(record ports.AllocationRecord) httptransport.AllocationDTO {
	dto := allocationToDTO(record.Allocation)
	dto.DonationPurpose = record.DonationPurpose
	dto.DonorName = record.DonorName
	dto.DonorSourceTag = record.DonorSourceTag
	dto.EventName = record.EventName
	dto.RequesterName = record.RequesterName
	dto.AllocatorName = record.AllocatorName
	return dto
}

func allocationToDTO(allocation entities.Allocation) httptransport.AllocationDTO {
	return httptransport.AllocationDTO{
		ID:              allocation.ID,
		DonationID:      allocation.DonationID,
		RequestID:       allocation.RequestID,
		AmountAllocated: allocation.AmountAllocated,
		BeneficiaryType: string(allocation.BeneficiaryType),
		Reason:          allocation.Reason,
		Notes:           allocation.Notes,
		Status:          string(allocation.Status),
		AllocatedBy:     allocation.AllocatedBy,
		CreatedAt:       allocation.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       allocation.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
