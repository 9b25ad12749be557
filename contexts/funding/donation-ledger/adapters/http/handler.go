package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clearfund/contexts/funding/domain/entities"
	"clearfund/contexts/funding/donation-ledger/application"
	"clearfund/contexts/funding/donation-ledger/ports"
	httptransport "clearfund/contexts/funding/donation-ledger/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RecordHandler(
	ctx context.Context,
	caller entities.Caller,
	req httptransport.RecordDonationRequest,
) (httptransport.RecordDonationResponse, error) {
	donation, err := h.Service.Record(ctx, caller, ports.RecordDonationInput{
		Amount:       req.Amount,
		Purpose:      req.Purpose,
		Message:      req.Message,
		DonationType: entities.DonationType(req.DonationType),
	})
	if err != nil {
		return httptransport.RecordDonationResponse{}, err
	}
	return httptransport.RecordDonationResponse{
		Status: "success",
		Data:   donationToDTO(donation),
	}, nil
}

func (h Handler) GetHandler(
	ctx context.Context,
	caller entities.Caller,
	donationID int64,
) (httptransport.DonationResponse, error) {
	record, err := h.Service.Get(ctx, caller, donationID)
	if err != nil {
		return httptransport.DonationResponse{}, err
	}
	return httptransport.DonationResponse{
		Status: "success",
		Data:   recordToDTO(record),
	}, nil
}

func (h Handler) ListAllHandler(
	ctx context.Context,
	caller entities.Caller,
) (httptransport.DonationListResponse, error) {
	records, err := h.Service.ListAll(ctx, caller)
	if err != nil {
		return httptransport.DonationListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) ListMineHandler(
	ctx context.Context,
	caller entities.Caller,
) (httptransport.DonationListResponse, error) {
	records, err := h.Service.ListMine(ctx, caller)
	if err != nil {
		return httptransport.DonationListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) ListBySourceTagHandler(
	ctx context.Context,
	caller entities.Caller,
	sourceTag string,
) (httptransport.DonationListResponse, error) {
	records, err := h.Service.ListBySourceTag(ctx, caller, sourceTag)
	if err != nil {
		return httptransport.DonationListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) BalanceHandler(
	ctx context.Context,
	caller entities.Caller,
	donationID int64,
) (httptransport.BalanceResponse, error) {
	balance, err := h.Service.Balance(ctx, caller, donationID)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	resp := httptransport.BalanceResponse{Status: "success"}
	resp.Data.DonationID = donationID
	resp.Data.Amount = balance.Amount
	resp.Data.Allocated = balance.Allocated
	resp.Data.Remaining = balance.Remaining
	return resp, nil
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
	resp.Data.TotalDonations = stats.TotalDonations
	resp.Data.TotalAmount = stats.TotalAmount
	resp.Data.AverageAmount = stats.AverageAmount
	resp.Data.UniqueDonors = stats.UniqueDonors
	return resp, nil
}

func listResponse(records []ports.DonationRecord) httptransport.DonationListResponse {
	resp := httptransport.DonationListResponse{
		Status: "success",
		Count:  len(records),
		Data:   make([]httptransport.DonationDTO, 0, len(records)),
	}
	for _, record := range records {
		resp.Data = append(resp.Data, recordToDTO(record))
	}
	return resp
}

func recordToDTO(record ports.DonationRecord) httptransport.DonationDTO {
	dto := donationToDTO(record.Donation)
	dto.DonorName = record.DonorName
	dto.DonorEmail = record.DonorEmail
	dto.DonorSourceTag = record.DonorSourceTag
	return dto
}

func donationToDTO(donation entities.Donation) httptransport.DonationDTO {
	return httptransport.DonationDTO{
		ID:            donation.ID,
		DonorID:       donation.DonorID,
		Amount:        donation.Amount,
		Purpose:       donation.Purpose,
		Message:       donation.Message,
		DonationType:  string(donation.DonationType),
		Status:        string(donation.Status),
		ReceiptNumber: donation.ReceiptNumber,
		CreatedAt:     donation.CreatedAt.UTC().Format(time.RFC3339),
	}
}
