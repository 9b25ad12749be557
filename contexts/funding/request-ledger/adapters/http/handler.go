package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
	"clearfund/contexts/funding/request-ledger/application"
	"clearfund/contexts/funding/request-ledger/ports"
	httptransport "clearfund/contexts/funding/request-ledger/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) SubmitHandler(
	ctx context.Context,
	caller entities.Caller,
	req httptransport.SubmitRequestRequest,
) (httptransport.BudgetRequestResponse, error) {
	input, err := submitInput(req)
	if err != nil {
		return httptransport.BudgetRequestResponse{}, err
	}
	request, err := h.Service.Submit(ctx, caller, input)
	if err != nil {
		return httptransport.BudgetRequestResponse{}, err
	}
	return httptransport.BudgetRequestResponse{
		Status: "success",
		Data:   requestToDTO(request),
	}, nil
}

func (h Handler) GetHandler(
	ctx context.Context,
	caller entities.Caller,
	requestID int64,
) (httptransport.BudgetRequestResponse, error) {
	record, err := h.Service.Get(ctx, caller, requestID)
	if err != nil {
		return httptransport.BudgetRequestResponse{}, err
	}
	return httptransport.BudgetRequestResponse{
		Status: "success",
		Data:   recordToDTO(record),
	}, nil
}

func (h Handler) ListAllHandler(
	ctx context.Context,
	caller entities.Caller,
) (httptransport.BudgetRequestListResponse, error) {
	records, err := h.Service.ListAll(ctx, caller)
	if err != nil {
		return httptransport.BudgetRequestListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) ListByStatusHandler(
	ctx context.Context,
	caller entities.Caller,
	status string,
) (httptransport.BudgetRequestListResponse, error) {
	records, err := h.Service.ListByStatus(ctx, caller, entities.RequestStatus(status))
	if err != nil {
		return httptransport.BudgetRequestListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) ListMineHandler(
	ctx context.Context,
	caller entities.Caller,
) (httptransport.BudgetRequestListResponse, error) {
	records, err := h.Service.ListMine(ctx, caller)
	if err != nil {
		return httptransport.BudgetRequestListResponse{}, err
	}
	return listResponse(records), nil
}

func (h Handler) UpdateHandler(
	ctx context.Context,
	caller entities.Caller,
	requestID int64,
	req httptransport.SubmitRequestRequest,
) (httptransport.BudgetRequestResponse, error) {
	input, err := submitInput(req)
	if err != nil {
		return httptransport.BudgetRequestResponse{}, err
	}
	request, err := h.Service.Update(ctx, caller, requestID, input)
	if err != nil {
		return httptransport.BudgetRequestResponse{}, err
	}
	return httptransport.BudgetRequestResponse{
		Status: "success",
		Data:   requestToDTO(request),
	}, nil
}

func (h Handler) DeleteHandler(
	ctx context.Context,
	caller entities.Caller,
	requestID int64,
) (httptransport.DeleteResponse, error) {
	if err := h.Service.Delete(ctx, caller, requestID); err != nil {
		return httptransport.DeleteResponse{}, err
	}
	return httptransport.DeleteResponse{Status: "success"}, nil
}

func (h Handler) DecideHandler(
	ctx context.Context,
	caller entities.Caller,
	requestID int64,
	req httptransport.DecideRequestRequest,
) (httptransport.BudgetRequestResponse, error) {
	request, err := h.Service.Decide(ctx, caller, requestID, entities.RequestStatus(req.Status), req.AdminNotes)
	if err != nil {
		return httptransport.BudgetRequestResponse{}, err
	}
	return httptransport.BudgetRequestResponse{
		Status: "success",
		Data:   requestToDTO(request),
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
	resp.Data.TotalRequests = stats.TotalRequests
	resp.Data.TotalRequested = stats.TotalRequested
	resp.Data.AverageRequested = stats.AverageRequested
	resp.Data.PendingRequests = stats.PendingRequests
	resp.Data.ApprovedRequests = stats.ApprovedRequests
	resp.Data.RejectedRequests = stats.RejectedRequests
	resp.Data.UniqueRequesters = stats.UniqueRequesters
	return resp, nil
}

func submitInput(req httptransport.SubmitRequestRequest) (ports.SubmitRequestInput, error) {
	input := ports.SubmitRequestInput{
		EventName:         req.EventName,
		EventDescription:  req.EventDescription,
		AmountRequested:   req.AmountRequested,
		Venue:             req.Venue,
		ExpectedAttendees: req.ExpectedAttendees,
		Category:          req.Category,
		Justification:     req.Justification,
	}
	if req.EventDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EventDate)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", req.EventDate)
		}
		if err != nil {
			return ports.SubmitRequestInput{}, domainerrors.ErrInvalidInput
		}
		input.EventDate = &parsed
	}
	return input, nil
}

func listResponse(records []ports.RequestRecord) httptransport.BudgetRequestListResponse {
	resp := httptransport.BudgetRequestListResponse{
		Status: "success",
		Count:  len(records),
		Data:   make([]httptransport.BudgetRequestDTO, 0, len(records)),
	}
	for _, record := range records {
		resp.Data = append(resp.Data, recordToDTO(record))
	}
	return resp
}

func recordToDTO(record ports.RequestRecord) httptransport.BudgetRequestDTO {
	dto := requestToDTO(record.Request)
	dto.RequesterName = record.RequesterName
	dto.RequesterEmail = record.RequesterEmail
	dto.RequesterDept = record.RequesterDept
	dto.RequesterStudentID = record.RequesterStudentID
	return dto
}

func requestToDTO(request entities.BudgetRequest) httptransport.BudgetRequestDTO {
	dto := httptransport.BudgetRequestDTO{
		ID:                request.ID,
		RequesterID:       request.RequesterID,
		RequesterType:     string(request.RequesterType),
		EventName:         request.EventName,
		EventDescription:  request.EventDescription,
		AmountRequested:   request.AmountRequested,
		Venue:             request.Venue,
		ExpectedAttendees: request.ExpectedAttendees,
		Category:          request.Category,
		Justification:     request.Justification,
		Status:            string(request.Status),
		AdminNotes:        request.AdminNotes,
		CreatedAt:         request.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         request.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if request.EventDate != nil {
		dto.EventDate = request.EventDate.UTC().Format(time.RFC3339)
	}
	return dto
}
