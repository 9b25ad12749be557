package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	allocationhttp "clearfund/contexts/funding/allocation-engine/transport/http"
	fundingerrors "clearfund/contexts/funding/domain/errors"
)

func (s *Server) handleCreateAllocation(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}

	var req allocationhttp.CreateAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeAllocationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Allocations.Handler.CreateHandler(r.Context(), caller, req)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetAllocation(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	allocationID, ok := pathID(r, "id")
	if !ok {
		s.writeAllocationError(w, http.StatusBadRequest, "invalid_id", "allocation id must be a positive integer")
		return
	}

	resp, err := s.modules.Allocations.Handler.GetHandler(r.Context(), caller, allocationID)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAllocations(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}

	resp, err := s.modules.Allocations.Handler.ListAllHandler(r.Context(), caller)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAllocationsByDonation(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	donationID, ok := pathID(r, "donation_id")
	if !ok {
		s.writeAllocationError(w, http.StatusBadRequest, "invalid_id", "donation id must be a positive integer")
		return
	}

	resp, err := s.modules.Allocations.Handler.ListByDonationHandler(r.Context(), caller, donationID)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAllocationsByRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	requestID, ok := pathID(r, "request_id")
	if !ok {
		s.writeAllocationError(w, http.StatusBadRequest, "invalid_id", "budget request id must be a positive integer")
		return
	}

	resp, err := s.modules.Allocations.Handler.ListByRequestHandler(r.Context(), caller, requestID)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAllocationsByBeneficiaryType(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}

	resp, err := s.modules.Allocations.Handler.ListByBeneficiaryTypeHandler(r.Context(), caller, r.PathValue("beneficiary_type"))
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAllocationsBySourceTag(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}

	resp, err := s.modules.Allocations.Handler.ListBySourceTagHandler(r.Context(), caller, r.PathValue("source_tag"))
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetAllocationStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	allocationID, ok := pathID(r, "id")
	if !ok {
		s.writeAllocationError(w, http.StatusBadRequest, "invalid_id", "allocation id must be a positive integer")
		return
	}

	var req allocationhttp.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeAllocationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Allocations.Handler.SetStatusHandler(r.Context(), caller, allocationID, req)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAllocationStats(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}

	resp, err := s.modules.Allocations.Handler.StatsHandler(r.Context(), caller)
	if err != nil {
		s.writeAllocationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeAllocationDomainError additionally surfaces the remaining and
// requested figures when an allocation would overdraw a donation.
func (s *Server) writeAllocationDomainError(w http.ResponseWriter, err error) {
	status, code := fundingStatus(err)
	body := allocationhttp.ErrorResponse{Code: code, Message: err.Error()}

	var insufficient *fundingerrors.InsufficientFundsError
	if errors.As(err, &insufficient) {
		body.Remaining = &insufficient.Remaining
		body.Requested = &insufficient.Requested
	}
	writeJSON(w, status, body)
}

func (s *Server) writeAllocationError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, allocationhttp.ErrorResponse{Code: code, Message: message})
}
