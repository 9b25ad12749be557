package httpserver

import (
	"encoding/json"
	"net/http"

	donationhttp "clearfund/contexts/funding/donation-ledger/transport/http"
)

func (s *Server) handleRecordDonation(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}

	var req donationhttp.RecordDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeDonationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Donations.Handler.RecordHandler(r.Context(), caller, req)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetDonation(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}
	donationID, ok := pathID(r, "id")
	if !ok {
		s.writeDonationError(w, http.StatusBadRequest, "invalid_id", "donation id must be a positive integer")
		return
	}

	resp, err := s.modules.Donations.Handler.GetHandler(r.Context(), caller, donationID)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDonations(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}

	resp, err := s.modules.Donations.Handler.ListAllHandler(r.Context(), caller)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMyDonations(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}

	resp, err := s.modules.Donations.Handler.ListMineHandler(r.Context(), caller)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDonationsBySourceTag(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}

	resp, err := s.modules.Donations.Handler.ListBySourceTagHandler(r.Context(), caller, r.PathValue("source_tag"))
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDonationBalance(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}
	donationID, ok := pathID(r, "id")
	if !ok {
		s.writeDonationError(w, http.StatusBadRequest, "invalid_id", "donation id must be a positive integer")
		return
	}

	resp, err := s.modules.Donations.Handler.BalanceHandler(r.Context(), caller, donationID)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDonationStats(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}

	resp, err := s.modules.Donations.Handler.StatsHandler(r.Context(), caller)
	if err != nil {
		s.writeDonationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeDonationDomainError(w http.ResponseWriter, err error) {
	status, code := fundingStatus(err)
	s.writeDonationError(w, status, code, err.Error())
}

func (s *Server) writeDonationError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, donationhttp.ErrorResponse{Code: code, Message: message})
}
