package httpserver

import (
	"net/http"

	transparencyhttp "clearfund/contexts/funding/transparency-view/transport/http"
)

func (s *Server) handleFundingTrail(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeTransparencyDomainError(w, err)
		return
	}

	resp, err := s.modules.Transparency.Handler.TrailHandler(r.Context(), caller)
	if err != nil {
		s.writeTransparencyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDonationSummaries(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeTransparencyDomainError(w, err)
		return
	}

	resp, err := s.modules.Transparency.Handler.DonationSummariesHandler(r.Context(), caller)
	if err != nil {
		s.writeTransparencyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRequestSummaries(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeTransparencyDomainError(w, err)
		return
	}

	resp, err := s.modules.Transparency.Handler.RequestSummariesHandler(r.Context(), caller)
	if err != nil {
		s.writeTransparencyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransparencyOverview(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeTransparencyDomainError(w, err)
		return
	}

	resp, err := s.modules.Transparency.Handler.OverviewHandler(r.Context(), caller)
	if err != nil {
		s.writeTransparencyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeTransparencyDomainError(w http.ResponseWriter, err error) {
	status, code := fundingStatus(err)
	writeJSON(w, status, transparencyhttp.ErrorResponse{Code: code, Message: err.Error()})
}
