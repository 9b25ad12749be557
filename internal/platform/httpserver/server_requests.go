package httpserver

import (
	"encoding/json"
	"net/http"

	requesthttp "clearfund/contexts/funding/request-ledger/transport/http"
)

func (s *Server) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}

	var req requesthttp.SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeRequestError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Requests.Handler.SubmitHandler(r.Context(), caller, req)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		s.writeRequestError(w, http.StatusBadRequest, "invalid_id", "budget request id must be a positive integer")
		return
	}

	resp, err := s.modules.Requests.Handler.GetHandler(r.Context(), caller, requestID)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}

	resp, err := s.modules.Requests.Handler.ListAllHandler(r.Context(), caller)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}

	resp, err := s.modules.Requests.Handler.ListMineHandler(r.Context(), caller)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRequestsByStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}

	resp, err := s.modules.Requests.Handler.ListByStatusHandler(r.Context(), caller, r.PathValue("status"))
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		s.writeRequestError(w, http.StatusBadRequest, "invalid_id", "budget request id must be a positive integer")
		return
	}

	var req requesthttp.SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeRequestError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Requests.Handler.UpdateHandler(r.Context(), caller, requestID, req)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		s.writeRequestError(w, http.StatusBadRequest, "invalid_id", "budget request id must be a positive integer")
		return
	}

	resp, err := s.modules.Requests.Handler.DeleteHandler(r.Context(), caller, requestID)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecideRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		s.writeRequestError(w, http.StatusBadRequest, "invalid_id", "budget request id must be a positive integer")
		return
	}

	var req requesthttp.DecideRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeRequestError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Requests.Handler.DecideHandler(r.Context(), caller, requestID, req)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRequestStats(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}

	resp, err := s.modules.Requests.Handler.StatsHandler(r.Context(), caller)
	if err != nil {
		s.writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeRequestDomainError(w http.ResponseWriter, err error) {
	status, code := fundingStatus(err)
	s.writeRequestError(w, status, code, err.Error())
}

func (s *Server) writeRequestError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, requesthttp.ErrorResponse{Code: code, Message: message})
}
