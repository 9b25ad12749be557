package httpserver

import (
	"encoding/json"
	"net/http"

	identityhttp "clearfund/contexts/identity-access/identity-service/transport/http"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Identity.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		s.writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Identity.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := s.authenticate(r)
	if err != nil {
		s.writeIdentityDomainError(w, err)
		return
	}

	resp, err := s.modules.Identity.Handler.ProfileHandler(r.Context(), caller.UserID)
	if err != nil {
		s.writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		s.writeIdentityDomainError(w, err)
		return
	}

	resp, err := s.modules.Identity.Handler.ValidateHandler(r.Context(), token)
	if err != nil {
		s.writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeIdentityDomainError(w http.ResponseWriter, err error) {
	status, code := identityStatus(err)
	s.writeIdentityError(w, status, code, err.Error())
}

func (s *Server) writeIdentityError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, identityhttp.ErrorResponse{Code: code, Message: message})
}
