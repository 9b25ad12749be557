package httpserver

import (
	"net/http/httptest"
	"testing"

	identityhttp "clearfund/contexts/identity-access/identity-service/transport/http"
)

func TestValidateReturnsTokenClaims(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server, identityhttp.RegisterRequest{
		Name:     "Asha Foundation",
		Email:    "asha@donors.test",
		Password: "long-enough-password",
		Role:     "donor",
	})

	rr := doRequest(t, server, "GET", "/api/auth/validate", token, nil)
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	resp := decodeBody[identityhttp.ValidateResponse](t, rr)
	if resp.Data.Role != "donor" {
		t.Fatalf("expected donor role in claims, got %q", resp.Data.Role)
	}
	if resp.Data.UserID == 0 {
		t.Fatal("expected a user id in claims")
	}
	if resp.Data.SourceTag == "" {
		t.Fatal("expected the donor's source tag in claims")
	}

	rr = doRequest(t, server, "GET", "/api/auth/validate", "not-a-token", nil)
	if rr.Code != 401 {
		t.Fatalf("expected 401 for a garbage token, got %d", rr.Code)
	}
}

func TestPreflightRequestsAreAnswered(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/donations", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != 204 {
		t.Fatalf("expected 204 for preflight, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("expected CORS headers on preflight response")
	}
}

func TestAuthEndpointsAreRateLimited(t *testing.T) {
	server := newTestServer(t)
	attempt := identityhttp.LoginRequest{
		Email:    "nobody@donors.test",
		Password: "wrong-password",
	}

	for i := 0; i < authRateMax; i++ {
		rr := doRequest(t, server, "POST", "/api/auth/login", "", attempt)
		if rr.Code != 401 {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, rr.Code)
		}
	}

	rr := doRequest(t, server, "POST", "/api/auth/login", "", attempt)
	if rr.Code != 429 {
		t.Fatalf("expected 429 after exhausting the auth budget, got %d", rr.Code)
	}
}

func TestAPIRequestsAreRateLimited(t *testing.T) {
	server := newTestServer(t)

	last := 0
	for i := 0; i < apiRateMax+1; i++ {
		rr := doRequest(t, server, "GET", "/api/donations", "", nil)
		last = rr.Code
	}
	if last != 429 {
		t.Fatalf("expected 429 after exhausting the request budget, got %d", last)
	}
}
