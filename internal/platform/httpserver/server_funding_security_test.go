package httpserver

import (
	"net/http"
	"testing"

	donationhttp "clearfund/contexts/funding/donation-ledger/transport/http"
	identityhttp "clearfund/contexts/identity-access/identity-service/transport/http"
)

func TestFundingRoutesRequireBearerToken(t *testing.T) {
	server := newTestServer(t)

	paths := []string{
		"/api/donations",
		"/api/budget-requests",
		"/api/allocations",
		"/api/transparency/overview",
		"/api/auth/profile",
	}
	for _, path := range paths {
		rr := doRequest(t, server, http.MethodGet, path, "", nil)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token, got %d body=%s", path, rr.Code, rr.Body.String())
		}
	}
}

func TestGarbageTokenIsRejected(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, http.MethodGet, "/api/donations/my", "not-a-jwt", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a malformed token, got %d body=%s", rr.Code, rr.Body.String())
	}
	body := decodeBody[donationhttp.ErrorResponse](t, rr)
	if body.Code != "invalid_token" {
		t.Fatalf("expected invalid_token code, got %q", body.Code)
	}
}

func TestDonorCannotUseAdminViews(t *testing.T) {
	server := newTestServer(t)
	donor := registerUser(t, server, identityhttp.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@donors.test",
		Password: "long-enough-password",
		Role:     "donor",
	})

	paths := []string{
		"/api/donations",
		"/api/donations/stats",
		"/api/budget-requests",
		"/api/allocations",
		"/api/allocations/stats",
		"/api/transparency/trail",
		"/api/transparency/overview",
	}
	for _, path := range paths {
		rr := doRequest(t, server, http.MethodGet, path, donor, nil)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403 for donor, got %d body=%s", path, rr.Code, rr.Body.String())
		}
	}
}

func TestStudentCannotRecordDonations(t *testing.T) {
	server := newTestServer(t)
	student := registerUser(t, server, identityhttp.RegisterRequest{
		Name:      "Bilal",
		Email:     "bilal@students.test",
		Password:  "long-enough-password",
		Role:      "student",
		StudentID: "S-100",
	})

	rr := doRequest(t, server, http.MethodPost, "/api/donations", student, donationhttp.RecordDonationRequest{
		Purpose: "should not work",
	})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a student recording donations, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDonorSourceTagScope(t *testing.T) {
	server := newTestServer(t)
	donor := registerUser(t, server, identityhttp.RegisterRequest{
		Name:      "Asha Foundation",
		Email:     "asha@donors.test",
		Password:  "long-enough-password",
		Role:      "donor",
		SourceTag: "asha-foundation",
	})

	rr := doRequest(t, server, http.MethodGet, "/api/allocations/source/asha-foundation", donor, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("own source tag: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/api/allocations/source/other-trust", donor, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("foreign source tag: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/api/donations/source/other-trust", donor, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("foreign donation source tag: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDonorCannotReadAnotherDonorsDonation(t *testing.T) {
	server := newTestServer(t)
	first := registerUser(t, server, identityhttp.RegisterRequest{
		Name:     "First",
		Email:    "first@donors.test",
		Password: "long-enough-password",
		Role:     "donor",
	})
	second := registerUser(t, server, identityhttp.RegisterRequest{
		Name:     "Second",
		Email:    "second@donors.test",
		Password: "long-enough-password",
		Role:     "donor",
	})

	rr := doRequest(t, server, http.MethodPost, "/api/donations", first, map[string]any{
		"amount":  1000,
		"purpose": "library books",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("record donation: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	donation := decodeBody[donationhttp.RecordDonationResponse](t, rr)

	rr = doRequest(t, server, http.MethodGet, "/api/donations/1", second, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("foreign donation read: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/api/donations/1", first, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("own donation read: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if donation.Data.ReceiptNumber == "" {
		t.Fatal("expected a receipt number on the recorded donation")
	}
}

func TestRegistrationCannotClaimAdminRole(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, http.MethodPost, "/api/auth/register", "", identityhttp.RegisterRequest{
		Name:     "Sneaky",
		Email:    "sneaky@clearfund.test",
		Password: "long-enough-password",
		Role:     "admin",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for admin self-registration, got %d body=%s", rr.Code, rr.Body.String())
	}
}
