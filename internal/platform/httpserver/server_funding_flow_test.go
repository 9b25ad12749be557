package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	allocationhttp "clearfund/contexts/funding/allocation-engine/transport/http"
	donationhttp "clearfund/contexts/funding/donation-ledger/transport/http"
	requesthttp "clearfund/contexts/funding/request-ledger/transport/http"
	transparencyhttp "clearfund/contexts/funding/transparency-view/transport/http"
	identityhttp "clearfund/contexts/identity-access/identity-service/transport/http"
)

// Walks the whole ledger over HTTP: a donor gives 100000, a student's
// approved request receives 60000, a second allocation of 50000 must be
// refused with the remaining figure, and cancelling restores the balance.
func TestAllocationFlowOverHTTP(t *testing.T) {
	server := newTestServer(t)
	admin := loginUser(t, server, testAdminEmail, testAdminPassword)
	donor := registerUser(t, server, identityhttp.RegisterRequest{
		Name:     "Asha Foundation",
		Email:    "asha@donors.test",
		Password: "long-enough-password",
		Role:     "donor",
	})
	student := registerUser(t, server, identityhttp.RegisterRequest{
		Name:      "Bilal",
		Email:     "bilal@students.test",
		Password:  "long-enough-password",
		Role:      "student",
		StudentID: "S-100",
	})

	rr := doRequest(t, server, http.MethodPost, "/api/donations", donor, map[string]any{
		"amount":  100000,
		"purpose": "annual scholarship fund",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("record donation: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	donation := decodeBody[donationhttp.RecordDonationResponse](t, rr)

	rr = doRequest(t, server, http.MethodPost, "/api/budget-requests", student, map[string]any{
		"event_name":        "Science Fair",
		"event_description": "Annual inter-department science fair",
		"amount_requested":  60000,
		"justification":     "Venue and materials",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("submit request: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	request := decodeBody[requesthttp.BudgetRequestResponse](t, rr)

	rr = doRequest(t, server, http.MethodPatch, "/api/budget-requests/1/decision", admin, map[string]any{
		"status":      "approved",
		"admin_notes": "within budget",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("approve request: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodPost, "/api/allocations", admin, map[string]any{
		"donation_id":      donation.Data.ID,
		"request_id":       request.Data.ID,
		"amount_allocated": 60000,
		"reason":           "approved request funding",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("first allocation: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	allocation := decodeBody[allocationhttp.AllocationResponse](t, rr)
	if allocation.Data.Status != "allocated" {
		t.Fatalf("expected new allocation to be allocated, got %q", allocation.Data.Status)
	}

	// 40000 remains; asking for 50000 must fail and report both figures.
	rr = doRequest(t, server, http.MethodPost, "/api/allocations", admin, map[string]any{
		"donation_id":      donation.Data.ID,
		"request_id":       request.Data.ID,
		"amount_allocated": 50000,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("overdraw allocation: expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	failure := decodeBody[allocationhttp.ErrorResponse](t, rr)
	if failure.Code != "insufficient_funds" {
		t.Fatalf("expected insufficient_funds, got %q", failure.Code)
	}
	if failure.Remaining == nil || !failure.Remaining.Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("expected remaining 40000, got %v", failure.Remaining)
	}
	if failure.Requested == nil || !failure.Requested.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("expected requested 50000, got %v", failure.Requested)
	}

	rr = doRequest(t, server, http.MethodGet, "/api/donations/1/balance", donor, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("balance: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	balance := decodeBody[donationhttp.BalanceResponse](t, rr)
	if !balance.Data.Remaining.Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("expected remaining 40000, got %s", balance.Data.Remaining)
	}

	rr = doRequest(t, server, http.MethodPatch, "/api/allocations/1/status", admin, allocationhttp.SetStatusRequest{
		Status: "cancelled",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("cancel allocation: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/api/donations/1/balance", donor, nil)
	balance = decodeBody[donationhttp.BalanceResponse](t, rr)
	if !balance.Data.Remaining.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("expected full balance restored after cancel, got %s", balance.Data.Remaining)
	}
}

func TestRequestLockedAfterDecisionOverHTTP(t *testing.T) {
	server := newTestServer(t)
	admin := loginUser(t, server, testAdminEmail, testAdminPassword)
	student := registerUser(t, server, identityhttp.RegisterRequest{
		Name:      "Bilal",
		Email:     "bilal@students.test",
		Password:  "long-enough-password",
		Role:      "student",
		StudentID: "S-100",
	})

	rr := doRequest(t, server, http.MethodPost, "/api/budget-requests", student, map[string]any{
		"event_name":        "Robotics Workshop",
		"event_description": "Weekend robotics workshop",
		"amount_requested":  15000,
		"justification":     "Kits and venue",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("submit request: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodPatch, "/api/budget-requests/1/decision", admin, map[string]any{
		"status": "rejected",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("reject request: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodPut, "/api/budget-requests/1", student, map[string]any{
		"event_name":        "Robotics Workshop",
		"event_description": "Bigger workshop",
		"amount_requested":  20000,
		"justification":     "More kits",
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("update decided request: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	failure := decodeBody[requesthttp.ErrorResponse](t, rr)
	if failure.Code != "request_locked" {
		t.Fatalf("expected request_locked, got %q", failure.Code)
	}

	rr = doRequest(t, server, http.MethodDelete, "/api/budget-requests/1", student, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("delete decided request: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestTransparencyOverviewCountsLedger(t *testing.T) {
	server := newTestServer(t)
	admin := loginUser(t, server, testAdminEmail, testAdminPassword)
	donor := registerUser(t, server, identityhttp.RegisterRequest{
		Name:     "Asha Foundation",
		Email:    "asha@donors.test",
		Password: "long-enough-password",
		Role:     "donor",
	})

	rr := doRequest(t, server, http.MethodPost, "/api/donations", donor, map[string]any{
		"amount":  5000,
		"purpose": "sports equipment",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("record donation: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/api/transparency/overview", admin, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("overview: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	overview := decodeBody[transparencyhttp.OverviewResponse](t, rr)
	if overview.Data.TotalDonations != 1 {
		t.Fatalf("expected 1 donation in overview, got %d", overview.Data.TotalDonations)
	}
	if !overview.Data.TotalDonated.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected total donated 5000, got %s", overview.Data.TotalDonated)
	}
	if overview.Data.UniqueDonors != 1 {
		t.Fatalf("expected 1 unique donor, got %d", overview.Data.UniqueDonors)
	}
}

func TestAllocationErrorBodyOmitsFundsFigures(t *testing.T) {
	server := newTestServer(t)
	admin := loginUser(t, server, testAdminEmail, testAdminPassword)

	rr := doRequest(t, server, http.MethodGet, "/api/allocations/999", admin, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "remaining") || strings.Contains(rr.Body.String(), "requested") {
		t.Fatalf("funds figures leaked into a non-funds error: %s", rr.Body.String())
	}
}
