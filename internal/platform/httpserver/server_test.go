package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	fundingmemory "clearfund/contexts/funding/adapters/memory"
	allocationengine "clearfund/contexts/funding/allocation-engine"
	fundingentities "clearfund/contexts/funding/domain/entities"
	donationledger "clearfund/contexts/funding/donation-ledger"
	requestledger "clearfund/contexts/funding/request-ledger"
	transparencyview "clearfund/contexts/funding/transparency-view"
	identityservice "clearfund/contexts/identity-access/identity-service"
	identitymemory "clearfund/contexts/identity-access/identity-service/adapters/memory"
	identityentities "clearfund/contexts/identity-access/identity-service/domain/entities"
	identityhttp "clearfund/contexts/identity-access/identity-service/transport/http"
)

const (
	testAdminEmail    = "admin@clearfund.test"
	testAdminPassword = "admin-password"
)

type testProfileSink struct {
	store *fundingmemory.Store
}

func (p testProfileSink) UpsertProfile(ctx context.Context, user identityentities.User) error {
	return p.store.UpsertUserProfile(ctx, fundingentities.UserProfile{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       fundingentities.Role(user.Role),
		Department: user.Department,
		StudentID:  user.StudentID,
		SourceTag:  user.SourceTag,
	})
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := fundingmemory.NewStore()
	identityStore := identitymemory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	identityModule := identityservice.NewModule(identityservice.Dependencies{
		Repository:  identityStore,
		ProfileSink: testProfileSink{store: store},
		Clock:       identityStore,
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		Logger:      logger,
	})
	if err := identityModule.Service.SeedAdmin(context.Background(), "Admin", testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	modules := Modules{
		Identity: identityModule,
		Donations: donationledger.NewModule(donationledger.Dependencies{
			Repository: store,
			Clock:      store,
			Receipts:   store,
			Logger:     logger,
		}),
		Requests: requestledger.NewModule(requestledger.Dependencies{
			Repository: store,
			Clock:      store,
			Logger:     logger,
		}),
		Allocations: allocationengine.NewModule(allocationengine.Dependencies{
			Repository: store,
			Clock:      store,
			Logger:     logger,
		}),
		Transparency: transparencyview.NewModule(transparencyview.Dependencies{
			Repository: store,
			Logger:     logger,
		}),
	}
	return New(modules, logger, ":0")
}

func doRequest(t *testing.T, server *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func registerUser(t *testing.T, server *Server, req identityhttp.RegisterRequest) string {
	t.Helper()
	rr := doRequest(t, server, "POST", "/api/auth/register", "", req)
	if rr.Code != 201 {
		t.Fatalf("register %s: expected 201, got %d body=%s", req.Email, rr.Code, rr.Body.String())
	}
	return decodeBody[identityhttp.AuthResponse](t, rr).Token
}

func loginUser(t *testing.T, server *Server, email, password string) string {
	t.Helper()
	rr := doRequest(t, server, "POST", "/api/auth/login", "", identityhttp.LoginRequest{
		Email:    email,
		Password: password,
	})
	if rr.Code != 200 {
		t.Fatalf("login %s: expected 200, got %d body=%s", email, rr.Code, rr.Body.String())
	}
	return decodeBody[identityhttp.AuthResponse](t, rr).Token
}
