package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"clearfund/contexts/funding/adapters/memory"
	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
	"clearfund/contexts/funding/request-ledger/ports"
)

func newTestService() Service {
	store := memory.NewStore()
	return Service{Repo: store, Clock: store}
}

var (
	student    = entities.Caller{UserID: 1, Role: entities.RoleStudent}
	department = entities.Caller{UserID: 2, Role: entities.RoleDepartment}
	admin      = entities.Caller{UserID: 99, Role: entities.RoleAdmin}
)

func validInput() ports.SubmitRequestInput {
	return ports.SubmitRequestInput{
		EventName:        "Science Fair",
		EventDescription: "Annual inter-department science fair",
		AmountRequested:  decimal.NewFromInt(15000),
		Justification:    "Venue and materials",
	}
}

func TestSubmitRequiresRequesterRole(t *testing.T) {
	service := newTestService()
	donorCaller := entities.Caller{UserID: 3, Role: entities.RoleDonor}

	_, err := service.Submit(context.Background(), donorCaller, validInput())
	if !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for donor, got %v", err)
	}

	if _, err := service.Submit(context.Background(), department, validInput()); err != nil {
		t.Fatalf("department submit returned error: %v", err)
	}
}

func TestSubmitValidatesInput(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	input := validInput()
	input.AmountRequested = decimal.Zero
	if _, err := service.Submit(ctx, student, input); !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	input = validInput()
	input.Justification = "  "
	if _, err := service.Submit(ctx, student, input); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank justification, got %v", err)
	}

	input = validInput()
	input.ExpectedAttendees = -1
	if _, err := service.Submit(ctx, student, input); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative attendees, got %v", err)
	}
}

func TestSubmittedRequestStartsPending(t *testing.T) {
	service := newTestService()

	request, err := service.Submit(context.Background(), student, validInput())
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if request.Status != entities.RequestStatusPending {
		t.Fatalf("expected pending status, got %q", request.Status)
	}
	if request.RequesterType != entities.RoleStudent {
		t.Fatalf("expected requester type student, got %q", request.RequesterType)
	}
}

func TestUpdateOnlyByOwnerWhilePending(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	request, err := service.Submit(ctx, student, validInput())
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}

	other := entities.Caller{UserID: 7, Role: entities.RoleStudent}
	if _, err := service.Update(ctx, other, request.ID, validInput()); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for foreign update, got %v", err)
	}

	changed := validInput()
	changed.AmountRequested = decimal.NewFromInt(20000)
	updated, err := service.Update(ctx, student, request.ID, changed)
	if err != nil {
		t.Fatalf("owner update returned error: %v", err)
	}
	if !updated.AmountRequested.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("expected amount 20000, got %s", updated.AmountRequested)
	}
	if updated.Status != entities.RequestStatusPending {
		t.Fatalf("update must not change status, got %q", updated.Status)
	}
}

func TestDecideIsAdminOnlyAndOneShot(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	request, err := service.Submit(ctx, student, validInput())
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}

	if _, err := service.Decide(ctx, student, request.ID, entities.RequestStatusApproved, ""); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for student decision, got %v", err)
	}
	if _, err := service.Decide(ctx, admin, request.ID, entities.RequestStatusPending, ""); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for pending decision, got %v", err)
	}

	decided, err := service.Decide(ctx, admin, request.ID, entities.RequestStatusApproved, "within budget")
	if err != nil {
		t.Fatalf("decide returned error: %v", err)
	}
	if decided.Status != entities.RequestStatusApproved {
		t.Fatalf("expected approved, got %q", decided.Status)
	}
	if decided.AdminNotes != "within budget" {
		t.Fatalf("expected admin notes to be stored, got %q", decided.AdminNotes)
	}

	if _, err := service.Decide(ctx, admin, request.ID, entities.RequestStatusRejected, ""); !errors.Is(err, domainerrors.ErrRequestLocked) {
		t.Fatalf("expected ErrRequestLocked for a second decision, got %v", err)
	}
	if _, err := service.Update(ctx, student, request.ID, validInput()); !errors.Is(err, domainerrors.ErrRequestLocked) {
		t.Fatalf("expected ErrRequestLocked for update after decision, got %v", err)
	}
	if err := service.Delete(ctx, student, request.ID); !errors.Is(err, domainerrors.ErrRequestLocked) {
		t.Fatalf("expected ErrRequestLocked for delete after decision, got %v", err)
	}
}

func TestListMineFiltersByRequester(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	if _, err := service.Submit(ctx, student, validInput()); err != nil {
		t.Fatalf("student submit returned error: %v", err)
	}
	if _, err := service.Submit(ctx, department, validInput()); err != nil {
		t.Fatalf("department submit returned error: %v", err)
	}

	mine, err := service.ListMine(ctx, student)
	if err != nil {
		t.Fatalf("list mine returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].Request.RequesterID != student.UserID {
		t.Fatalf("expected only the student's request, got %+v", mine)
	}

	all, err := service.ListAll(ctx, admin)
	if err != nil {
		t.Fatalf("list all returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 requests for admin, got %d", len(all))
	}
}

func TestListByStatusValidatesStatus(t *testing.T) {
	service := newTestService()

	if _, err := service.ListByStatus(context.Background(), admin, "archived"); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}
