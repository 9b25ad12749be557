package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"clearfund/contexts/funding/adapters/memory"
	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
	"clearfund/contexts/funding/donation-ledger/ports"
)

func newTestService() Service {
	store := memory.NewStore()
	return Service{Repo: store, Clock: store, Receipts: store}
}

func donor(id int64, tag string) entities.Caller {
	return entities.Caller{UserID: id, Role: entities.RoleDonor, SourceTag: tag}
}

var admin = entities.Caller{UserID: 99, Role: entities.RoleAdmin}

func TestRecordRequiresDonorRole(t *testing.T) {
	service := newTestService()
	student := entities.Caller{UserID: 5, Role: entities.RoleStudent}

	_, err := service.Record(context.Background(), student, ports.RecordDonationInput{
		Amount:  decimal.NewFromInt(100),
		Purpose: "library books",
	})
	if !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestRecordRejectsNonPositiveAmount(t *testing.T) {
	service := newTestService()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		_, err := service.Record(context.Background(), donor(1, ""), ports.RecordDonationInput{
			Amount:  amount,
			Purpose: "library books",
		})
		if !errors.Is(err, domainerrors.ErrInvalidAmount) {
			t.Fatalf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestRecordRequiresPurpose(t *testing.T) {
	service := newTestService()

	_, err := service.Record(context.Background(), donor(1, ""), ports.RecordDonationInput{
		Amount:  decimal.NewFromInt(100),
		Purpose: "   ",
	})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecordDefaultsDonationType(t *testing.T) {
	service := newTestService()

	donation, err := service.Record(context.Background(), donor(1, ""), ports.RecordDonationInput{
		Amount:  decimal.NewFromInt(100),
		Purpose: "library books",
	})
	if err != nil {
		t.Fatalf("record returned error: %v", err)
	}
	if donation.DonationType != entities.DonationTypeGeneral {
		t.Fatalf("expected general donation type, got %q", donation.DonationType)
	}
	if donation.ReceiptNumber == "" {
		t.Fatal("expected a generated receipt number")
	}

	_, err = service.Record(context.Background(), donor(1, ""), ports.RecordDonationInput{
		Amount:       decimal.NewFromInt(100),
		Purpose:      "library books",
		DonationType: "endowment",
	})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown donation type, got %v", err)
	}
}

func TestDonorSeesOnlyOwnDonations(t *testing.T) {
	service := newTestService()
	first := donor(1, "")
	second := donor(2, "")

	recorded, err := service.Record(context.Background(), first, ports.RecordDonationInput{
		Amount:  decimal.NewFromInt(100),
		Purpose: "library books",
	})
	if err != nil {
		t.Fatalf("record returned error: %v", err)
	}

	if _, err := service.Get(context.Background(), second, recorded.ID); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for foreign donation, got %v", err)
	}
	if _, err := service.Get(context.Background(), admin, recorded.ID); err != nil {
		t.Fatalf("admin get returned error: %v", err)
	}

	mine, err := service.ListMine(context.Background(), first)
	if err != nil {
		t.Fatalf("list mine returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].Donation.ID != recorded.ID {
		t.Fatalf("expected exactly the donor's own donation, got %+v", mine)
	}
}

func TestListBySourceTagScope(t *testing.T) {
	service := newTestService()
	tagged := donor(1, "asha-foundation")

	if _, err := service.ListBySourceTag(context.Background(), tagged, "asha-foundation"); err != nil {
		t.Fatalf("own tag returned error: %v", err)
	}
	if _, err := service.ListBySourceTag(context.Background(), tagged, "other-trust"); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for foreign tag, got %v", err)
	}
	if _, err := service.ListBySourceTag(context.Background(), admin, ""); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty tag, got %v", err)
	}
}

func TestStatsAdminOnlyAndAveraged(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	if _, err := service.Stats(ctx, donor(1, "")); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for donor stats, got %v", err)
	}

	for _, amount := range []int64{100, 50} {
		if _, err := service.Record(ctx, donor(1, ""), ports.RecordDonationInput{
			Amount:  decimal.NewFromInt(amount),
			Purpose: "library books",
		}); err != nil {
			t.Fatalf("record returned error: %v", err)
		}
	}

	stats, err := service.Stats(ctx, admin)
	if err != nil {
		t.Fatalf("stats returned error: %v", err)
	}
	if stats.TotalDonations != 2 {
		t.Fatalf("expected 2 donations, got %d", stats.TotalDonations)
	}
	if !stats.TotalAmount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected total 150, got %s", stats.TotalAmount)
	}
	if !stats.AverageAmount.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected average 75, got %s", stats.AverageAmount)
	}
	if stats.UniqueDonors != 1 {
		t.Fatalf("expected 1 unique donor, got %d", stats.UniqueDonors)
	}
}
