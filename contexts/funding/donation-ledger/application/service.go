package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
	"clearfund/contexts/funding/donation-ledger/ports"
)

type Service struct {
	Repo     ports.Repository
	Clock    ports.Clock
	Receipts ports.ReceiptGenerator
	Logger   *slog.Logger
}

// Record books a new donation for the calling donor. The amount is immutable
// after creation; the donation starts in the completed state with a fresh
// receipt number.
func (s Service) Record(ctx context.Context, caller entities.Caller, input ports.RecordDonationInput) (entities.Donation, error) {
	if caller.Role != entities.RoleDonor {
		return entities.Donation{}, domainerrors.ErrAccessDenied
	}
	if !input.Amount.IsPositive() {
		return entities.Donation{}, domainerrors.ErrInvalidAmount
	}
	if strings.TrimSpace(input.Purpose) == "" {
		return entities.Donation{}, domainerrors.ErrInvalidInput
	}
	donationType := input.DonationType
	if donationType == "" {
		donationType = entities.DonationTypeGeneral
	}
	if !donationType.Valid() {
		return entities.Donation{}, domainerrors.ErrInvalidInput
	}

	receipt, err := s.Receipts.NewReceiptNumber(ctx)
	if err != nil {
		return entities.Donation{}, err
	}

	donation, err := s.Repo.CreateDonation(ctx, entities.Donation{
		DonorID:       caller.UserID,
		Amount:        input.Amount,
		Purpose:       strings.TrimSpace(input.Purpose),
		Message:       strings.TrimSpace(input.Message),
		DonationType:  donationType,
		Status:        entities.DonationStatusCompleted,
		ReceiptNumber: receipt,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return entities.Donation{}, err
	}

	s.logger().Info("donation recorded",
		"event", "donation_recorded",
		"module", "funding/donation-ledger",
		"layer", "application",
		"donation_id", donation.ID,
		"donor_id", donation.DonorID,
		"amount", donation.Amount.String(),
		"receipt_number", donation.ReceiptNumber,
	)
	return donation, nil
}

// Get returns a single donation. Admins see every donation; a donor sees
// only their own.
func (s Service) Get(ctx context.Context, caller entities.Caller, donationID int64) (ports.DonationRecord, error) {
	record, err := s.Repo.GetDonation(ctx, donationID)
	if err != nil {
		return ports.DonationRecord{}, err
	}
	if !caller.IsAdmin() && record.Donation.DonorID != caller.UserID {
		return ports.DonationRecord{}, domainerrors.ErrAccessDenied
	}
	return record, nil
}

func (s Service) ListAll(ctx context.Context, caller entities.Caller) ([]ports.DonationRecord, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.ListDonations(ctx)
}

func (s Service) ListMine(ctx context.Context, caller entities.Caller) ([]ports.DonationRecord, error) {
	if caller.Role != entities.RoleDonor {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.ListDonationsByDonor(ctx, caller.UserID)
}

// ListBySourceTag serves both the admin view and the donor's own scoped
// view; a donor may only pass their own source tag.
func (s Service) ListBySourceTag(ctx context.Context, caller entities.Caller, sourceTag string) ([]ports.DonationRecord, error) {
	sourceTag = strings.TrimSpace(sourceTag)
	if sourceTag == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	if !caller.IsAdmin() && caller.SourceTag != sourceTag {
		return nil, domainerrors.ErrAccessDenied
	}
	return s.Repo.ListDonationsBySourceTag(ctx, sourceTag)
}

// Balance reports the donation's received amount alongside the allocated and
// remaining figures derived from its non-cancelled allocations.
func (s Service) Balance(ctx context.Context, caller entities.Caller, donationID int64) (ports.Balance, error) {
	record, err := s.Repo.GetDonation(ctx, donationID)
	if err != nil {
		return ports.Balance{}, err
	}
	if !caller.IsAdmin() && record.Donation.DonorID != caller.UserID {
		return ports.Balance{}, domainerrors.ErrAccessDenied
	}
	return s.Repo.GetDonationBalance(ctx, donationID)
}

func (s Service) Stats(ctx context.Context, caller entities.Caller) (ports.Stats, error) {
	if !caller.IsAdmin() {
		return ports.Stats{}, domainerrors.ErrAccessDenied
	}
	return s.Repo.DonationStats(ctx)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
