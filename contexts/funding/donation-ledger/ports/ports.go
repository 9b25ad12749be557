package ports

import (
	"context"
	"time"

	"clearfund/contexts/funding/domain/entities"

	"github.com/shopspring/decimal"
)

// DonationRecord is a donation joined with its donor's display fields.
type DonationRecord struct {
	Donation       entities.Donation
	DonorName      string
	DonorEmail     string
	DonorSourceTag string
}

// Balance is the derived position of a single donation. Allocated sums the
// donation's non-cancelled allocations at the time of the call.
type Balance struct {
	Amount    decimal.Decimal
	Allocated decimal.Decimal
	Remaining decimal.Decimal
}

type Stats struct {
	TotalDonations int
	TotalAmount    decimal.Decimal
	AverageAmount  decimal.Decimal
	UniqueDonors   int
}

type RecordDonationInput struct {
	Amount       decimal.Decimal
	Purpose      string
	Message      string
	DonationType entities.DonationType
}

type Repository interface {
	CreateDonation(ctx context.Context, donation entities.Donation) (entities.Donation, error)
	GetDonation(ctx context.Context, donationID int64) (DonationRecord, error)
	ListDonations(ctx context.Context) ([]DonationRecord, error)
	ListDonationsByDonor(ctx context.Context, donorID int64) ([]DonationRecord, error)
	ListDonationsBySourceTag(ctx context.Context, sourceTag string) ([]DonationRecord, error)
	GetDonationBalance(ctx context.Context, donationID int64) (Balance, error)
	DonationStats(ctx context.Context) (Stats, error)
}

type Clock interface {
	Now() time.Time
}

// ReceiptGenerator issues unique receipt numbers for recorded donations.
type ReceiptGenerator interface {
	NewReceiptNumber(ctx context.Context) (string, error)
}
