package postgresadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReceiptIssuer creates receipt numbers for recorded donations. The unique
// index on donations.receipt_number backstops the uuid suffix.
type ReceiptIssuer struct{}

func (ReceiptIssuer) NewReceiptNumber(_ context.Context) (string, error) {
	return fmt.Sprintf("RCP%d-%s", time.Now().UnixMilli(), uuid.NewString()[:4]), nil
}
