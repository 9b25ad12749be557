package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type ReceiptIssuer struct{}

func (ReceiptIssuer) NewReceiptNumber(_ context.Context) (string, error) {
	return fmt.Sprintf("RCP%d-%s", time.Now().UnixMilli(), uuid.NewString()[:4]), nil
}
