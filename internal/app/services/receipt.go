package services

import (
	"fmt"
	"math/rand"
	"time"
)

// receiptAttempts bounds retries when a generated receipt number collides
// with an existing one.
const receiptAttempts = 3

// ReceiptGenerator produces candidate receipt numbers. Collisions are
// possible and handled by the caller retrying against the unique index.
type ReceiptGenerator func() string

// NewReceiptGenerator returns the default generator: a millisecond timestamp
// plus a three digit random suffix, e.g. "RCPT-1736069400000-042".
func NewReceiptGenerator(now func() time.Time) ReceiptGenerator {
	return func() string {
		return fmt.Sprintf("RCPT-%d-%03d", now().UnixMilli(), rand.Intn(1000))
	}
}
