package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ReservationLine is one product/quantity pair to reserve
type ReservationLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// Ledger is the authoritative writer of stock decrements. Implementations
// must make the check-then-decrement atomic per product and all-or-nothing
// across the given lines: either every line is decremented durably or none
// is, and concurrent reservations can never drive stock below zero.
type Ledger interface {
	ReserveAndDecrement(ctx context.Context, lines []ReservationLine) error
}

// OutOfStockError reports the first line whose quantity exceeded the
// available stock. No decrement has happened when it is returned.
type OutOfStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

// Error implements the error interface
func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %s out of stock: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}
