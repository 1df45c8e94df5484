package persistence

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormInventoryLedger implements inventory.Ledger with conditional UPDATEs
// inside a single transaction. Each decrement only succeeds when enough
// stock remains (total_stock >= requested), so two concurrent commitments
// can never drive stock below zero: the row lock taken by the first UPDATE
// serializes the second, which then re-evaluates the condition against the
// decremented value. Any failed line rolls back every prior decrement.
type GormInventoryLedger struct {
	db *gorm.DB
}

// NewGormInventoryLedger creates a new GormInventoryLedger
func NewGormInventoryLedger(db *gorm.DB) *GormInventoryLedger {
	return &GormInventoryLedger{db: db}
}

// ReserveAndDecrement atomically decrements stock for every line or none
func (l *GormInventoryLedger) ReserveAndDecrement(ctx context.Context, lines []inventory.ReservationLine) error {
	if len(lines) == 0 {
		return nil
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return shared.NewDomainError("INVALID_QUANTITY", "Reservation quantity must be at least 1")
		}
	}

	// Lock rows in a stable order so two overlapping multi-line
	// reservations cannot deadlock each other.
	ordered := make([]inventory.ReservationLine, len(lines))
	copy(ordered, lines)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ProductID.String() < ordered[j].ProductID.String()
	})

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range ordered {
			result := tx.Exec(
				"UPDATE products SET total_stock = total_stock - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND total_stock >= ?",
				line.Quantity, line.ProductID, line.Quantity,
			)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				available, err := l.availableStock(tx, line)
				if err != nil {
					return err
				}
				return &inventory.OutOfStockError{
					ProductID: line.ProductID,
					Requested: line.Quantity,
					Available: available,
				}
			}
		}
		return nil
	})
}

// availableStock reads the current stock for an out-of-stock report. A
// missing product reports as zero available.
func (l *GormInventoryLedger) availableStock(tx *gorm.DB, line inventory.ReservationLine) (int, error) {
	var available int
	err := tx.Raw("SELECT total_stock FROM products WHERE id = ?", line.ProductID).Scan(&available).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	return available, nil
}
