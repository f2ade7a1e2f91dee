// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/domain/entity"
)

// TransactionRepository defines the transaction store the entry core writes
// to. Writes are synchronous and immediately consistent: the core never
// re-reads its own writes within one commit, it carries the just-written
// values forward instead.
type TransactionRepository interface {
	// Add persists a new transaction and assigns its id; callers never pick
	// ids themselves.
	Add(ctx context.Context, transaction *entity.Transaction) error

	// Update replaces the stored transaction matching transaction.ID.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes the transaction with the given id.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID retrieves a transaction by its id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByMonth retrieves the month's transactions ordered by date and
	// insertion order. This is the slice handed to the entry form and the
	// history view.
	FindByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Transaction, error)

	// FindAll retrieves every transaction in date and insertion order. Used
	// for full-data export only.
	FindAll(ctx context.Context) ([]*entity.Transaction, error)

	// BalanceBefore returns income minus expense over every transaction
	// dated strictly before the given date; moves do not affect it. Used for
	// the monthly opening balance.
	BalanceBefore(ctx context.Context, date time.Time) (decimal.Decimal, error)
}
