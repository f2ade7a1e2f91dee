package history

import (
	"context"
	"fmt"

	"github.com/ZawaReck/household/internal/application/adapter"
	"github.com/ZawaReck/household/internal/domain/entity"
)

// ExportTransactionsOutput holds the complete transaction history for a
// full-data backup.
type ExportTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ExportTransactionsUseCase dumps every stored transaction, adjustments
// included, in date and insertion order.
type ExportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute loads the full history.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context) (*ExportTransactionsOutput, error) {
	transactions, err := uc.transactionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return &ExportTransactionsOutput{Transactions: transactions}, nil
}
