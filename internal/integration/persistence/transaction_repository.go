// Package persistence implements the application adapters on top of GORM.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ZawaReck/household/internal/domain/entity"
	domainerror "github.com/ZawaReck/household/internal/domain/error"
	"github.com/ZawaReck/household/internal/integration/persistence/model"
)

// TransactionRepository implements adapter.TransactionRepository using GORM.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new TransactionRepository instance.
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Add persists a new transaction, assigning it a fresh id when none is set.
func (r *TransactionRepository) Add(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	transaction.UpdatedAt = transaction.CreatedAt

	transactionModel := model.TransactionFromEntity(transaction)
	if err := r.db.WithContext(ctx).Create(transactionModel).Error; err != nil {
		return domainerror.NewStoreError(domainerror.ErrCodeTransactionWrite, "failed to create transaction", err)
	}
	return nil
}

// Update replaces the stored transaction with the given one. Updating an id
// that no longer exists is a no-op, matching the forgiving semantics of the
// entry form's commit path.
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transaction.UpdatedAt = time.Now()

	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", transactionModel.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(transactionModel)
	if result.Error != nil {
		return domainerror.NewStoreError(domainerror.ErrCodeTransactionWrite, "failed to update transaction", result.Error)
	}
	return nil
}

// Delete removes a transaction permanently. Deleting an id that does not
// exist is a no-op.
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return domainerror.NewStoreError(domainerror.ErrCodeTransactionWrite, "failed to delete transaction", result.Error)
	}
	return nil
}

// FindByID retrieves a transaction by its id.
func (r *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, domainerror.NewStoreError(domainerror.ErrCodeTransactionRead, "failed to find transaction", err)
	}
	return transactionModel.ToEntity(), nil
}

// FindByMonth retrieves every transaction dated in the given month, ordered
// by date and then insertion order. Group derivation and the history view
// both depend on that ordering.
func (r *TransactionRepository) FindByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Transaction, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var transactionModels []model.TransactionModel
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", monthStart, monthEnd).
		Order("date ASC, created_at ASC").
		Find(&transactionModels).Error
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeTransactionRead, "failed to find transactions by month", err)
	}

	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, transactionModels[i].ToEntity())
	}
	return transactions, nil
}

// FindAll retrieves every stored transaction in date and insertion order.
func (r *TransactionRepository) FindAll(ctx context.Context) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	err := r.db.WithContext(ctx).
		Order("date ASC, created_at ASC").
		Find(&transactionModels).Error
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeTransactionRead, "failed to find transactions", err)
	}

	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, transactionModels[i].ToEntity())
	}
	return transactions, nil
}

// BalanceBefore sums income minus expense over every transaction dated
// strictly before the cutoff. Moves shuffle money between accounts and do
// not affect the balance.
func (r *TransactionRepository) BalanceBefore(ctx context.Context, cutoff time.Time) (decimal.Decimal, error) {
	var balance decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(CASE type WHEN ? THEN amount WHEN ? THEN -amount ELSE 0 END), 0)",
			string(entity.TransactionTypeIncome), string(entity.TransactionTypeExpense)).
		Where("date < ?", cutoff).
		Scan(&balance).Error
	if err != nil {
		return decimal.Zero, domainerror.NewStoreError(domainerror.ErrCodeTransactionRead, "failed to compute balance", err)
	}
	if !balance.Valid {
		return decimal.Zero, nil
	}
	return balance.Decimal, nil
}
