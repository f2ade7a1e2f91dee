// Package summary computes the month's headline figures for the dashboard.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/application/adapter"
	"github.com/ZawaReck/household/internal/domain/entity"
)

// MonthlySummaryInput selects the month to summarize.
type MonthlySummaryInput struct {
	Year  int
	Month time.Month
}

// MonthlySummaryOutput holds the month's income, expense and running
// balance. Moves shuffle money between accounts and never change the totals;
// tax-adjustment items count as the expenses they are.
type MonthlySummaryOutput struct {
	Income         decimal.Decimal
	Expense        decimal.Decimal
	Total          decimal.Decimal // income minus expense for the month
	OpeningBalance decimal.Decimal // carried over from all prior months
	Balance        decimal.Decimal // opening balance plus this month's total
}

// MonthlySummaryUseCase aggregates a month's transactions.
type MonthlySummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewMonthlySummaryUseCase creates a new MonthlySummaryUseCase instance.
func NewMonthlySummaryUseCase(transactionRepo adapter.TransactionRepository) *MonthlySummaryUseCase {
	return &MonthlySummaryUseCase{transactionRepo: transactionRepo}
}

// Execute computes the summary for the given month.
func (uc *MonthlySummaryUseCase) Execute(ctx context.Context, input MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	monthly, err := uc.transactionRepo.FindByMonth(ctx, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load month transactions: %w", err)
	}

	monthStart := time.Date(input.Year, input.Month, 1, 0, 0, 0, 0, time.UTC)
	opening, err := uc.transactionRepo.BalanceBefore(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}

	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range monthly {
		switch t.Type {
		case entity.TransactionTypeIncome:
			income = income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			expense = expense.Add(t.Amount)
		}
	}

	total := income.Sub(expense)
	return &MonthlySummaryOutput{
		Income:         income,
		Expense:        expense,
		Total:          total,
		OpeningBalance: opening,
		Balance:        opening.Add(total),
	}, nil
}
