package summary

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/domain/entity"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// fakeRepo serves a canned month slice and opening balance.
type fakeRepo struct {
	monthly []*entity.Transaction
	opening decimal.Decimal

	balanceCutoff time.Time
}

func (f *fakeRepo) Add(context.Context, *entity.Transaction) error    { return nil }
func (f *fakeRepo) Update(context.Context, *entity.Transaction) error { return nil }
func (f *fakeRepo) Delete(context.Context, uuid.UUID) error           { return nil }
func (f *fakeRepo) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}

func (f *fakeRepo) FindByMonth(_ context.Context, _ int, _ time.Month) ([]*entity.Transaction, error) {
	return f.monthly, nil
}

func (f *fakeRepo) FindAll(_ context.Context) ([]*entity.Transaction, error) {
	return f.monthly, nil
}

func (f *fakeRepo) BalanceBefore(_ context.Context, cutoff time.Time) (decimal.Decimal, error) {
	f.balanceCutoff = cutoff
	return f.opening, nil
}

func TestMonthlySummary(t *testing.T) {
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	t.Run("moves never change the totals, adjustments count as expenses", func(t *testing.T) {
		groupID := uuid.New()
		repo := &fakeRepo{
			opening: d(10000),
			monthly: []*entity.Transaction{
				entity.NewIncome(d(250000), date, "salary", "Salary", "Bank", ""),
				entity.NewExpense(d(1000), date, "groceries", "Groceries", "QR", "", entity.TaxModeExclusive, entity.TaxRateTen),
				entity.NewTaxAdjustment(d(100), date, "QR", groupID),
				entity.NewMove(d(30000), date, "Bank", "Wallet", ""),
			},
		}

		uc := NewMonthlySummaryUseCase(repo)
		output, err := uc.Execute(context.Background(), MonthlySummaryInput{Year: 2026, Month: time.August})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.Income.Equal(d(250000)) {
			t.Errorf("expected income 250000, got %s", output.Income)
		}
		if !output.Expense.Equal(d(1100)) {
			t.Errorf("expected expense 1100, got %s", output.Expense)
		}
		if !output.Total.Equal(d(248900)) {
			t.Errorf("expected total 248900, got %s", output.Total)
		}
		if !output.OpeningBalance.Equal(d(10000)) {
			t.Errorf("expected opening balance 10000, got %s", output.OpeningBalance)
		}
		if !output.Balance.Equal(d(258900)) {
			t.Errorf("expected balance 258900, got %s", output.Balance)
		}
	})

	t.Run("opening balance cuts off at the first of the month", func(t *testing.T) {
		repo := &fakeRepo{}
		uc := NewMonthlySummaryUseCase(repo)

		if _, err := uc.Execute(context.Background(), MonthlySummaryInput{Year: 2026, Month: time.August}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
		if !repo.balanceCutoff.Equal(want) {
			t.Errorf("expected cutoff %s, got %s", want, repo.balanceCutoff)
		}
	})

	t.Run("empty month sums to the opening balance", func(t *testing.T) {
		repo := &fakeRepo{opening: d(500)}
		uc := NewMonthlySummaryUseCase(repo)

		output, err := uc.Execute(context.Background(), MonthlySummaryInput{Year: 2026, Month: time.August})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Balance.Equal(d(500)) || !output.Total.IsZero() {
			t.Errorf("unexpected output: %+v", output)
		}
	})
}
