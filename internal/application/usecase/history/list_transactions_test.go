package history

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/domain/entity"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func grouped(t *entity.Transaction, groupID uuid.UUID) *entity.Transaction {
	t.ID = uuid.New()
	gid := groupID
	t.GroupID = &gid
	return t
}

func withID(t *entity.Transaction) *entity.Transaction {
	t.ID = uuid.New()
	return t
}

func TestBuildDays(t *testing.T) {
	day1 := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	t.Run("newest date first", func(t *testing.T) {
		monthly := []*entity.Transaction{
			withID(entity.NewExpense(d(100), day1, "old", "Other", "QR", "", entity.TaxModeInclusive, entity.TaxRateTen)),
			withID(entity.NewExpense(d(200), day2, "new", "Other", "QR", "", entity.TaxModeInclusive, entity.TaxRateTen)),
		}

		days := BuildDays(monthly)

		if len(days) != 2 {
			t.Fatalf("expected 2 day sections, got %d", len(days))
		}
		if !days[0].Date.Equal(day2) || !days[1].Date.Equal(day1) {
			t.Error("expected newest date first")
		}
	})

	t.Run("adjustment rows never render", func(t *testing.T) {
		groupID := uuid.New()
		monthly := []*entity.Transaction{
			grouped(entity.NewExpense(d(1000), day1, "groceries", "Groceries", "QR", "", entity.TaxModeExclusive, entity.TaxRateTen), groupID),
			withID(entity.NewTaxAdjustment(d(100), day1, "QR", groupID)),
		}

		days := BuildDays(monthly)

		if len(days) != 1 || len(days[0].Rows) != 1 {
			t.Fatalf("expected a single visible row, got %+v", days)
		}
		if days[0].Rows[0].Transaction.IsTaxAdjustment {
			t.Error("expected the adjustment row hidden")
		}
	})

	t.Run("a day holding only an adjustment disappears", func(t *testing.T) {
		groupID := uuid.New()
		monthly := []*entity.Transaction{
			grouped(entity.NewExpense(d(1000), day1, "groceries", "Groceries", "QR", "", entity.TaxModeExclusive, entity.TaxRateTen), groupID),
			withID(entity.NewTaxAdjustment(d(100), day2, "QR", groupID)),
		}

		days := BuildDays(monthly)

		if len(days) != 1 || !days[0].Date.Equal(day1) {
			t.Errorf("expected only the member's day, got %+v", days)
		}
	})

	t.Run("multi-member group renders contiguously with a total on the last member", func(t *testing.T) {
		groupID := uuid.New()
		a := grouped(entity.NewExpense(d(1000), day1, "a", "Groceries", "QR", "", entity.TaxModeExclusive, entity.TaxRateTen), groupID)
		other := withID(entity.NewExpense(d(77), day1, "between", "Other", "QR", "", entity.TaxModeInclusive, entity.TaxRateTen))
		b := grouped(entity.NewExpense(d(500), day1, "b", "Groceries", "QR", "", entity.TaxModeExclusive, entity.TaxRateEight), groupID)
		monthly := []*entity.Transaction{a, other, b}

		days := BuildDays(monthly)

		if len(days) != 1 {
			t.Fatalf("expected 1 day section, got %d", len(days))
		}
		rows := days[0].Rows
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		// The group pulls together where its first member appears.
		if rows[0].Transaction != a || rows[1].Transaction != b || rows[2].Transaction != other {
			t.Error("expected group members contiguous at the first member's position")
		}
		if rows[0].GroupTotal != nil {
			t.Error("expected no total on the first member")
		}
		if rows[1].GroupTotal == nil {
			t.Fatal("expected the total on the last member")
		}
		// floor(1000*1.10) + floor(500*1.08) = 1100 + 540
		if !rows[1].GroupTotal.Equal(d(1640)) {
			t.Errorf("expected group total 1640, got %s", rows[1].GroupTotal)
		}
		if !rows[0].Grouped || !rows[1].Grouped || rows[2].Grouped {
			t.Error("unexpected grouped flags")
		}
		// Members show their base amounts per line.
		if !rows[0].DisplayAmount.Equal(d(1000)) {
			t.Errorf("expected base amount per line, got %s", rows[0].DisplayAmount)
		}
	})

	t.Run("lone external member shows its gross inline without a total row", func(t *testing.T) {
		groupID := uuid.New()
		monthly := []*entity.Transaction{
			grouped(entity.NewExpense(d(1000), day1, "groceries", "Groceries", "QR", "", entity.TaxModeExclusive, entity.TaxRateTen), groupID),
			withID(entity.NewTaxAdjustment(d(100), day1, "QR", groupID)),
		}

		days := BuildDays(monthly)

		row := days[0].Rows[0]
		if row.Grouped {
			t.Error("expected a lone member to not render as a group")
		}
		if row.GroupTotal != nil {
			t.Error("expected no separate total row")
		}
		if !row.DisplayAmount.Equal(d(1100)) {
			t.Errorf("expected inline gross 1100, got %s", row.DisplayAmount)
		}
	})

	t.Run("day totals count hidden adjustments and skip moves", func(t *testing.T) {
		groupID := uuid.New()
		monthly := []*entity.Transaction{
			withID(entity.NewIncome(d(250000), day1, "salary", "Salary", "Bank", "")),
			grouped(entity.NewExpense(d(1000), day1, "groceries", "Groceries", "QR", "", entity.TaxModeExclusive, entity.TaxRateTen), groupID),
			withID(entity.NewTaxAdjustment(d(100), day1, "QR", groupID)),
			withID(entity.NewMove(d(30000), day1, "Bank", "QR", "top up")),
		}

		days := BuildDays(monthly)

		if len(days) != 1 {
			t.Fatalf("expected 1 day section, got %d", len(days))
		}
		if !days[0].Income.Equal(d(250000)) {
			t.Errorf("expected day income 250000, got %s", days[0].Income)
		}
		if !days[0].Expense.Equal(d(1100)) {
			t.Errorf("expected day expense 1100, got %s", days[0].Expense)
		}
	})
}
