// Package history builds the grouped, totaled transaction list consumed by
// the history view.
package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/application/adapter"
	"github.com/ZawaReck/household/internal/domain/entity"
	"github.com/ZawaReck/household/internal/domain/valueobject"
)

// Row is one rendered line of the history list. GroupTotal is set on the
// last member of a multi-item group: the view renders the group's single
// total row right below it.
type Row struct {
	Transaction   *entity.Transaction
	DisplayAmount decimal.Decimal
	Grouped       bool
	GroupTotal    *decimal.Decimal
}

// DaySection is one date header with its rows, newest date first in the
// output. Income and Expense are the day's real totals: hidden adjustment
// rows still count, moves never do.
type DaySection struct {
	Date    time.Time
	Rows    []Row
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// ListTransactionsInput selects the month to render.
type ListTransactionsInput struct {
	Year  int
	Month time.Month
}

// ListTransactionsOutput is the fully derived list view model.
type ListTransactionsOutput struct {
	Days []DaySection
}

// ListTransactionsUseCase derives the history list from the store. All
// grouping is recomputed from the month's transactions on every call; nothing
// is cached between renders.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute builds the day sections for the month.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	monthly, err := uc.transactionRepo.FindByMonth(ctx, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load month transactions: %w", err)
	}
	return &ListTransactionsOutput{Days: BuildDays(monthly)}, nil
}

// BuildDays derives the day sections from a month's transactions. Exposed
// separately so the entry form's surroundings can reuse it on a slice they
// already hold.
func BuildDays(monthly []*entity.Transaction) []DaySection {
	byDate := make(map[time.Time][]*entity.Transaction)
	for _, t := range monthly {
		byDate[t.Date] = append(byDate[t.Date], t)
	}

	dates := make([]time.Time, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	days := make([]DaySection, 0, len(dates))
	for _, date := range dates {
		section := buildDay(date, byDate[date])
		if section == nil {
			continue
		}
		days = append(days, *section)
	}
	return days
}

// buildDay renders one date: tax-adjustment items never appear, members of a
// multi-item group render contiguously at the first member's position, and
// the group total lands on the last member. Days whose only items are
// adjustments disappear entirely.
func buildDay(date time.Time, items []*entity.Transaction) *DaySection {
	visibleCount := 0
	for _, t := range items {
		if !t.IsTaxAdjustment {
			visibleCount++
		}
	}
	if visibleCount == 0 {
		return nil
	}

	groups := make(map[uuid.UUID]*valueobject.TransactionGroup)
	for _, t := range items {
		if t.GroupID == nil {
			continue
		}
		if _, ok := groups[*t.GroupID]; ok {
			continue
		}
		groups[*t.GroupID] = valueobject.ResolveGroup(items, *t.GroupID)
	}

	// Order: ungrouped and single-member items keep store order; a group
	// with two or more visible members is pulled together where its first
	// member appears.
	ordered := make([]*entity.Transaction, 0, visibleCount)
	seen := make(map[uuid.UUID]bool)
	for _, t := range items {
		if t.IsTaxAdjustment {
			continue
		}
		if t.GroupID != nil {
			group := groups[*t.GroupID]
			if len(group.Items) >= 2 {
				if seen[*t.GroupID] {
					continue
				}
				ordered = append(ordered, group.Items...)
				seen[*t.GroupID] = true
				continue
			}
		}
		ordered = append(ordered, t)
	}

	lastOfGroup := make(map[uuid.UUID]uuid.UUID)
	for _, t := range ordered {
		if t.GroupID != nil {
			lastOfGroup[*t.GroupID] = t.ID
		}
	}

	section := &DaySection{Date: date, Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range items {
		switch t.Type {
		case entity.TransactionTypeIncome:
			section.Income = section.Income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			section.Expense = section.Expense.Add(t.Amount)
		}
	}
	for _, t := range ordered {
		row := Row{Transaction: t, DisplayAmount: t.Amount}
		if t.GroupID != nil {
			group := groups[*t.GroupID]
			row.Grouped = len(group.Items) >= 2
			// A lone exclusive-tax item shows its gross inline instead of a
			// separate total row.
			if group.IsExternal() && len(group.Items) == 1 {
				row.DisplayAmount = group.Total()
			}
			if row.Grouped && lastOfGroup[*t.GroupID] == t.ID {
				total := group.Total()
				row.GroupTotal = &total
			}
		}
		section.Rows = append(section.Rows, row)
	}
	return section
}
