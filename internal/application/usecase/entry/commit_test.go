package entry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/domain/entity"
)

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// fakeStore records writes in issue order.
type fakeStore struct {
	added   []*entity.Transaction
	updated []*entity.Transaction
	deleted []uuid.UUID
	ops     []string
}

func (f *fakeStore) Add(_ context.Context, t *entity.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.added = append(f.added, t)
	f.ops = append(f.ops, "add:"+t.Name)
	return nil
}

func (f *fakeStore) Update(_ context.Context, t *entity.Transaction) error {
	f.updated = append(f.updated, t)
	f.ops = append(f.ops, "update:"+t.Name)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	f.ops = append(f.ops, "delete")
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, t := range f.added {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindByMonth(_ context.Context, _ int, _ time.Month) ([]*entity.Transaction, error) {
	return f.added, nil
}

func (f *fakeStore) FindAll(_ context.Context) ([]*entity.Transaction, error) {
	return f.added, nil
}

func (f *fakeStore) BalanceBefore(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeStore) writes() int {
	return len(f.added) + len(f.updated) + len(f.deleted)
}

func groupedExpense(amount int64, name string, rate entity.TaxRate, groupID uuid.UUID) *entity.Transaction {
	t := entity.NewExpense(decimalFromInt(amount), anchor, name, "Groceries", "QR", "", entity.TaxModeExclusive, rate)
	t.ID = uuid.New()
	gid := groupID
	t.GroupID = &gid
	return t
}

func TestCommitSingle(t *testing.T) {
	t.Run("persists one income transaction", func(t *testing.T) {
		s := newTestSession()
		store := &fakeStore{}
		s.SelectType(entity.TransactionTypeIncome)
		s.SetAmount("5000")
		s.SetName("salary")

		if err := s.Commit(context.Background(), store, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(store.added) != 1 {
			t.Fatalf("expected 1 write, got %d", len(store.added))
		}
		written := store.added[0]
		if written.Type != entity.TransactionTypeIncome || !written.Amount.Equal(decimalFromInt(5000)) {
			t.Errorf("unexpected written transaction: %+v", written)
		}
		if written.GroupID != nil {
			t.Error("expected income to carry no group id")
		}
	})

	t.Run("invalid form is a silent no-op", func(t *testing.T) {
		s := newTestSession()
		store := &fakeStore{}
		s.SelectType(entity.TransactionTypeMove)
		s.SetAmount("-10")

		if err := s.Commit(context.Background(), store, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.writes() != 0 {
			t.Errorf("expected no writes, got %d", store.writes())
		}
	})
}

func TestCommitExpenseDrafts(t *testing.T) {
	t.Run("inclusive batch shares one group id and no adjustment", func(t *testing.T) {
		s := newTestSession()
		store := &fakeStore{}
		stageExpense(s, "300", "coffee")
		stageExpense(s, "500", "lunch")
		s.SetAmount("700")
		s.SetName("dinner")

		if err := s.Commit(context.Background(), store, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(store.added) != 3 {
			t.Fatalf("expected 3 writes, got %d", len(store.added))
		}
		gid := store.added[0].GroupID
		if gid == nil {
			t.Fatal("expected a group id")
		}
		for _, written := range store.added {
			if written.GroupID == nil || *written.GroupID != *gid {
				t.Error("expected all members to share one group id")
			}
			if written.TaxMode != entity.TaxModeInclusive {
				t.Error("expected inclusive tax mode")
			}
			if written.IsTaxAdjustment {
				t.Error("expected no adjustment for an inclusive batch")
			}
		}
		if len(s.Queue()) != 0 {
			t.Error("expected queue cleared after commit")
		}
	})

	t.Run("external batch writes the adjustment last", func(t *testing.T) {
		s := newTestSession()
		store := &fakeStore{}
		s.SetExternalTax(true)
		stageExpense(s, "1000", "groceries")
		s.SetTaxRate(entity.TaxRateEight)
		stageExpense(s, "500", "snacks")

		if err := s.Commit(context.Background(), store, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(store.added) != 3 {
			t.Fatalf("expected 3 writes, got %d", len(store.added))
		}
		adjustment := store.added[2]
		if !adjustment.IsTaxAdjustment {
			t.Fatal("expected the adjustment to be written last")
		}
		// floor(1000*1.10)-1000 + floor(500*1.08)-500 = 100 + 40
		if !adjustment.Amount.Equal(decimalFromInt(140)) {
			t.Errorf("expected adjustment amount 140, got %s", adjustment.Amount)
		}
		if !adjustment.Date.Equal(store.added[0].Date) {
			t.Error("expected adjustment dated at the first expense")
		}
		if adjustment.Source != store.added[0].Source {
			t.Error("expected adjustment to inherit the first expense's source")
		}
		if *adjustment.GroupID != *store.added[0].GroupID {
			t.Error("expected adjustment in the same group")
		}
		for _, written := range store.added[:2] {
			if written.TaxMode != entity.TaxModeExclusive {
				t.Error("expected exclusive tax mode on members")
			}
			if written.TaxBaseAmount == nil || !written.TaxBaseAmount.Equal(written.Amount) {
				t.Error("expected the pre-tax base recorded on members")
			}
		}
	})

	t.Run("commit-time toggle governs the whole batch", func(t *testing.T) {
		s := newTestSession()
		store := &fakeStore{}
		// Staged while the toggle is off, committed with it on.
		stageExpense(s, "1000", "groceries")
		s.SetExternalTax(true)

		if err := s.Commit(context.Background(), store, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(store.added) != 2 {
			t.Fatalf("expected member plus adjustment, got %d writes", len(store.added))
		}
		if store.added[0].TaxMode != entity.TaxModeExclusive {
			t.Error("expected the toggle to override the draft's stored mode")
		}
		if !store.added[1].IsTaxAdjustment || !store.added[1].Amount.Equal(decimalFromInt(100)) {
			t.Errorf("expected adjustment of 100, got %+v", store.added[1])
		}
	})

	t.Run("zero-rate-only batch adds no adjustment", func(t *testing.T) {
		s := newTestSession()
		store := &fakeStore{}
		s.SetExternalTax(true)
		s.SetTaxRate(entity.TaxRateZero)
		stageExpense(s, "700", "stamps")

		if err := s.Commit(context.Background(), store, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(store.added) != 1 {
			t.Fatalf("expected 1 write, got %d", len(store.added))
		}
	})

	t.Run("empty queue and invalid form is a no-op", func(t *testing.T) {
		s := newTestSession()
		store := &fakeStore{}

		if err := s.Commit(context.Background(), store, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.writes() != 0 {
			t.Errorf("expected no writes, got %d", store.writes())
		}
	})

	t.Run("appends into the active group and reuses its adjustment", func(t *testing.T) {
		groupID := uuid.New()
		a := groupedExpense(1000, "groceries", entity.TaxRateTen, groupID)
		adjustment := entity.NewTaxAdjustment(decimalFromInt(100), anchor, "QR", groupID)
		adjustment.ID = uuid.New()
		monthly := []*entity.Transaction{a, adjustment}

		s := newTestSession()
		store := &fakeStore{}
		s.SelectGroup(groupID, anchor, monthly)
		s.SetAmount("500")
		s.SetName("snacks")

		if err := s.Commit(context.Background(), store, monthly); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(store.added) != 1 {
			t.Fatalf("expected 1 added member, got %d", len(store.added))
		}
		if *store.added[0].GroupID != groupID {
			t.Error("expected new member committed into the active group")
		}
		if len(store.updated) != 1 || !store.updated[0].IsTaxAdjustment {
			t.Fatal("expected the existing adjustment to be updated, not re-added")
		}
		// floor(1500*1.10) - 1500 = 150
		if !store.updated[0].Amount.Equal(decimalFromInt(150)) {
			t.Errorf("expected adjustment amount 150, got %s", store.updated[0].Amount)
		}
	})
}

func TestCommitEdit(t *testing.T) {
	t.Run("updates the member and re-reconciles the adjustment in place", func(t *testing.T) {
		groupID := uuid.New()
		a := groupedExpense(1000, "groceries", entity.TaxRateTen, groupID)
		b := groupedExpense(500, "snacks", entity.TaxRateEight, groupID)
		adjustmentDate := anchor.AddDate(0, 0, -2)
		adjustment := entity.NewTaxAdjustment(decimalFromInt(140), adjustmentDate, "QR", groupID)
		adjustment.ID = uuid.New()
		monthly := []*entity.Transaction{a, b, adjustment}

		s := newTestSession()
		store := &fakeStore{}
		s.BeginEdit(a, monthly)
		s.SetAmount("2000")

		if err := s.Commit(context.Background(), store, monthly); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(store.updated) != 2 {
			t.Fatalf("expected member and adjustment updates, got %d", len(store.updated))
		}
		member := store.updated[0]
		if member.ID != a.ID || !member.Amount.Equal(decimalFromInt(2000)) {
			t.Errorf("unexpected member update: %+v", member)
		}
		if member.TaxBaseAmount == nil || !member.TaxBaseAmount.Equal(decimalFromInt(2000)) {
			t.Error("expected the recorded base to follow the edited amount")
		}

		updatedAdjustment := store.updated[1]
		if updatedAdjustment.ID != adjustment.ID {
			t.Error("expected the existing adjustment to be updated")
		}
		// floor(2000*1.10)-2000 + floor(500*1.08)-500 = 200 + 40
		if !updatedAdjustment.Amount.Equal(decimalFromInt(240)) {
			t.Errorf("expected adjustment amount 240, got %s", updatedAdjustment.Amount)
		}
		// Edits never move the adjustment's date.
		if !updatedAdjustment.Date.Equal(entity.DateOnly(adjustmentDate)) {
			t.Errorf("expected adjustment date untouched, got %s", updatedAdjustment.Date)
		}

		if s.Editing() != nil {
			t.Error("expected edit state exited after commit")
		}
	})

	t.Run("deletes the adjustment when the tax reaches zero", func(t *testing.T) {
		groupID := uuid.New()
		a := groupedExpense(1000, "stamps", entity.TaxRateTen, groupID)
		adjustment := entity.NewTaxAdjustment(decimalFromInt(100), anchor, "QR", groupID)
		adjustment.ID = uuid.New()
		monthly := []*entity.Transaction{a, adjustment}

		s := newTestSession()
		store := &fakeStore{}
		s.BeginEdit(a, monthly)
		s.SetTaxRate(entity.TaxRateZero)

		if err := s.Commit(context.Background(), store, monthly); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(store.deleted) != 1 || store.deleted[0] != adjustment.ID {
			t.Error("expected the adjustment deleted once tax is zero")
		}
	})

	t.Run("invalid edit form leaves edit state active", func(t *testing.T) {
		s := newTestSession()
		store := &fakeStore{}
		committed := entity.NewExpense(decimalFromInt(1000), anchor, "groceries", "Groceries", "QR", "", entity.TaxModeInclusive, entity.TaxRateTen)
		committed.ID = uuid.New()
		s.BeginEdit(committed, nil)
		s.SetAmount("")

		if err := s.Commit(context.Background(), store, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.writes() != 0 {
			t.Errorf("expected no writes, got %d", store.writes())
		}
		if s.State() != StateEditingCommitted {
			t.Error("expected edit state to survive an invalid commit")
		}
	})
}

func TestCommitExitsGroupView(t *testing.T) {
	t.Run("nothing to commit while a group is on display exits the view", func(t *testing.T) {
		groupID := uuid.New()
		a := groupedExpense(1000, "groceries", entity.TaxRateTen, groupID)
		b := groupedExpense(500, "snacks", entity.TaxRateTen, groupID)
		monthly := []*entity.Transaction{a, b}

		s := newTestSession()
		store := &fakeStore{}
		s.SelectGroup(groupID, anchor, monthly)

		if err := s.Commit(context.Background(), store, monthly); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if store.writes() != 0 {
			t.Errorf("expected no writes, got %d", store.writes())
		}
		if s.ActiveGroupID() != nil {
			t.Error("expected group view exited")
		}
	})
}

func TestDeleteEditing(t *testing.T) {
	newEditingSession := func(store *fakeStore) (*Session, *entity.Transaction) {
		s := newTestSession()
		committed := entity.NewExpense(decimalFromInt(1000), anchor, "groceries", "Groceries", "QR", "", entity.TaxModeInclusive, entity.TaxRateTen)
		committed.ID = uuid.New()
		s.BeginEdit(committed, nil)
		return s, committed
	}

	t.Run("declined confirmation leaves everything untouched", func(t *testing.T) {
		store := &fakeStore{}
		s, _ := newEditingSession(store)

		if err := s.DeleteEditing(context.Background(), store, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.writes() != 0 {
			t.Error("expected no writes")
		}
		if s.State() != StateEditingCommitted {
			t.Error("expected edit state to survive")
		}
	})

	t.Run("confirmed delete removes the transaction and exits edit state", func(t *testing.T) {
		store := &fakeStore{}
		s, committed := newEditingSession(store)

		if err := s.DeleteEditing(context.Background(), store, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.deleted) != 1 || store.deleted[0] != committed.ID {
			t.Error("expected the edited transaction deleted")
		}
		if s.State() == StateEditingCommitted {
			t.Error("expected edit state exited")
		}
	})

	t.Run("no-op outside edit state", func(t *testing.T) {
		store := &fakeStore{}
		s := newTestSession()
		if err := s.DeleteEditing(context.Background(), store, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.writes() != 0 {
			t.Error("expected no writes")
		}
	})
}
