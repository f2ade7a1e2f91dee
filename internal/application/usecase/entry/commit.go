package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ZawaReck/household/internal/application/adapter"
	"github.com/ZawaReck/household/internal/domain/entity"
	"github.com/ZawaReck/household/internal/domain/valueobject"
)

// Commit runs the commit protocol for the current state.
//
//   - editing-committed: merges the form over the stored transaction,
//     updates it, then reconciles the group's tax-adjustment item.
//   - new-entry / editing-draft with expense type: persists the staged
//     drafts (plus the form contents when valid) under a shared group id,
//     a fresh one or the active group's, then reconciles the adjustment.
//   - new-entry with income or move: persists the single form draft.
//   - nothing to commit while a group view is on display: exits the view
//     without touching the store.
//
// The monthly slice is the pre-commit state the caller handed in. Post-commit
// group state is always computed from that slice plus the values just
// written, never from a fresh store read: with an asynchronous store a
// re-read could race against write propagation.
//
// Writes are issued in a fixed order, primary items first and the
// tax-adjustment last. Validation failures are silent no-ops; only store
// failures surface as errors.
func (s *Session) Commit(ctx context.Context, store adapter.TransactionRepository, monthly []*entity.Transaction) error {
	if s.editing == nil && !s.FormDraftValid() && len(s.queue) == 0 && s.groupViewShown(monthly) {
		s.exitView()
		return nil
	}

	if s.editing != nil {
		return s.commitEdit(ctx, store, monthly)
	}

	if s.transactionType == entity.TransactionTypeExpense {
		return s.commitExpenseDrafts(ctx, store, monthly)
	}
	return s.commitSingle(ctx, store)
}

// groupViewShown reports whether the form is merely displaying an active
// group's committed items.
func (s *Session) groupViewShown(monthly []*entity.Transaction) bool {
	if s.activeGroupID == nil {
		return false
	}
	return len(valueobject.ResolveGroup(monthly, *s.activeGroupID).Items) > 0
}

// commitEdit updates the transaction under edit and keeps its group's
// tax-adjustment item in step with the new member set.
func (s *Session) commitEdit(ctx context.Context, store adapter.TransactionRepository, monthly []*entity.Transaction) error {
	if !s.FormDraftValid() {
		return nil
	}

	if s.editing.GroupID != nil {
		gid := *s.editing.GroupID
		s.activeGroupID = &gid
	}

	draft := s.buildDraft()
	updated := mergeDraft(s.editing, draft)

	if err := store.Update(ctx, updated); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if updated.GroupID != nil {
		group := valueobject.ResolveGroup(monthly, *updated.GroupID)

		// Substitute the just-written value for its pre-commit version.
		members := make([]*entity.Transaction, 0, len(group.Items))
		for _, item := range group.Items {
			if item.ID == updated.ID {
				members = append(members, updated)
				continue
			}
			members = append(members, item)
		}

		external := group.Adjustment != nil
		for _, item := range members {
			if item.IsExclusive() {
				external = true
				break
			}
		}

		if external {
			fallbackSource := updated.Source
			if first := firstExpense(members); first != nil {
				fallbackSource = first.Source
			}
			err := reconcileAdjustment(ctx, store, reconcileInput{
				groupID:    *updated.GroupID,
				members:    members,
				adjustment: group.Adjustment,
				date:       updated.Date,
				moveDate:   false,
				source:     fallbackSource,
			})
			if err != nil {
				return err
			}
		}
	}

	s.editing = nil
	s.resetForm(updated.Type, resetOptions{keepDate: true})
	return nil
}

// commitExpenseDrafts persists the draft queue, folding in the form contents
// when they hold a valid draft (replacing the queued draft under edit, or
// appended as one more line). All expense items share one group id.
func (s *Session) commitExpenseDrafts(ctx context.Context, store adapter.TransactionRepository, monthly []*entity.Transaction) error {
	items := make([]*entity.Draft, len(s.queue))
	copy(items, s.queue)

	if s.queueEditIndex >= 0 {
		if !s.FormDraftValid() {
			return nil
		}
		items[s.queueEditIndex] = s.buildDraft()
	} else if s.FormDraftValid() {
		items = append(items, s.buildDraft())
	}

	if len(items) == 0 {
		return nil
	}

	groupID := uuid.New()
	if s.activeGroupID != nil {
		groupID = *s.activeGroupID
	}

	written := make([]*entity.Transaction, 0, len(items))
	for _, draft := range items {
		t := draft.Transaction()
		if t.Type == entity.TransactionTypeExpense {
			gid := groupID
			t.GroupID = &gid
			// The toggle's setting at commit time governs the whole batch.
			if s.externalTax {
				t.TaxMode = entity.TaxModeExclusive
				base := t.Amount
				t.TaxBaseAmount = &base
			} else {
				t.TaxMode = entity.TaxModeInclusive
			}
		}
		if err := store.Add(ctx, t); err != nil {
			return fmt.Errorf("failed to add transaction: %w", err)
		}
		written = append(written, t)
	}

	if s.externalTax {
		// Pre-commit members of the active group, if committing into one.
		var members []*entity.Transaction
		var adjustment *entity.Transaction
		if s.activeGroupID != nil {
			group := valueobject.ResolveGroup(monthly, groupID)
			members = append(members, group.Items...)
			adjustment = group.Adjustment
		}
		for _, t := range written {
			if t.Type == entity.TransactionTypeExpense {
				members = append(members, t)
			}
		}

		adjustmentDate := s.date
		fallbackSource := s.source
		if first := firstExpense(members); first != nil {
			adjustmentDate = first.Date
			fallbackSource = first.Source
		}

		err := reconcileAdjustment(ctx, store, reconcileInput{
			groupID:    groupID,
			members:    members,
			adjustment: adjustment,
			date:       adjustmentDate,
			moveDate:   true,
			source:     fallbackSource,
		})
		if err != nil {
			return err
		}
	}

	s.queue = nil
	s.queueEditIndex = -1
	s.resetForm(s.transactionType, resetOptions{keepDate: true})
	return nil
}

// commitSingle persists the form as one income or move transaction. No
// grouping, no tax logic.
func (s *Session) commitSingle(ctx context.Context, store adapter.TransactionRepository) error {
	if !s.FormDraftValid() {
		return nil
	}
	t := s.buildDraft().Transaction()
	if err := store.Add(ctx, t); err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}

	s.queue = nil
	s.queueEditIndex = -1
	s.resetForm(s.transactionType, resetOptions{keepDate: true})
	return nil
}

// mergeDraft overlays the form draft on the stored transaction, preserving
// the id and metadata the form does not edit (group membership, adjustment
// flag, creation time).
func mergeDraft(existing *entity.Transaction, draft *entity.Draft) *entity.Transaction {
	updated := existing.Clone()
	updated.Type = draft.Type
	updated.Amount = draft.Amount
	updated.Date = draft.Date
	updated.Name = draft.Name
	updated.Category = draft.Category
	updated.Source = draft.Source
	updated.Destination = draft.Destination
	updated.Memo = draft.Memo
	updated.IsSpecial = draft.IsSpecial

	if draft.Type == entity.TransactionTypeExpense {
		updated.TaxMode = draft.TaxMode
		if draft.TaxRate != nil {
			rate := *draft.TaxRate
			updated.TaxRate = &rate
		}
		// Keep the recorded pre-tax base in step with the edited amount.
		if entity.NormalizeTaxMode(updated.TaxMode) == entity.TaxModeExclusive {
			base := updated.Amount
			updated.TaxBaseAmount = &base
		}
	}

	updated.UpdatedAt = time.Now().UTC()
	return updated
}

type reconcileInput struct {
	groupID    uuid.UUID
	members    []*entity.Transaction // visible members, post-commit values
	adjustment *entity.Transaction   // pre-commit adjustment, nil if absent
	date       time.Time
	moveDate   bool // whether an existing adjustment follows the group date
	source     string
}

// reconcileAdjustment creates, updates or deletes the group's synthetic
// tax-adjustment transaction so that it always carries the bucket-rounded
// tax of the current member set: created when tax turns positive, updated in
// place while it stays positive, deleted the moment it reaches zero. Keeps
// the group invariant of at most one adjustment per group.
func reconcileAdjustment(ctx context.Context, store adapter.TransactionRepository, in reconcileInput) error {
	tax := valueobject.AggregateTax(in.members).Tax

	if tax.Sign() > 0 {
		if in.adjustment != nil {
			adjusted := in.adjustment.Clone()
			adjusted.Amount = tax
			adjusted.Name = entity.TaxAdjustmentName
			adjusted.Category = entity.TaxAdjustmentCategory
			adjusted.IsTaxAdjustment = true
			if in.moveDate {
				adjusted.Date = in.date
			}
			adjusted.UpdatedAt = time.Now().UTC()
			if err := store.Update(ctx, adjusted); err != nil {
				return fmt.Errorf("failed to update tax adjustment: %w", err)
			}
			return nil
		}
		adjustment := entity.NewTaxAdjustment(tax, in.date, in.source, in.groupID)
		if err := store.Add(ctx, adjustment); err != nil {
			return fmt.Errorf("failed to add tax adjustment: %w", err)
		}
		return nil
	}

	if in.adjustment != nil {
		if err := store.Delete(ctx, in.adjustment.ID); err != nil {
			return fmt.Errorf("failed to delete tax adjustment: %w", err)
		}
	}
	return nil
}

func firstExpense(items []*entity.Transaction) *entity.Transaction {
	for _, t := range items {
		if t.Type == entity.TransactionTypeExpense {
			return t
		}
	}
	return nil
}
