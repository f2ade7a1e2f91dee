package entry

import (
	"time"

	"github.com/google/uuid"

	"github.com/ZawaReck/household/internal/domain/entity"
	"github.com/ZawaReck/household/internal/domain/valueobject"
)

// BeginEdit enters editing-committed state for a transaction picked from a
// history list. If the transaction belongs to a group, the whole group
// becomes the active group so its sibling items render beneath the form for
// one-click re-entry. The external-tax toggle reflects the group: a group
// carrying an adjustment item counts as external regardless of the picked
// member's own tax mode.
func (s *Session) BeginEdit(transaction *entity.Transaction, monthly []*entity.Transaction) {
	s.editing = transaction.Clone()
	s.queueEditIndex = -1

	if transaction.GroupID != nil {
		gid := *transaction.GroupID
		s.activeGroupID = &gid
	} else {
		s.activeGroupID = nil
	}
	date := transaction.Date
	s.activeGroupDate = &date

	s.transactionType = transaction.Type
	s.amount = transaction.Amount.String()
	s.date = transaction.Date
	s.name = transaction.Name
	s.memo = transaction.Memo

	if transaction.Type == entity.TransactionTypeMove {
		s.moveSource = transaction.Source
		s.moveDestination = transaction.Destination
	} else {
		s.source = transaction.Source
		s.category = transaction.Category
		s.moveDestination = ""
	}

	if transaction.GroupID != nil {
		group := valueobject.ResolveGroup(monthly, *transaction.GroupID)
		s.externalTax = group.Adjustment != nil || transaction.IsExclusive()
	} else {
		s.externalTax = transaction.IsExclusive()
	}
	s.taxRate = entity.NormalizeTaxRate(transaction.TaxRate)
}

// SelectGroup activates a group view from the history's total row: the
// group's items render beneath a blank form seeded from the group's first
// visible item, ready to append further items to the same receipt.
func (s *Session) SelectGroup(groupID uuid.UUID, date time.Time, monthly []*entity.Transaction) {
	s.editing = nil
	gid := groupID
	s.activeGroupID = &gid
	anchor := entity.DateOnly(date)
	s.activeGroupDate = &anchor

	group := valueobject.ResolveGroup(monthly, groupID)

	formDate := anchor
	if len(group.Items) > 0 {
		first := group.Items[0]
		s.transactionType = first.Type
		formDate = first.Date
	}

	s.queueEditIndex = -1
	s.queue = nil
	s.resetForm(s.transactionType, resetOptions{dateValue: &formDate})
	s.externalTax = group.IsExternal()
}

// Cancel leaves editing-committed or editing-draft state immediately,
// discarding staged drafts and the active group view. No store write has
// happened yet, so nothing is partially applied.
func (s *Session) Cancel() {
	s.queue = nil
	s.exitView()
}
