package entry

import (
	"github.com/ZawaReck/household/internal/domain/entity"
)

// StageDraft appends the current form contents to the draft queue, or
// overwrites the queued draft currently loaded for editing. Only available
// while composing expenses outside committed-edit mode; an invalid form is a
// silent no-op, so the queue never holds a partially-built draft. After
// staging, amount/name/memo clear while the date and tax controls survive for
// the next line of the same receipt.
func (s *Session) StageDraft() {
	if s.transactionType != entity.TransactionTypeExpense || s.editing != nil {
		return
	}
	if !s.FormDraftValid() {
		return
	}

	draft := s.buildDraft()

	if s.queueEditIndex >= 0 {
		s.queue[s.queueEditIndex] = draft
		s.queueEditIndex = -1
		s.resetForm(s.transactionType, resetOptions{keepDate: true, keepTaxControls: true})
		return
	}

	s.queue = append(s.queue, draft)
	s.resetForm(s.transactionType, resetOptions{keepDate: true, keepTaxControls: true})
}

// LoadQueued re-selects a staged draft into the form for editing. Any
// committed-edit in progress is dropped first.
func (s *Session) LoadQueued(index int) {
	if index < 0 || index >= len(s.queue) {
		return
	}
	draft := s.queue[index]

	s.editing = nil
	s.queueEditIndex = index

	s.transactionType = draft.Type
	s.amount = draft.Amount.String()
	s.date = draft.Date
	s.name = draft.Name
	s.memo = draft.Memo

	if draft.Type == entity.TransactionTypeMove {
		s.moveSource = draft.Source
		s.moveDestination = draft.Destination
	} else {
		s.source = draft.Source
		s.category = draft.Category
	}

	s.externalTax = entity.NormalizeTaxMode(draft.TaxMode) == entity.TaxModeExclusive
	s.taxRate = entity.NormalizeTaxRate(draft.TaxRate)
}

// RemoveQueued deletes a staged draft. Removing the draft that is loaded for
// editing clears draft-edit mode and blanks the form (keeping the date);
// removing a draft below the one being edited shifts the edit pointer down so
// it keeps pointing at the same logical item.
func (s *Session) RemoveQueued(index int) {
	if index < 0 || index >= len(s.queue) {
		return
	}
	s.queue = append(s.queue[:index], s.queue[index+1:]...)

	if s.queueEditIndex == index {
		s.queueEditIndex = -1
		s.resetForm(s.transactionType, resetOptions{keepDate: true})
	} else if s.queueEditIndex > index {
		s.queueEditIndex--
	}
}
