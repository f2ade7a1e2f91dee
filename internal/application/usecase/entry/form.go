package entry

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/domain/entity"
)

// SelectType switches the top-level transaction type. Switching exits any
// committed or draft edit, discards the staged drafts of the prior mode and
// resets the form to a blank entry for the new type, anchored to the
// currently selected calendar date.
func (s *Session) SelectType(next entity.TransactionType) {
	s.editing = nil
	s.queueEditIndex = -1
	s.queue = nil
	s.activeGroupID = nil
	s.activeGroupDate = nil
	s.transactionType = next
	s.resetForm(next, resetOptions{dateValue: &s.selectedDate})
}

// SelectDate records the calendar date picked in the surrounding UI and
// re-seeds the form date, unless an edit or group view is active.
func (s *Session) SelectDate(date time.Time) {
	s.selectedDate = entity.DateOnly(date)
	if s.editing != nil || s.activeGroupID != nil {
		return
	}
	s.date = s.selectedDate
}

// Field setters. These mirror typing into the form and never validate;
// validation happens when the value is about to be used.

func (s *Session) SetAmount(amount string) { s.amount = amount }
func (s *Session) SetName(name string)     { s.name = name }
func (s *Session) SetMemo(memo string)     { s.memo = memo }
func (s *Session) SetDate(date time.Time)  { s.date = entity.DateOnly(date) }

func (s *Session) SetCategory(category string)       { s.category = category }
func (s *Session) SetSource(source string)           { s.source = source }
func (s *Session) SetMoveSource(source string)       { s.moveSource = source }
func (s *Session) SetMoveDestination(dest string)    { s.moveDestination = dest }

// SetExternalTax toggles exclusive-tax entry. The toggle only exists for
// expenses; for other types it is a no-op.
func (s *Session) SetExternalTax(on bool) {
	if s.transactionType != entity.TransactionTypeExpense {
		return
	}
	s.externalTax = on
}

// SetTaxRate selects the tax rate; unknown rates normalize to 10%.
func (s *Session) SetTaxRate(rate entity.TaxRate) {
	s.taxRate = entity.NormalizeTaxRate(&rate)
}

func (s *Session) parseAmount() (decimal.Decimal, bool) {
	raw := strings.TrimSpace(s.amount)
	if raw == "" {
		return decimal.Decimal{}, false
	}
	n, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return n, true
}

// FormDraftValid reports whether the current form fields describe a
// committable draft: a parsable, strictly positive amount; a name for every
// type except move; and a whole-unit amount for expenses. A failing check is
// never an error, the dependent action simply does not proceed.
func (s *Session) FormDraftValid() bool {
	n, ok := s.parseAmount()
	if !ok {
		return false
	}
	if s.transactionType != entity.TransactionTypeMove && strings.TrimSpace(s.name) == "" {
		return false
	}
	if n.Sign() <= 0 {
		return false
	}
	if s.transactionType == entity.TransactionTypeExpense && !n.IsInteger() {
		return false
	}
	return true
}

// buildDraft snapshots the form fields as a Draft. Callers must have checked
// FormDraftValid first.
func (s *Session) buildDraft() *entity.Draft {
	amount, _ := s.parseAmount()

	draft := &entity.Draft{
		Type:   s.transactionType,
		Amount: amount,
		Date:   entity.DateOnly(s.date),
		Name:   s.name,
		Memo:   s.memo,
	}

	if s.transactionType == entity.TransactionTypeMove {
		draft.Category = entity.CategoryMove
		draft.Source = s.moveSource
		draft.Destination = s.moveDestination
		return draft
	}

	draft.Category = s.category
	draft.Source = s.source

	// Tax fields apply to expenses only.
	if s.transactionType == entity.TransactionTypeExpense {
		rate := s.taxRate
		draft.TaxRate = &rate
		if s.externalTax {
			draft.TaxMode = entity.TaxModeExclusive
			base := amount
			draft.TaxBaseAmount = &base
		} else {
			draft.TaxMode = entity.TaxModeInclusive
		}
	}
	return draft
}
