// Package entry implements the transaction entry form: its edit-state
// machine, the draft queue used to itemize receipts, and the commit protocol
// that reconciles drafts, edits and tax-adjustment items against the
// transaction store.
package entry

import (
	"time"

	"github.com/google/uuid"

	"github.com/ZawaReck/household/internal/domain/entity"
)

// EditState identifies which lifecycle the form is currently in.
type EditState string

const (
	// StateNewEntry composes a fresh transaction or stages receipt drafts.
	StateNewEntry EditState = "new-entry"
	// StateEditingCommitted edits a transaction that already lives in the store.
	StateEditingCommitted EditState = "editing-committed"
	// StateEditingDraft edits one of the staged, uncommitted drafts.
	StateEditingDraft EditState = "editing-draft"
)

// Account and category option lists offered by the form pickers.
var (
	SourceOptions     = []string{"Wallet", "QR", "IC", "Card 1", "Card 2", "Bank", "Points"}
	ExpenseCategories = []string{"Groceries", "Dining out", "Education", "Hobbies", "Household goods", "Transport", "Clothing", "Medical", "Social", "Other"}
	IncomeCategories  = []string{"Salary", "Extra income", "Side income", "Other"}
)

func defaultSource() string          { return SourceOptions[1] }
func defaultMoveSource() string      { return SourceOptions[5] }
func defaultMoveDestination() string { return SourceOptions[1] }

func defaultCategory(transactionType entity.TransactionType) string {
	if transactionType == entity.TransactionTypeIncome {
		return IncomeCategories[0]
	}
	return ExpenseCategories[0]
}

// CategoryOptions returns the selectable categories for a transaction type.
func CategoryOptions(transactionType entity.TransactionType) []string {
	if transactionType == entity.TransactionTypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// Session is the entry form's complete state: the field values being typed,
// the staged draft queue, the committed transaction under edit (if any) and
// the active group pointer. All transitions run synchronously to completion;
// nothing is written to the store before Commit.
type Session struct {
	transactionType entity.TransactionType

	// Raw form fields. Amount stays a string until validation parses it.
	amount          string
	name            string
	memo            string
	date            time.Time
	category        string
	source          string // funding source (expense) / receiving account (income)
	moveSource      string
	moveDestination string

	externalTax bool
	taxRate     entity.TaxRate

	// selectedDate is the calendar date the surrounding UI currently has
	// selected; blank new entries anchor to it.
	selectedDate time.Time

	queue          []*entity.Draft
	queueEditIndex int // index of the draft loaded for editing, -1 for none

	editing         *entity.Transaction
	activeGroupID   *uuid.UUID
	activeGroupDate *time.Time
}

// NewSession creates a blank expense entry session anchored to the given
// calendar date.
func NewSession(selectedDate time.Time) *Session {
	s := &Session{
		transactionType: entity.TransactionTypeExpense,
		selectedDate:    entity.DateOnly(selectedDate),
		queueEditIndex:  -1,
		taxRate:         entity.TaxRateTen,
	}
	s.resetForm(s.transactionType, resetOptions{dateValue: &s.selectedDate})
	return s
}

// State reports which lifecycle the form is in.
func (s *Session) State() EditState {
	if s.editing != nil {
		return StateEditingCommitted
	}
	if s.queueEditIndex >= 0 {
		return StateEditingDraft
	}
	return StateNewEntry
}

// Type returns the selected transaction type.
func (s *Session) Type() entity.TransactionType { return s.transactionType }

// Date returns the form's current date field.
func (s *Session) Date() time.Time { return s.date }

// Editing returns the committed transaction under edit, nil outside
// editing-committed state.
func (s *Session) Editing() *entity.Transaction { return s.editing }

// ActiveGroupID returns the id of the group currently on display, if any.
func (s *Session) ActiveGroupID() *uuid.UUID { return s.activeGroupID }

// MonthAnchor returns the date whose month holds the transactions the form
// needs on display: the activated group's anchor date while a group view is
// up, the form date otherwise.
func (s *Session) MonthAnchor() time.Time {
	if s.activeGroupDate != nil {
		return *s.activeGroupDate
	}
	return s.date
}

// Queue returns the staged drafts in order.
func (s *Session) Queue() []*entity.Draft { return s.queue }

// QueueEditIndex returns the index of the draft loaded for editing, -1 when
// no draft edit is active.
func (s *Session) QueueEditIndex() int { return s.queueEditIndex }

type resetOptions struct {
	keepDate        bool
	dateValue       *time.Time // used when keepDate is false; nil falls back to the selected date
	keepTaxControls bool
}

// resetForm blanks the user-typed fields and restores per-type defaults. The
// date either survives, is forced to a given value, or falls back to the
// selected calendar date.
func (s *Session) resetForm(nextType entity.TransactionType, opts resetOptions) {
	nextDate := s.date
	if !opts.keepDate {
		if opts.dateValue != nil {
			nextDate = *opts.dateValue
		} else {
			nextDate = s.selectedDate
		}
	}

	s.amount = ""
	s.name = ""
	s.memo = ""
	if !opts.keepTaxControls {
		s.externalTax = false
		s.taxRate = entity.TaxRateTen
	}
	s.category = defaultCategory(nextType)
	s.source = defaultSource()
	s.moveSource = defaultMoveSource()
	s.moveDestination = defaultMoveDestination()
	s.date = entity.DateOnly(nextDate)
}

// exitView leaves any edit or group view and returns to a blank new entry
// anchored to the selected calendar date. Never touches the store.
func (s *Session) exitView() {
	s.editing = nil
	s.activeGroupID = nil
	s.activeGroupDate = nil
	s.queueEditIndex = -1
	s.resetForm(s.transactionType, resetOptions{dateValue: &s.selectedDate})
}
