// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense, income or move).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeMove    TransactionType = "move"
)

// TaxMode indicates how consumption tax relates to a stored expense amount.
type TaxMode string

const (
	// TaxModeInclusive means the entered amount already contains the tax.
	TaxModeInclusive TaxMode = "inclusive"
	// TaxModeExclusive means tax is tracked separately; the stored amount is
	// the pre-tax base and the group carries a synthetic adjustment item.
	TaxModeExclusive TaxMode = "exclusive"
)

// TaxRate is a consumption tax rate in whole percent. Only 0, 8 and 10 are
// valid; anything else normalizes to 10.
type TaxRate int

const (
	TaxRateZero  TaxRate = 0
	TaxRateEight TaxRate = 8
	TaxRateTen   TaxRate = 10
)

// CategoryMove is the sentinel category stored on move transactions.
const CategoryMove = "move"

// Labels stored on the synthetic tax-adjustment transaction.
const (
	TaxAdjustmentName     = "external tax"
	TaxAdjustmentCategory = "external tax"
)

// NormalizeTaxRate maps a possibly missing or unknown rate to a valid one.
// Missing rates on legacy rows are treated as the standard 10%.
func NormalizeTaxRate(rate *TaxRate) TaxRate {
	if rate != nil && (*rate == TaxRateZero || *rate == TaxRateEight) {
		return *rate
	}
	return TaxRateTen
}

// NormalizeTaxMode maps a possibly missing mode to a valid one. Anything that
// is not explicitly exclusive counts as inclusive.
func NormalizeTaxMode(mode TaxMode) TaxMode {
	if mode == TaxModeExclusive {
		return TaxModeExclusive
	}
	return TaxModeInclusive
}

// Multiplier returns the gross multiplier for the rate as an exact decimal
// (1.00, 1.08 or 1.10).
func (r TaxRate) Multiplier() decimal.Decimal {
	return decimal.New(int64(100+r), -2)
}

// Transaction represents a committed financial transaction owned by the
// transaction store. Fields that are irrelevant to the transaction's type are
// left zero and must never be read for that type: Destination is move-only,
// the tax fields are expense-only, Category holds CategoryMove for moves.
type Transaction struct {
	ID          uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Date        time.Time // calendar date, no time component
	Name        string
	Category    string
	Source      string
	Destination string // move only: target account
	Memo        string
	IsSpecial   bool // carried through, not used by core logic

	// GroupID links sibling transactions committed together, e.g. the line
	// items of one receipt.
	GroupID *uuid.UUID

	// Tax fields, expense only.
	TaxMode       TaxMode
	TaxRate       *TaxRate
	TaxBaseAmount *decimal.Decimal // pre-tax amount when TaxMode is exclusive

	// IsTaxAdjustment marks the system-maintained transaction that carries
	// the rounding-reconciled tax owed for an exclusive-tax group.
	IsTaxAdjustment bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewExpense creates an expense transaction. The tax mode decides whether the
// amount is tax-inclusive or a pre-tax base; under exclusive mode the base is
// additionally recorded in TaxBaseAmount for display stability.
func NewExpense(amount decimal.Decimal, date time.Time, name, category, source, memo string, taxMode TaxMode, taxRate TaxRate) *Transaction {
	t := newTransaction(TransactionTypeExpense, amount, date)
	t.Name = name
	t.Category = category
	t.Source = source
	t.Memo = memo
	t.TaxMode = NormalizeTaxMode(taxMode)
	rate := NormalizeTaxRate(&taxRate)
	t.TaxRate = &rate
	if t.TaxMode == TaxModeExclusive {
		base := amount
		t.TaxBaseAmount = &base
	}
	return t
}

// NewIncome creates an income transaction. Income carries no tax fields.
func NewIncome(amount decimal.Decimal, date time.Time, name, category, source, memo string) *Transaction {
	t := newTransaction(TransactionTypeIncome, amount, date)
	t.Name = name
	t.Category = category
	t.Source = source
	t.Memo = memo
	return t
}

// NewMove creates an inter-account move. Moves carry no name requirement, a
// fixed sentinel category and no tax fields.
func NewMove(amount decimal.Decimal, date time.Time, source, destination, memo string) *Transaction {
	t := newTransaction(TransactionTypeMove, amount, date)
	t.Category = CategoryMove
	t.Source = source
	t.Destination = destination
	t.Memo = memo
	return t
}

// NewTaxAdjustment creates the synthetic expense transaction representing the
// aggregated tax owed for an exclusive-tax group.
func NewTaxAdjustment(tax decimal.Decimal, date time.Time, source string, groupID uuid.UUID) *Transaction {
	t := newTransaction(TransactionTypeExpense, tax, date)
	t.Name = TaxAdjustmentName
	t.Category = TaxAdjustmentCategory
	t.Source = source
	gid := groupID
	t.GroupID = &gid
	t.IsTaxAdjustment = true
	return t
}

func newTransaction(transactionType TransactionType, amount decimal.Decimal, date time.Time) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		Type:      transactionType,
		Amount:    amount,
		Date:      DateOnly(date),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Clone returns a deep copy so callers can stage edits without mutating the
// stored value.
func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.GroupID != nil {
		gid := *t.GroupID
		c.GroupID = &gid
	}
	if t.TaxRate != nil {
		rate := *t.TaxRate
		c.TaxRate = &rate
	}
	if t.TaxBaseAmount != nil {
		base := *t.TaxBaseAmount
		c.TaxBaseAmount = &base
	}
	return &c
}

// IsExclusive reports whether this expense stores its amount as a pre-tax
// base. Always false for non-expense transactions.
func (t *Transaction) IsExclusive() bool {
	return t.Type == TransactionTypeExpense && NormalizeTaxMode(t.TaxMode) == TaxModeExclusive
}

// GrossAmount returns the tax-inclusive amount of a single line item:
// floor(amount × multiplier) under exclusive mode, the amount itself
// otherwise.
func (t *Transaction) GrossAmount() decimal.Decimal {
	if !t.IsExclusive() {
		return t.Amount
	}
	rate := NormalizeTaxRate(t.TaxRate)
	if rate == TaxRateZero {
		return t.Amount
	}
	return t.Amount.Mul(rate.Multiplier()).Floor()
}
