// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft is a not-yet-committed transaction held by the entry form while the
// user itemizes a multi-item entry. It has the shape of a Transaction minus
// the id and is never persisted: on commit it becomes a real Transaction
// (with a shared group id), otherwise it is simply discarded.
type Draft struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Name        string
	Category    string
	Source      string
	Destination string
	Memo        string
	IsSpecial   bool

	// Tax fields, expense only.
	TaxMode       TaxMode
	TaxRate       *TaxRate
	TaxBaseAmount *decimal.Decimal
}

// Transaction materializes the draft as an unsaved Transaction. The id stays
// zero; the store assigns one on Add.
func (d *Draft) Transaction() *Transaction {
	now := time.Now().UTC()
	t := &Transaction{
		Type:        d.Type,
		Amount:      d.Amount,
		Date:        DateOnly(d.Date),
		Name:        d.Name,
		Category:    d.Category,
		Source:      d.Source,
		Destination: d.Destination,
		Memo:        d.Memo,
		IsSpecial:   d.IsSpecial,
		TaxMode:     d.TaxMode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if d.TaxRate != nil {
		rate := *d.TaxRate
		t.TaxRate = &rate
	}
	if d.TaxBaseAmount != nil {
		base := *d.TaxBaseAmount
		t.TaxBaseAmount = &base
	}
	return t
}

// GrossAmount mirrors Transaction.GrossAmount for staged items so the form
// can show the tax-included price per queued line.
func (d *Draft) GrossAmount() decimal.Decimal {
	return d.Transaction().GrossAmount()
}
