// Package model defines database models for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// Deletes are hard deletes: the tracker keeps no audit trail.
type TransactionModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Type            string           `gorm:"type:varchar(10);not null;index"`
	Amount          decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Date            time.Time        `gorm:"type:date;not null;index"`
	Name            string           `gorm:"type:varchar(255);not null"`
	Category        string           `gorm:"type:varchar(64);not null"`
	Source          string           `gorm:"type:varchar(64);not null"`
	Destination     string           `gorm:"type:varchar(64)"`
	Memo            string           `gorm:"type:text"`
	IsSpecial       bool             `gorm:"default:false"`
	GroupID         *uuid.UUID       `gorm:"type:uuid;index"`
	TaxMode         string           `gorm:"type:varchar(10)"`
	TaxRate         *int             `gorm:"type:integer"`
	TaxBaseAmount   *decimal.Decimal `gorm:"type:decimal(15,2)"`
	IsTaxAdjustment bool             `gorm:"default:false"`
	CreatedAt       time.Time        `gorm:"not null"`
	UpdatedAt       time.Time        `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	t := &entity.Transaction{
		ID:              m.ID,
		Type:            entity.TransactionType(m.Type),
		Amount:          m.Amount,
		Date:            entity.DateOnly(m.Date),
		Name:            m.Name,
		Category:        m.Category,
		Source:          m.Source,
		Destination:     m.Destination,
		Memo:            m.Memo,
		IsSpecial:       m.IsSpecial,
		GroupID:         m.GroupID,
		TaxMode:         entity.TaxMode(m.TaxMode),
		TaxBaseAmount:   m.TaxBaseAmount,
		IsTaxAdjustment: m.IsTaxAdjustment,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.TaxRate != nil {
		rate := entity.TaxRate(*m.TaxRate)
		t.TaxRate = &rate
	}
	return t
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	m := &TransactionModel{
		ID:              transaction.ID,
		Type:            string(transaction.Type),
		Amount:          transaction.Amount,
		Date:            transaction.Date,
		Name:            transaction.Name,
		Category:        transaction.Category,
		Source:          transaction.Source,
		Destination:     transaction.Destination,
		Memo:            transaction.Memo,
		IsSpecial:       transaction.IsSpecial,
		GroupID:         transaction.GroupID,
		TaxMode:         string(transaction.TaxMode),
		TaxBaseAmount:   transaction.TaxBaseAmount,
		IsTaxAdjustment: transaction.IsTaxAdjustment,
		CreatedAt:       transaction.CreatedAt,
		UpdatedAt:       transaction.UpdatedAt,
	}
	if transaction.TaxRate != nil {
		rate := int(*transaction.TaxRate)
		m.TaxRate = &rate
	}
	return m
}
