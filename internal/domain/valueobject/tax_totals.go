// Package valueobject holds derived, immutable domain values.
package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/domain/entity"
)

// TaxTotals is the result of aggregating the expense line items of an
// exclusive-tax group.
type TaxTotals struct {
	// Base is the plain sum of the entered (pre-tax) amounts.
	Base decimal.Decimal
	// Gross is the tax-included total, rounded per rate bucket.
	Gross decimal.Decimal
	// Tax is Gross minus Base: the amount carried by the group's synthetic
	// tax-adjustment transaction.
	Tax decimal.Decimal
}

// AggregateTax computes the tax totals for a set of line items.
//
// Only expense items participate; income and move items mixed into the slice
// are ignored, as are tax-adjustment items. Rounding happens per rate bucket,
// not per item: amounts are summed per normalized rate {0, 8, 10} first and
// each bucket sum is multiplied and floored as a whole. The displayed total
// of an external-tax group is therefore the sum of bucket-rounded grosses,
// not the floor of the grand total.
func AggregateTax(items []*entity.Transaction) TaxTotals {
	sums := map[entity.TaxRate]decimal.Decimal{
		entity.TaxRateZero:  decimal.Zero,
		entity.TaxRateEight: decimal.Zero,
		entity.TaxRateTen:   decimal.Zero,
	}

	for _, t := range items {
		if t.Type != entity.TransactionTypeExpense {
			continue
		}
		if t.IsTaxAdjustment {
			continue
		}
		rate := entity.NormalizeTaxRate(t.TaxRate)
		sums[rate] = sums[rate].Add(t.Amount)
	}

	base := sums[entity.TaxRateZero].Add(sums[entity.TaxRateEight]).Add(sums[entity.TaxRateTen])
	gross := sums[entity.TaxRateZero].
		Add(sums[entity.TaxRateEight].Mul(entity.TaxRateEight.Multiplier()).Floor()).
		Add(sums[entity.TaxRateTen].Mul(entity.TaxRateTen.Multiplier()).Floor())

	return TaxTotals{
		Base:  base,
		Gross: gross,
		Tax:   gross.Sub(base),
	}
}
