// Package valueobject holds derived, immutable domain values.
package valueobject

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/domain/entity"
)

// TransactionGroup is the derived view of all committed transactions sharing
// a group id: the visible (non-adjustment) members plus at most one
// tax-adjustment member. It is recomputed from the transaction slice on every
// read and never cached, so it can never go stale.
type TransactionGroup struct {
	ID         uuid.UUID
	Items      []*entity.Transaction // visible members, store order
	Adjustment *entity.Transaction   // nil when the group carries no adjustment
}

// ResolveGroup derives the group for groupID from the given transaction
// slice. A group id referencing zero live transactions resolves to an empty
// group, not an error.
func ResolveGroup(transactions []*entity.Transaction, groupID uuid.UUID) *TransactionGroup {
	group := &TransactionGroup{ID: groupID}
	for _, t := range transactions {
		if t.GroupID == nil || *t.GroupID != groupID {
			continue
		}
		if t.IsTaxAdjustment {
			group.Adjustment = t
			continue
		}
		group.Items = append(group.Items, t)
	}
	return group
}

// IsExternal reports whether the group tracks tax separately. A group counts
// as external when it carries an adjustment member or any visible member is
// stored tax-exclusive; this overrides the tax mode of individual members.
func (g *TransactionGroup) IsExternal() bool {
	if g.Adjustment != nil {
		return true
	}
	for _, t := range g.Items {
		if t.IsExclusive() {
			return true
		}
	}
	return false
}

// Total returns the group's displayed total: the plain sum of member amounts
// for inclusive groups, base plus reconciled tax for external groups. An
// empty group totals zero.
func (g *TransactionGroup) Total() decimal.Decimal {
	if len(g.Items) == 0 {
		return decimal.Zero
	}
	if !g.IsExternal() {
		sum := decimal.Zero
		for _, t := range g.Items {
			sum = sum.Add(t.Amount)
		}
		return sum
	}
	totals := AggregateTax(g.Items)
	return totals.Base.Add(totals.Tax)
}
