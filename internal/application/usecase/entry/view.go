package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ZawaReck/household/internal/domain/entity"
	"github.com/ZawaReck/household/internal/domain/valueobject"
)

// QueuedItem is a staged draft with its display amount: the per-item floored
// gross while the external-tax toggle is on, the entered amount otherwise.
type QueuedItem struct {
	Draft         *entity.Draft
	DisplayAmount decimal.Decimal
	Editing       bool
}

// GroupItem is a committed member of the active group as rendered beneath
// the form.
type GroupItem struct {
	Transaction   *entity.Transaction
	DisplayAmount decimal.Decimal
	Editing       bool
}

// View is an immutable snapshot of the session plus the totals derived from
// the given monthly slice, ready for presentation.
type View struct {
	State           EditState
	Type            entity.TransactionType
	Amount          string
	Name            string
	Memo            string
	Date            time.Time
	Category        string
	Source          string
	MoveSource      string
	MoveDestination string
	ExternalTax     bool
	TaxRate         entity.TaxRate
	SelectedDate    time.Time

	EditingID     *uuid.UUID
	ActiveGroupID *uuid.UUID

	Queue      []QueuedItem
	GroupItems []GroupItem

	ShowGroup    bool
	ShowTotalBar bool

	DraftTotal   decimal.Decimal // staged drafts, tax-aware
	GroupTotal   decimal.Decimal // active group's committed items
	DisplayTotal decimal.Decimal // what the total bar shows
}

// DraftBaseTotal sums the staged draft amounts as entered, before tax.
func (s *Session) DraftBaseTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range s.queue {
		sum = sum.Add(d.Amount)
	}
	return sum
}

// DraftDisplayTotal is the staged total shown while itemizing: the plain sum
// under inclusive entry, the bucket-rounded gross under exclusive entry.
// Non-expense drafts pass through unchanged so a mixed queue cannot distort
// the total.
func (s *Session) DraftDisplayTotal() decimal.Decimal {
	if !s.externalTax {
		return s.DraftBaseTotal()
	}

	expenses := make([]*entity.Transaction, 0, len(s.queue))
	other := decimal.Zero
	for _, d := range s.queue {
		if d.Type != entity.TransactionTypeExpense {
			other = other.Add(d.Amount)
			continue
		}
		expenses = append(expenses, d.Transaction())
	}
	return valueobject.AggregateTax(expenses).Gross.Add(other)
}

// activeGroup resolves the group under display: the explicitly activated one,
// or the group of the transaction under edit.
func (s *Session) activeGroup(monthly []*entity.Transaction) *valueobject.TransactionGroup {
	gid := s.activeGroupID
	if gid == nil && s.editing != nil {
		gid = s.editing.GroupID
	}
	if gid == nil {
		return nil
	}
	return valueobject.ResolveGroup(monthly, *gid)
}

// View derives the presentation snapshot from the session and the month's
// transactions.
func (s *Session) View(monthly []*entity.Transaction) View {
	v := View{
		State:           s.State(),
		Type:            s.transactionType,
		Amount:          s.amount,
		Name:            s.name,
		Memo:            s.memo,
		Date:            s.date,
		Category:        s.category,
		Source:          s.source,
		MoveSource:      s.moveSource,
		MoveDestination: s.moveDestination,
		ExternalTax:     s.externalTax,
		TaxRate:         s.taxRate,
		SelectedDate:    s.selectedDate,
		ActiveGroupID:   s.activeGroupID,
		DraftTotal:      s.DraftDisplayTotal(),
	}
	if s.editing != nil {
		id := s.editing.ID
		v.EditingID = &id
	}

	for i, d := range s.queue {
		display := d.Amount
		if s.externalTax && d.Type == entity.TransactionTypeExpense {
			display = d.GrossAmount()
		}
		v.Queue = append(v.Queue, QueuedItem{
			Draft:         d,
			DisplayAmount: display,
			Editing:       i == s.queueEditIndex,
		})
	}

	group := s.activeGroup(monthly)
	groupHasMembers := false
	v.GroupTotal = decimal.Zero
	if group != nil {
		groupHasMembers = len(group.Items) > 0 || group.Adjustment != nil
		v.GroupTotal = group.Total()

		if s.activeGroupID != nil {
			v.ShowGroup = len(group.Items) > 0
		} else {
			v.ShowGroup = len(group.Items) >= 2
		}

		external := group.IsExternal()
		for _, t := range group.Items {
			display := t.Amount
			// A lone member of an external group shows the group's gross
			// inline, whatever the member's own stored mode; multi-item
			// groups show bases per line and the gross on the total row.
			if external && len(group.Items) == 1 {
				display = group.Total()
			}
			editing := s.editing != nil && s.editing.ID == t.ID
			v.GroupItems = append(v.GroupItems, GroupItem{Transaction: t, DisplayAmount: display, Editing: editing})
		}
	}

	v.ShowTotalBar = len(s.queue) > 0 || len(v.GroupItems) >= 2
	if groupHasMembers {
		v.DisplayTotal = v.GroupTotal.Add(v.DraftTotal)
	} else {
		v.DisplayTotal = v.DraftTotal
	}
	return v
}
