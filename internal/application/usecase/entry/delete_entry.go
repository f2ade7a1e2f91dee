package entry

import (
	"context"
	"fmt"

	"github.com/ZawaReck/household/internal/application/adapter"
)

// DeleteEditing deletes the committed transaction under edit. Deletion is
// confirmation-gated: callers pass the user's answer and a declined
// confirmation leaves every bit of state untouched. On success the edit
// state exits and the form blanks, keeping the date.
//
// Tax-adjustment items are never deleted through here; they only disappear
// as a consequence of the commit protocol recomputing a group's tax to zero.
func (s *Session) DeleteEditing(ctx context.Context, store adapter.TransactionRepository, confirmed bool) error {
	if s.editing == nil || !confirmed {
		return nil
	}

	if err := store.Delete(ctx, s.editing.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.editing = nil
	s.resetForm(s.transactionType, resetOptions{keepDate: true})
	return nil
}
