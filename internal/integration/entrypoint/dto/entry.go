// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/ZawaReck/household/internal/application/usecase/entry"
)

// UpdateFormRequest carries the fields the user typed or picked. Every field
// is optional; only the present ones are applied.
type UpdateFormRequest struct {
	Amount          *string `json:"amount,omitempty"`
	Name            *string `json:"name,omitempty"`
	Memo            *string `json:"memo,omitempty"`
	Date            *string `json:"date,omitempty"`
	Category        *string `json:"category,omitempty"`
	Source          *string `json:"source,omitempty"`
	MoveSource      *string `json:"move_source,omitempty"`
	MoveDestination *string `json:"move_destination,omitempty"`
	ExternalTax     *bool   `json:"external_tax,omitempty"`
	TaxRate         *int    `json:"tax_rate,omitempty"`
}

// SelectTypeRequest switches the top-level transaction type.
type SelectTypeRequest struct {
	Type string `json:"type" binding:"required,oneof=expense income move"`
}

// SelectDateRequest records the calendar date picked in the surrounding UI.
type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// BeginEditRequest starts editing a committed transaction.
type BeginEditRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

// SelectGroupRequest activates a group view from a history total row.
type SelectGroupRequest struct {
	GroupID string `json:"group_id" binding:"required"`
	Date    string `json:"date" binding:"required"`
}

// DeleteEditingRequest carries the user's answer to the delete confirmation.
type DeleteEditingRequest struct {
	Confirmed bool `json:"confirmed"`
}

// QueuedItemResponse is one staged draft line.
type QueuedItemResponse struct {
	Index         int    `json:"index"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	DisplayAmount string `json:"display_amount"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Editing       bool   `json:"editing"`
}

// GroupItemResponse is one committed member of the active group.
type GroupItemResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Amount        string `json:"amount"`
	DisplayAmount string `json:"display_amount"`
	Editing       bool   `json:"editing"`
}

// EntryViewResponse is the full presentation snapshot of the entry form.
type EntryViewResponse struct {
	State           string `json:"state"`
	Type            string `json:"type"`
	Amount          string `json:"amount"`
	Name            string `json:"name"`
	Memo            string `json:"memo"`
	Date            string `json:"date"`
	Category        string `json:"category"`
	Source          string `json:"source"`
	MoveSource      string `json:"move_source"`
	MoveDestination string `json:"move_destination"`
	ExternalTax     bool   `json:"external_tax"`
	TaxRate         int    `json:"tax_rate"`
	SelectedDate    string `json:"selected_date"`

	EditingID     *string `json:"editing_id,omitempty"`
	ActiveGroupID *string `json:"active_group_id,omitempty"`

	Queue      []QueuedItemResponse `json:"queue"`
	GroupItems []GroupItemResponse  `json:"group_items"`

	ShowGroup    bool `json:"show_group"`
	ShowTotalBar bool `json:"show_total_bar"`

	DraftTotal   string `json:"draft_total"`
	GroupTotal   string `json:"group_total"`
	DisplayTotal string `json:"display_total"`

	CategoryOptions []string `json:"category_options"`
	SourceOptions   []string `json:"source_options"`
}

// ToEntryViewResponse converts a derived entry view to its response DTO.
func ToEntryViewResponse(view entry.View) EntryViewResponse {
	response := EntryViewResponse{
		State:           string(view.State),
		Type:            string(view.Type),
		Amount:          view.Amount,
		Name:            view.Name,
		Memo:            view.Memo,
		Date:            view.Date.Format("2006-01-02"),
		Category:        view.Category,
		Source:          view.Source,
		MoveSource:      view.MoveSource,
		MoveDestination: view.MoveDestination,
		ExternalTax:     view.ExternalTax,
		TaxRate:         int(view.TaxRate),
		SelectedDate:    view.SelectedDate.Format("2006-01-02"),
		ShowGroup:       view.ShowGroup,
		ShowTotalBar:    view.ShowTotalBar,
		DraftTotal:      view.DraftTotal.String(),
		GroupTotal:      view.GroupTotal.String(),
		DisplayTotal:    view.DisplayTotal.String(),
		Queue:           make([]QueuedItemResponse, 0, len(view.Queue)),
		GroupItems:      make([]GroupItemResponse, 0, len(view.GroupItems)),
		CategoryOptions: entry.CategoryOptions(view.Type),
		SourceOptions:   entry.SourceOptions,
	}

	if view.EditingID != nil {
		id := view.EditingID.String()
		response.EditingID = &id
	}
	if view.ActiveGroupID != nil {
		id := view.ActiveGroupID.String()
		response.ActiveGroupID = &id
	}

	for i, item := range view.Queue {
		response.Queue = append(response.Queue, QueuedItemResponse{
			Index:         i,
			Type:          string(item.Draft.Type),
			Amount:        item.Draft.Amount.String(),
			DisplayAmount: item.DisplayAmount.String(),
			Name:          item.Draft.Name,
			Category:      item.Draft.Category,
			Editing:       item.Editing,
		})
	}

	for _, item := range view.GroupItems {
		response.GroupItems = append(response.GroupItems, GroupItemResponse{
			ID:            item.Transaction.ID.String(),
			Name:          item.Transaction.Name,
			Amount:        item.Transaction.Amount.String(),
			DisplayAmount: item.DisplayAmount.String(),
			Editing:       item.Editing,
		})
	}

	return response
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
