package dto

import (
	"github.com/ZawaReck/household/internal/application/usecase/history"
	"github.com/ZawaReck/household/internal/application/usecase/summary"
	"github.com/ZawaReck/household/internal/domain/entity"
)

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Source      string  `json:"source"`
	Destination string  `json:"destination,omitempty"`
	Memo        string  `json:"memo,omitempty"`
	IsSpecial   bool    `json:"is_special,omitempty"`
	GroupID     *string `json:"group_id,omitempty"`
	TaxMode     string  `json:"tax_mode,omitempty"`
	TaxRate     *int    `json:"tax_rate,omitempty"`
}

// HistoryRowResponse is one rendered line of the history list. GroupTotal is
// present on the last member of a multi-item group.
type HistoryRowResponse struct {
	Transaction   TransactionResponse `json:"transaction"`
	DisplayAmount string              `json:"display_amount"`
	Grouped       bool                `json:"grouped"`
	GroupTotal    *string             `json:"group_total,omitempty"`
}

// HistoryDayResponse is one date header with its rows and day totals.
type HistoryDayResponse struct {
	Date    string               `json:"date"`
	Rows    []HistoryRowResponse `json:"rows"`
	Income  string               `json:"income"`
	Expense string               `json:"expense"`
}

// HistoryResponse is the month's history list, newest date first.
type HistoryResponse struct {
	Days []HistoryDayResponse `json:"days"`
}

// ExportResponse is the full transaction history for a data backup.
type ExportResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToExportResponse converts the export output to its response DTO.
func ToExportResponse(output *history.ExportTransactionsOutput) ExportResponse {
	response := ExportResponse{Transactions: make([]TransactionResponse, 0, len(output.Transactions))}
	for _, transaction := range output.Transactions {
		response.Transactions = append(response.Transactions, ToTransactionResponse(transaction))
	}
	return response
}

// MonthlySummaryResponse carries the month's headline figures.
type MonthlySummaryResponse struct {
	Income         string `json:"income"`
	Expense        string `json:"expense"`
	Total          string `json:"total"`
	OpeningBalance string `json:"opening_balance"`
	Balance        string `json:"balance"`
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          transaction.ID.String(),
		Type:        string(transaction.Type),
		Amount:      transaction.Amount.String(),
		Date:        transaction.Date.Format("2006-01-02"),
		Name:        transaction.Name,
		Category:    transaction.Category,
		Source:      transaction.Source,
		Destination: transaction.Destination,
		Memo:        transaction.Memo,
		IsSpecial:   transaction.IsSpecial,
		TaxMode:     string(transaction.TaxMode),
	}
	if transaction.GroupID != nil {
		groupID := transaction.GroupID.String()
		response.GroupID = &groupID
	}
	if transaction.TaxRate != nil {
		rate := int(*transaction.TaxRate)
		response.TaxRate = &rate
	}
	return response
}

// ToHistoryResponse converts the history list output to its response DTO.
func ToHistoryResponse(output *history.ListTransactionsOutput) HistoryResponse {
	response := HistoryResponse{Days: make([]HistoryDayResponse, 0, len(output.Days))}
	for _, day := range output.Days {
		dayResponse := HistoryDayResponse{
			Date:    day.Date.Format("2006-01-02"),
			Rows:    make([]HistoryRowResponse, 0, len(day.Rows)),
			Income:  day.Income.String(),
			Expense: day.Expense.String(),
		}
		for _, row := range day.Rows {
			rowResponse := HistoryRowResponse{
				Transaction:   ToTransactionResponse(row.Transaction),
				DisplayAmount: row.DisplayAmount.String(),
				Grouped:       row.Grouped,
			}
			if row.GroupTotal != nil {
				total := row.GroupTotal.String()
				rowResponse.GroupTotal = &total
			}
			dayResponse.Rows = append(dayResponse.Rows, rowResponse)
		}
		response.Days = append(response.Days, dayResponse)
	}
	return response
}

// ToMonthlySummaryResponse converts the summary output to its response DTO.
func ToMonthlySummaryResponse(output *summary.MonthlySummaryOutput) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		Income:         output.Income.String(),
		Expense:        output.Expense.String(),
		Total:          output.Total.String(),
		OpeningBalance: output.OpeningBalance.String(),
		Balance:        output.Balance.String(),
	}
}
