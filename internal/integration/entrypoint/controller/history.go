package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZawaReck/household/internal/application/usecase/history"
	"github.com/ZawaReck/household/internal/application/usecase/summary"
	"github.com/ZawaReck/household/internal/integration/entrypoint/dto"
)

// HistoryController handles the month-sliced history list and the monthly
// summary endpoints.
type HistoryController struct {
	listUseCase    *history.ListTransactionsUseCase
	summaryUseCase *summary.MonthlySummaryUseCase
	exportUseCase  *history.ExportTransactionsUseCase
}

// NewHistoryController creates a new history controller instance.
func NewHistoryController(
	listUseCase *history.ListTransactionsUseCase,
	summaryUseCase *summary.MonthlySummaryUseCase,
	exportUseCase *history.ExportTransactionsUseCase,
) *HistoryController {
	return &HistoryController{
		listUseCase:    listUseCase,
		summaryUseCase: summaryUseCase,
		exportUseCase:  exportUseCase,
	}
}

// List handles GET /transactions requests. Year and month default to the
// current month.
func (c *HistoryController) List(ctx *gin.Context) {
	year, month, ok := parseMonth(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), history.ListTransactionsInput{
		Year:  year,
		Month: month,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve transactions",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHistoryResponse(output))
}

// Summary handles GET /summary requests.
func (c *HistoryController) Summary(ctx *gin.Context) {
	year, month, ok := parseMonth(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), summary.MonthlySummaryInput{
		Year:  year,
		Month: month,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute summary",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(output))
}

// Export handles GET /transactions/export requests. It dumps the entire
// history, tax adjustments included, for a full-data backup.
func (c *HistoryController) Export(ctx *gin.Context) {
	output, err := c.exportUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to export transactions",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExportResponse(output))
}

// parseMonth reads the year and month query parameters, defaulting to the
// current month.
func parseMonth(ctx *gin.Context) (int, time.Month, bool) {
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year",
			})
			return 0, 0, false
		}
		year = parsed
	}
	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month",
			})
			return 0, 0, false
		}
		month = time.Month(parsed)
	}
	return year, month, true
}
