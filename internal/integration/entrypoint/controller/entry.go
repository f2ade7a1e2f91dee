// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ZawaReck/household/internal/application/adapter"
	"github.com/ZawaReck/household/internal/application/usecase/entry"
	"github.com/ZawaReck/household/internal/domain/entity"
	domainerror "github.com/ZawaReck/household/internal/domain/error"
	"github.com/ZawaReck/household/internal/integration/entrypoint/dto"
)

// EntryController exposes the single-user entry form session over HTTP. The
// tracker has one household and one form, so one session guarded by a mutex
// is the whole concurrency story: every handler takes the lock, runs the
// session transition to completion and renders the resulting view.
type EntryController struct {
	mu              sync.Mutex
	session         *entry.Session
	transactionRepo adapter.TransactionRepository
}

// NewEntryController creates a new entry controller with a fresh session
// anchored to today.
func NewEntryController(transactionRepo adapter.TransactionRepository) *EntryController {
	return &EntryController{
		session:         entry.NewSession(time.Now().UTC()),
		transactionRepo: transactionRepo,
	}
}

// monthly loads the month slice the session's transitions derive their group
// state from.
func (c *EntryController) monthly(ctx *gin.Context, anchor time.Time) ([]*entity.Transaction, bool) {
	monthly, err := c.transactionRepo.FindByMonth(ctx.Request.Context(), anchor.Year(), anchor.Month())
	if err != nil {
		c.handleStoreError(ctx, err)
		return nil, false
	}
	return monthly, true
}

// renderView derives and returns the current form snapshot.
func (c *EntryController) renderView(ctx *gin.Context) {
	monthly, ok := c.monthly(ctx, c.session.MonthAnchor())
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToEntryViewResponse(c.session.View(monthly)))
}

// GetView handles GET /entry requests.
func (c *EntryController) GetView(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderView(ctx)
}

// UpdateForm handles PATCH /entry/form requests, applying the present fields.
func (c *EntryController) UpdateForm(ctx *gin.Context) {
	var req dto.UpdateFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if req.Amount != nil {
		c.session.SetAmount(*req.Amount)
	}
	if req.Name != nil {
		c.session.SetName(*req.Name)
	}
	if req.Memo != nil {
		c.session.SetMemo(*req.Memo)
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format. Use YYYY-MM-DD",
			})
			return
		}
		c.session.SetDate(date)
	}
	if req.Category != nil {
		c.session.SetCategory(*req.Category)
	}
	if req.Source != nil {
		c.session.SetSource(*req.Source)
	}
	if req.MoveSource != nil {
		c.session.SetMoveSource(*req.MoveSource)
	}
	if req.MoveDestination != nil {
		c.session.SetMoveDestination(*req.MoveDestination)
	}
	if req.ExternalTax != nil {
		c.session.SetExternalTax(*req.ExternalTax)
	}
	if req.TaxRate != nil {
		c.session.SetTaxRate(entity.TaxRate(*req.TaxRate))
	}

	c.renderView(ctx)
}

// SelectType handles POST /entry/type requests.
func (c *EntryController) SelectType(ctx *gin.Context) {
	var req dto.SelectTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.SelectType(entity.TransactionType(req.Type))
	c.renderView(ctx)
}

// SelectDate handles POST /entry/date requests.
func (c *EntryController) SelectDate(ctx *gin.Context) {
	var req dto.SelectDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.SelectDate(date)
	c.renderView(ctx)
}

// StageDraft handles POST /entry/queue requests.
func (c *EntryController) StageDraft(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.StageDraft()
	c.renderView(ctx)
}

// LoadQueued handles POST /entry/queue/:index/load requests.
func (c *EntryController) LoadQueued(ctx *gin.Context) {
	index, ok := parseIndex(ctx)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.LoadQueued(index)
	c.renderView(ctx)
}

// RemoveQueued handles DELETE /entry/queue/:index requests.
func (c *EntryController) RemoveQueued(ctx *gin.Context) {
	index, ok := parseIndex(ctx)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.RemoveQueued(index)
	c.renderView(ctx)
}

// BeginEdit handles POST /entry/edit requests.
func (c *EntryController) BeginEdit(ctx *gin.Context) {
	var req dto.BeginEditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}
	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	transaction, err := c.transactionRepo.FindByID(ctx.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "Transaction not found",
				Code:  string(domainerror.ErrCodeTransactionNotFound),
			})
			return
		}
		c.handleStoreError(ctx, err)
		return
	}

	monthly, ok := c.monthly(ctx, transaction.Date)
	if !ok {
		return
	}
	c.session.BeginEdit(transaction, monthly)
	ctx.JSON(http.StatusOK, dto.ToEntryViewResponse(c.session.View(monthly)))
}

// SelectGroup handles POST /entry/group requests.
func (c *EntryController) SelectGroup(ctx *gin.Context) {
	var req dto.SelectGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}
	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid group ID format",
		})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	monthly, ok := c.monthly(ctx, date)
	if !ok {
		return
	}
	c.session.SelectGroup(groupID, date, monthly)
	ctx.JSON(http.StatusOK, dto.ToEntryViewResponse(c.session.View(monthly)))
}

// Commit handles POST /entry/commit requests, running the commit protocol
// against the month's pre-commit transactions.
func (c *EntryController) Commit(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	monthly, ok := c.monthly(ctx, c.session.MonthAnchor())
	if !ok {
		return
	}
	if err := c.session.Commit(ctx.Request.Context(), c.transactionRepo, monthly); err != nil {
		c.handleStoreError(ctx, err)
		return
	}
	c.renderView(ctx)
}

// Cancel handles POST /entry/cancel requests.
func (c *EntryController) Cancel(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Cancel()
	c.renderView(ctx)
}

// DeleteEditing handles POST /entry/delete requests.
func (c *EntryController) DeleteEditing(ctx *gin.Context) {
	var req dto.DeleteEditingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.session.DeleteEditing(ctx.Request.Context(), c.transactionRepo, req.Confirmed); err != nil {
		c.handleStoreError(ctx, err)
		return
	}
	c.renderView(ctx)
}

// parseIndex reads the :index path parameter.
func parseIndex(ctx *gin.Context) (int, bool) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid queue index",
		})
		return 0, false
	}
	return index, true
}

// handleStoreError maps store failures to HTTP responses.
func (c *EntryController) handleStoreError(ctx *gin.Context, err error) {
	var storeErr *domainerror.StoreError
	if errors.As(err, &storeErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: storeErr.Message,
			Code:  string(storeErr.Code),
		})
		return
	}
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
