// Package router sets up the HTTP routing for the application.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/ZawaReck/household/internal/integration/entrypoint/controller"
	"github.com/ZawaReck/household/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	logger            *slog.Logger
	healthController  *controller.HealthController
	entryController   *controller.EntryController
	historyController *controller.HistoryController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	logger *slog.Logger,
	healthController *controller.HealthController,
	entryController *controller.EntryController,
	historyController *controller.HistoryController,
) *Router {
	return &Router{
		logger:            logger,
		healthController:  healthController,
		entryController:   entryController,
		historyController: historyController,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(middleware.RequestLogger(r.logger), gin.Recovery())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		entry := v1.Group("/entry")
		{
			entry.GET("", r.entryController.GetView)
			entry.PATCH("/form", r.entryController.UpdateForm)
			entry.POST("/type", r.entryController.SelectType)
			entry.POST("/date", r.entryController.SelectDate)
			entry.POST("/queue", r.entryController.StageDraft)
			entry.POST("/queue/:index/load", r.entryController.LoadQueued)
			entry.DELETE("/queue/:index", r.entryController.RemoveQueued)
			entry.POST("/edit", r.entryController.BeginEdit)
			entry.POST("/group", r.entryController.SelectGroup)
			entry.POST("/commit", r.entryController.Commit)
			entry.POST("/cancel", r.entryController.Cancel)
			entry.POST("/delete", r.entryController.DeleteEditing)
		}

		v1.GET("/transactions", r.historyController.List)
		v1.GET("/transactions/export", r.historyController.Export)
		v1.GET("/summary", r.historyController.Summary)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
