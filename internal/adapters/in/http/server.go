package http

import (
	"net/http"

	"rateshop/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for health checks and manual job triggers.
// The scheduled jobs cover normal operation; the trigger endpoints exist so
// an operator can rerun a batch without waiting for the next tick.
type Server struct {
	fetchHandler commands.FetchOrdersCommandHandler
	drainHandler commands.DrainQueueCommandHandler
}

// NewServer creates a new HTTP server with the required command handlers.
func NewServer(
	fetchHandler commands.FetchOrdersCommandHandler,
	drainHandler commands.DrainQueueCommandHandler,
) *Server {
	return &Server{
		fetchHandler: fetchHandler,
		drainHandler: drainHandler,
	}
}

// Error is the JSON error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterRoutes attaches all routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/jobs/batch-fetch", s.TriggerBatchFetch)
	e.POST("/api/v1/jobs/queue-drain", s.TriggerQueueDrain)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// TriggerBatchFetch handles POST /api/v1/jobs/batch-fetch - fetches every
// order awaiting shipment into the queue.
func (s *Server) TriggerBatchFetch(ctx echo.Context) error {
	cmd, err := commands.NewFetchOrdersCommand()
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build fetch command",
		})
	}

	if err := s.fetchHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "Batch fetch failed: " + err.Error(),
		})
	}

	return ctx.NoContent(http.StatusAccepted)
}

// TriggerQueueDrain handles POST /api/v1/jobs/queue-drain - processes every
// queued order.
func (s *Server) TriggerQueueDrain(ctx echo.Context) error {
	cmd, err := commands.NewDrainQueueCommand()
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build drain command",
		})
	}

	if err := s.drainHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "Queue drain failed: " + err.Error(),
		})
	}

	return ctx.NoContent(http.StatusAccepted)
}
