package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wayfarer-ai/wayfarer/internal/app/domain/planner"
	"github.com/wayfarer-ai/wayfarer/internal/app/middleware"
	"github.com/wayfarer-ai/wayfarer/internal/app/models"
	"github.com/wayfarer-ai/wayfarer/internal/app/pdf"
	"github.com/wayfarer-ai/wayfarer/internal/app/views"
	"github.com/wayfarer-ai/wayfarer/internal/observability/metrics"
)

type PlannerHandlers struct {
	planner   *planner.Service
	logger    *zap.Logger
	exportPDF func(*models.Itinerary, io.Writer) error
}

func NewPlannerHandlers(plannerService *planner.Service, logger *zap.Logger) *PlannerHandlers {
	return &PlannerHandlers{planner: plannerService, logger: logger, exportPDF: pdf.Export}
}

// HandleIndex serves the planner page. A full page load starts a fresh
// state: the previous itinerary and conversation are gone.
func (h *PlannerHandlers) HandleIndex(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	sess.Reset()
	render(c, http.StatusOK, views.IndexPage())
}

// HandleGenerate runs one itinerary generation for the session. While a
// generation is in flight any further submit for the same session is
// rejected, so a single request is made per user action.
func (h *PlannerHandlers) HandleGenerate(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)

	destination := strings.TrimSpace(c.PostForm("destination"))
	interests := c.PostForm("interests")
	budget := c.DefaultPostForm("budget", "Moderate")
	duration, convErr := strconv.Atoi(strings.TrimSpace(c.PostForm("duration")))

	h.logger.Info("Itinerary generation request",
		zap.String("destination", destination),
		zap.Int("duration", duration),
		zap.String("budget", budget))

	if destination == "" || convErr != nil || duration < 1 {
		render(c, http.StatusBadRequest, views.ErrorPanel("Please provide a destination and a positive number of days."))
		return
	}

	if err := sess.BeginGeneration(); err != nil {
		c.String(http.StatusConflict, "An itinerary is already being generated. Please wait for it to finish.")
		return
	}

	metrics.Get().GenerationRequestsTotal.Add(c.Request.Context(), 1)

	itinerary, err := h.planner.Generate(c.Request.Context(), planner.TripParams{
		Destination:  destination,
		DurationDays: duration,
		Interests:    interests,
		Budget:       budget,
	})
	if err != nil {
		sess.FailGeneration()
		metrics.Get().GenerationFailuresTotal.Add(c.Request.Context(), 1)
		render(c, http.StatusOK, views.ErrorPanel(generationErrorMessage(err)))
		return
	}

	sess.CompleteGeneration(itinerary)
	render(c, http.StatusOK, views.ItineraryResult(itinerary))
}

// HandleDownloadPDF streams the current itinerary as a paginated document.
// The download control only exists after a successful render, so a missing
// itinerary is a 404, not an error page.
func (h *PlannerHandlers) HandleDownloadPDF(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	itinerary := sess.CurrentItinerary()
	if itinerary == nil {
		c.Status(http.StatusNotFound)
		return
	}

	// Build the whole document before committing a status: an export error
	// must surface as a 500, not a 200 with a truncated body.
	var buf bytes.Buffer
	if err := h.exportPDF(itinerary, &buf); err != nil {
		h.logger.Error("PDF export failed",
			zap.String("title", itinerary.TripTitle),
			zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.Filename(itinerary)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	metrics.Get().PDFExportsTotal.Add(c.Request.Context(), 1)
}

// generationErrorMessage maps a failure to the text shown in the error panel.
func generationErrorMessage(err error) string {
	var remoteErr *models.RemoteError
	switch {
	case errors.Is(err, models.ErrNotConfigured):
		return "The planner is disabled. Please configure the GEMINI_API_KEY environment variable."
	case errors.As(err, &remoteErr):
		return "API Error: " + remoteErr.Message
	case errors.Is(err, models.ErrMalformedResponse):
		return "The travel planner returned a malformed response. Please try again."
	default:
		return err.Error()
	}
}
