package triage

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthdost/kiosk-api/internal/handler"
	"github.com/healthdost/kiosk-api/internal/middleware"
	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/service/triage"
	"github.com/healthdost/kiosk-api/pkg/metrics"
)

type Handler struct {
	service *triage.Service
	metrics *metrics.Metrics
}

func NewHandler(service *triage.Service, m *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		metrics: m,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	consultations := r.Group("/consultations")
	{
		consultations.POST("/analyze", h.Analyze)
		consultations.GET("", h.ListConsultations)
		consultations.POST("/:id/feedback", h.AttachFeedback)
	}
}

func (h *Handler) Analyze(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), patientID, &req)
	if err != nil {
		if errors.Is(err, triage.ErrEmptySymptoms) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to analyze symptoms"))
		return
	}

	h.record(analysis)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(analysis))
}

func (h *Handler) ListConsultations(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	consultations, err := h.service.GetConsultations(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list consultations"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultations))
}

func (h *Handler) AttachFeedback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid consultation ID"))
		return
	}

	var req model.ConsultationFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.AttachFeedback(c.Request.Context(), id, req.WasHelpful, req.PatientFeedback); err != nil {
		c.JSON(http.StatusConflict, handler.NewErrorResponse("feedback already recorded or consultation not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) record(analysis *triage.Analysis) {
	if h.metrics == nil {
		return
	}
	h.metrics.TriageRequests.WithLabelValues(string(analysis.Tier)).Inc()
	if analysis.Override {
		h.metrics.TriageOverrides.WithLabelValues(analysis.Result.Diagnosis.Primary).Inc()
	}
	if analysis.Fallback {
		h.metrics.TriageFallbacks.Inc()
	}
}
