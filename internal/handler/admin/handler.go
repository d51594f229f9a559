package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthdost/kiosk-api/internal/handler"
	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/service/doctor"
)

// Handler covers the admin verification workflow for doctors.
type Handler struct {
	doctorSvc *doctor.Service
}

func NewHandler(doctorSvc *doctor.Service) *Handler {
	return &Handler{doctorSvc: doctorSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/doctors/pending", h.ListPendingDoctors)
		admin.PUT("/doctors/:id/verify", h.VerifyDoctor)
		admin.POST("/doctors/remind-documents", h.SendDocumentReminders)
	}
}

func (h *Handler) ListPendingDoctors(c *gin.Context) {
	doctors, err := h.doctorSvc.ListPendingVerification(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list pending doctors"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) VerifyDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req model.VerifyDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.doctorSvc.Verify(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update verification"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) SendDocumentReminders(c *gin.Context) {
	sent, err := h.doctorSvc.SendDocumentReminders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to send reminders"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"reminders_sent": sent}))
}
