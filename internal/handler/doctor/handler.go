package doctor

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthdost/kiosk-api/internal/handler"
	"github.com/healthdost/kiosk-api/internal/middleware"
	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/service/doctor"
)

type Handler struct {
	service *doctor.Service
}

func NewHandler(service *doctor.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.GET("/registration-status", h.GetRegistrationStatus)
		doctors.PUT("/availability", h.SetAvailability)
	}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/doctors/register", h.RegisterDoctor)
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
	var req model.RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, doctor.ErrEmailTaken) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to register doctor"))
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("doctor not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	var filters model.DoctorFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctors, err := h.service.List(c.Request.Context(), &filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list doctors"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

// GetRegistrationStatus returns the caller's own verification state.
func (h *Handler) GetRegistrationStatus(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	found, err := h.service.GetRegistrationStatus(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("doctor not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"verification_status": found.VerificationStatus,
		"verified_at":         found.VerifiedAt,
		"rejection_reason":    found.RejectionReason,
	}))
}

type availabilityRequest struct {
	AcceptingNewPatients *bool `json:"accepting_new_patients" binding:"required"`
}

func (h *Handler) SetAvailability(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), doctorID, *req.AcceptingNewPatients); err != nil {
		if errors.Is(err, doctor.ErrNotVerified) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update availability"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
