package appointment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthdost/kiosk-api/internal/handler"
	"github.com/healthdost/kiosk-api/internal/middleware"
	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
	}
}

func (h *Handler) BookAppointment(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	booked, err := h.service.Book(c.Request.Context(), patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrDoctorUnavailable):
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
		case errors.Is(err, appointment.ErrPastAppointment):
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to book appointment"))
		}
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(booked))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

// ListAppointments returns the caller's own appointments: a patient
// sees their bookings, a doctor sees their schedule.
func (h *Handler) ListAppointments(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	filters := &model.AppointmentFilters{}
	role, _ := c.Get(middleware.ContextUserRole)
	if role == model.RoleDoctor {
		filters.DoctorID = userID
	} else {
		filters.PatientID = userID
	}
	if status := c.Query("status"); status != "" {
		filters.Status = model.AppointmentStatus(status)
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list appointments"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, appointment.ErrBadTransition) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update appointment"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}
