package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthdost/kiosk-api/internal/handler"
	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/service/auth"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/patient/login", h.LoginPatient)
		authGroup.POST("/doctor/login", h.LoginDoctor)
		authGroup.POST("/agent/login", h.LoginAgent)
	}
}

func (h *Handler) LoginPatient(c *gin.Context) {
	var req model.PatientLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	token, err := h.service.LoginPatient(c.Request.Context(), &req)
	if err != nil {
		h.loginError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(token))
}

func (h *Handler) LoginDoctor(c *gin.Context) {
	var req model.DoctorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	token, err := h.service.LoginDoctor(c.Request.Context(), &req)
	if err != nil {
		h.loginError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(token))
}

func (h *Handler) LoginAgent(c *gin.Context) {
	var req model.AgentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	token, err := h.service.LoginAgent(c.Request.Context(), &req)
	if err != nil {
		h.loginError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(token))
}

func (h *Handler) loginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse(err.Error()))
	case errors.Is(err, auth.ErrAccountInactive):
		c.JSON(http.StatusForbidden, handler.NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("login failed"))
	}
}
