package handlers

import (
	"errors"
	"net/http"

	"velora/middleware"
	"velora/models"
	"velora/services/booking"
	"velora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking wizard over HTTP.
type BookingHandler struct {
	Service booking.BookingSessionService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// ListServices returns the bookable service catalogue.
func (h *BookingHandler) ListServices(c *gin.Context) {
	services, err := h.Service.ListServices()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListProfessionals returns the professionals qualified for a service.
func (h *BookingHandler) ListProfessionals(c *gin.Context) {
	serviceID := c.Param("serviceID")
	professionals, err := h.Service.ListProfessionals(serviceID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load professionals", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"professionals": professionals})
}

// StartSession creates a new booking session.
func (h *BookingHandler) StartSession(c *gin.Context) {
	clientID := middleware.AuthenticatedClientID(c)
	session, err := h.Service.StartSession(clientID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// StartEditSession creates a session for rescheduling an appointment.
func (h *BookingHandler) StartEditSession(c *gin.Context) {
	clientID := middleware.AuthenticatedClientID(c)

	var input struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.StartEditSession(clientID, input.AppointmentID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to start reschedule session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetSession returns the current draft, used for pre-selection when the
// user navigates back into the wizard.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Param("sessionID"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectService sets the draft's service.
func (h *BookingHandler) SelectService(c *gin.Context) {
	var input struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.SelectService(c.Param("sessionID"), input.ServiceID)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectProfessional sets the draft's professional choice.
func (h *BookingHandler) SelectProfessional(c *gin.Context) {
	var input struct {
		Any bool   `json:"any"`
		ID  string `json:"id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	choice := models.ProfessionalChoice{Any: input.Any, ID: input.ID}
	session, err := h.Service.SelectProfessional(c.Param("sessionID"), choice)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectDateTime sets the draft's day and start time.
func (h *BookingHandler) SelectDateTime(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.SelectDateTime(c.Param("sessionID"), input.Date, input.Time)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// StepBack moves the wizard one step back, keeping later selections as
// pre-filled values.
func (h *BookingHandler) StepBack(c *gin.Context) {
	session, err := h.Service.StepBack(c.Param("sessionID"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Availability computes the slot list for a day.
func (h *BookingHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	session, err := h.Service.RefreshAvailability(c.Param("sessionID"), date)
	if err != nil {
		if errors.Is(err, booking.ErrStaleAvailability) {
			// Superseded by a newer selection; the caller discards this
			// response.
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": session,
		"slots":   session.Availability,
	})
}

// SearchSlots finds the next days with free slots inside a time range.
func (h *BookingHandler) SearchSlots(c *gin.Context) {
	var query booking.RangeQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	results, err := h.Service.FindSlotsByRange(c.Param("sessionID"), query)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Confirm finalizes the booking.
func (h *BookingHandler) Confirm(c *gin.Context) {
	clientID := middleware.AuthenticatedClientID(c)
	outcome, err := h.Service.Confirm(c.Param("sessionID"), clientID)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, booking.ErrNotAuthenticated):
			status = http.StatusUnauthorized
		case errors.Is(err, booking.ErrIncompleteDraft):
			status = http.StatusBadRequest
		case errors.Is(err, booking.ErrSessionNotFound):
			status = http.StatusNotFound
		case errors.Is(err, booking.ErrNoProfessionalFree):
			status = http.StatusConflict
		}
		h.Logger.Warn("booking confirmation failed",
			zap.String("sessionID", c.Param("sessionID")), zap.Error(err))
		c.JSON(status, gin.H{"outcome": outcome})
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

// CancelSession discards the draft.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Param("sessionID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func (h *BookingHandler) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrEditLocked),
		errors.Is(err, booking.ErrNoServiceSelected),
		errors.Is(err, booking.ErrNoProfessionalSelected),
		errors.Is(err, booking.ErrUnqualifiedProfessional):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking session operation failed", err.Error())
	}
}
