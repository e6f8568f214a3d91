package handlers

import (
	"errors"
	"net/http"

	"velora/middleware"
	"velora/models"
	"velora/services/client"
	"velora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClientHandler exposes account and profile operations.
type ClientHandler struct {
	Service client.ClientService
	Logger  *zap.Logger
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(svc client.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{Service: svc, Logger: logger}
}

// Register creates a client account.
func (h *ClientHandler) Register(c *gin.Context) {
	var input models.ClientRegistration
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	account, token, err := h.Service.Register(input)
	if err != nil {
		if errors.Is(err, client.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("client registration failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"client": account, "token": token})
}

// Login authenticates a client.
func (h *ClientHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	account, token, err := h.Service.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, client.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "login failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": account, "token": token})
}

// Profile returns the authenticated client's account.
func (h *ClientHandler) Profile(c *gin.Context) {
	clientID := middleware.AuthenticatedClientID(c)
	account, err := h.Service.GetProfile(clientID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load profile", err.Error())
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": account})
}

// UpdateProfile updates the authenticated client's details.
func (h *ClientHandler) UpdateProfile(c *gin.Context) {
	clientID := middleware.AuthenticatedClientID(c)

	var input models.ClientProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	account, err := h.Service.UpdateProfile(clientID, input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": account})
}

// Appointments lists the client's upcoming and past appointments.
func (h *ClientHandler) Appointments(c *gin.Context) {
	clientID := middleware.AuthenticatedClientID(c)
	upcoming, past, err := h.Service.Appointments(clientID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"upcoming": upcoming, "past": past})
}

// CancelAppointment cancels one of the client's confirmed appointments.
func (h *ClientHandler) CancelAppointment(c *gin.Context) {
	clientID := middleware.AuthenticatedClientID(c)
	if err := h.Service.CancelAppointment(clientID, c.Param("appointmentID")); err != nil {
		if errors.Is(err, client.ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "failed to cancel appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// Vouchers lists the client's session packs.
func (h *ClientHandler) Vouchers(c *gin.Context) {
	clientID := middleware.AuthenticatedClientID(c)
	vouchers, err := h.Service.Vouchers(clientID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load vouchers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": vouchers})
}

// VoucherUsable reports whether a voucher can cover a new booking.
func (h *ClientHandler) VoucherUsable(c *gin.Context) {
	clientID := middleware.AuthenticatedClientID(c)
	usable, err := h.Service.CanBookFromVoucher(clientID, c.Param("voucherID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to check voucher", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"usable": usable})
}
