package handlers

import (
	"errors"
	"net/http"

	"ridebook/middleware"
	"ridebook/models"
	"ridebook/services/booking"
	"ridebook/services/user"
	"ridebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler drives the phone/OTP login flow and profile management.
type AuthHandler struct {
	Sessions user.SessionService
	Manager  *booking.Manager
	Logger   *zap.Logger
}

func NewAuthHandler(sessions user.SessionService, manager *booking.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Manager: manager, Logger: logger}
}

// RequestOTP asks the backend to text a one-time code.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var input struct {
		Phone       string `json:"phone" binding:"required"`
		CountryCode string `json:"countryCode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Sessions.RequestOTP(c.Request.Context(), input.Phone, input.CountryCode); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// VerifyOTP exchanges the code for a session and returns the local key.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var input struct {
		Phone       string `json:"phone" binding:"required"`
		CountryCode string `json:"countryCode"`
		OTP         string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	key, _, profile, err := h.Sessions.VerifyOTP(c.Request.Context(), input.Phone, input.CountryCode, input.OTP)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionKey": key, "profile": profile})
}

// GetProfile returns the rider profile for the session.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	session := sessionFrom(c)
	profile, err := h.Sessions.Profile(c.Request.Context(), session)
	if err != nil {
		h.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile pushes profile edits upstream. An already registered email
// answers 409 without tearing the session down.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session := sessionFrom(c)
	err := h.Sessions.UpdateProfile(c.Request.Context(), session, profile)
	if err != nil {
		var conflict *user.EmailConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
			return
		}
		h.replyError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Logout tears the session down and clears the caller's draft.
func (h *AuthHandler) Logout(c *gin.Context) {
	key := c.GetString(middleware.CtxSessionKey)
	if err := h.Sessions.Logout(c.Request.Context(), key); err != nil {
		h.Logger.Warn("logout failed", zap.Error(err))
	}
	if draftID := c.GetHeader(middleware.DraftIDHeader); draftID != "" {
		h.Manager.Drop(draftID)
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) replyError(c *gin.Context, err error) {
	if user.IsSessionError(err) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": "/"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
