package handlers

import (
	"net/http"

	"ridebook/middleware"
	"ridebook/models"
	"ridebook/services/booking"
	"ridebook/services/user"
	"ridebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the card/wallet snapshot and card management.
type PaymentHandler struct {
	Manager *booking.Manager
	Logger  *zap.Logger
}

func NewPaymentHandler(manager *booking.Manager, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Manager: manager, Logger: logger}
}

func (h *PaymentHandler) scope(c *gin.Context) *booking.Scope {
	return h.Manager.Scope(c.GetString(middleware.CtxDraftID))
}

// Sync refetches payment details if the pickup or session changed, then
// returns the latest snapshot together with the two loading flags.
func (h *PaymentHandler) Sync(c *gin.Context) {
	session := sessionFrom(c)
	scope := h.scope(c)
	state := scope.Store.Snapshot()

	if err := scope.Payment.SyncOnChange(c.Request.Context(), session, state.Pickup); err != nil {
		if user.IsSessionError(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": "/"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"details":        scope.Payment.Details(),
		"initialLoading": scope.Payment.InitialLoading(),
		"refreshing":     scope.Payment.Refreshing(),
	})
}

// GetDetails returns the last committed snapshot without refetching.
func (h *PaymentHandler) GetDetails(c *gin.Context) {
	c.JSON(http.StatusOK, h.scope(c).Payment.Details())
}

// DeleteCard removes a saved card from the named provider.
func (h *PaymentHandler) DeleteCard(c *gin.Context) {
	provider := models.CardProvider(c.Param("provider"))
	if provider != models.CardProviderStripe && provider != models.CardProviderSquare {
		utils.JSONError(c, http.StatusBadRequest, "unknown card provider", string(provider))
		return
	}
	cardID := c.Param("cardId")
	session := sessionFrom(c)

	if err := h.scope(c).Payment.DeleteCard(c.Request.Context(), session, provider, cardID); err != nil {
		if user.IsSessionError(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": "/"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateSetupIntent opens a Stripe SetupIntent for saving a new card.
func (h *PaymentHandler) CreateSetupIntent(c *gin.Context) {
	session := sessionFrom(c)
	secret, err := h.scope(c).Payment.CreateSetupIntent(c.Request.Context(), session)
	if err != nil {
		h.Logger.Warn("setup intent failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
