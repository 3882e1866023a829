package handlers

import (
	"net/http"
	"time"

	"ridebook/middleware"
	"ridebook/models"
	"ridebook/services/booking"
	"ridebook/services/user"
	"ridebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the draft store, validator, and orchestrator.
type BookingHandler struct {
	Manager *booking.Manager
	Logger  *zap.Logger
}

func NewBookingHandler(manager *booking.Manager, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Manager: manager, Logger: logger}
}

func (h *BookingHandler) scope(c *gin.Context) *booking.Scope {
	return h.Manager.Scope(c.GetString(middleware.CtxDraftID))
}

func sessionFrom(c *gin.Context) *models.Session {
	if v, ok := c.Get(middleware.CtxSession); ok {
		if s, ok := v.(*models.Session); ok {
			return s
		}
	}
	return nil
}

// Mount runs the navigation guard once per page load. The client reports the
// navigation-timing entry type together with an id it generates fresh on each
// page load; re-renders repeat the same id.
func (h *BookingHandler) Mount(c *gin.Context) {
	var input struct {
		PageLoadID     string `json:"pageLoadId" binding:"required"`
		NavigationType string `json:"navigationType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	scope := h.scope(c)
	cleared := scope.Guard.Evaluate(input.PageLoadID, input.NavigationType)
	c.JSON(http.StatusOK, gin.H{"cleared": cleared, "state": scope.Store.Snapshot()})
}

// GetDraft returns the current draft snapshot.
func (h *BookingHandler) GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, h.scope(c).Store.Snapshot())
}

// SetPickup replaces the pickup location.
func (h *BookingHandler) SetPickup(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid location", err.Error())
		return
	}
	if res := booking.ValidatePickup(&loc); !res.IsValid {
		c.JSON(http.StatusOK, res)
		return
	}
	h.scope(c).Store.SetPickup(&loc)
	c.JSON(http.StatusOK, gin.H{"isValid": true})
}

// SetDropoff replaces the drop location.
func (h *BookingHandler) SetDropoff(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid location", err.Error())
		return
	}
	if res := booking.ValidateDestination(&loc); !res.IsValid {
		c.JSON(http.StatusOK, res)
		return
	}
	h.scope(c).Store.SetDropoff(&loc)
	c.JSON(http.StatusOK, gin.H{"isValid": true})
}

// SetStops replaces the ordered stop list.
func (h *BookingHandler) SetStops(c *gin.Context) {
	var input struct {
		Stops []models.Location `json:"stops"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid stops", err.Error())
		return
	}
	h.scope(c).Store.SetStops(input.Stops)
	c.JSON(http.StatusOK, gin.H{"isValid": true})
}

// SetParty records passenger and luggage counts.
func (h *BookingHandler) SetParty(c *gin.Context) {
	var input struct {
		Passengers int `json:"passengers"`
		Luggage    int `json:"luggage"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	h.scope(c).Store.SetParty(input.Passengers, input.Luggage)
	c.Status(http.StatusNoContent)
}

// SetSchedule validates and records the pickup time.
func (h *BookingHandler) SetSchedule(c *gin.Context) {
	var input struct {
		ScheduledAt *time.Time `json:"scheduledAt"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if res := booking.ValidateScheduledDateTime(input.ScheduledAt); !res.IsValid {
		c.JSON(http.StatusOK, res)
		return
	}
	h.scope(c).Store.SetSchedule(input.ScheduledAt)
	c.JSON(http.StatusOK, gin.H{"isValid": true})
}

// SelectRegion records the chosen vehicle region and service.
func (h *BookingHandler) SelectRegion(c *gin.Context) {
	var input struct {
		Region    models.VehicleRegion `json:"region"`
		ServiceID int                  `json:"serviceId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	h.scope(c).Store.SelectRegion(&input.Region, input.ServiceID)
	c.Status(http.StatusNoContent)
}

// SelectPayment records the payment method and card selection.
func (h *BookingHandler) SelectPayment(c *gin.Context) {
	var input struct {
		Method models.PaymentMethod `json:"method"`
		CardID string               `json:"cardId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	h.scope(c).Store.SelectPaymentMethod(input.Method, input.CardID)
	c.Status(http.StatusNoContent)
}

// ApplyCoupon applies or removes a promotion by id.
func (h *BookingHandler) ApplyCoupon(c *gin.Context) {
	var input struct {
		PromoID *int `json:"promoId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	h.scope(c).Store.ApplyCoupon(input.PromoID)
	c.Status(http.StatusNoContent)
}

// SetCustomer records contact details for the booking.
func (h *BookingHandler) SetCustomer(c *gin.Context) {
	var input struct {
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		CountryCode  string `json:"countryCode"`
		DriverNote   string `json:"driverNote"`
		FlightNumber string `json:"flightNumber"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	store := h.scope(c).Store
	store.SetCustomer(input.Name, input.Phone, input.CountryCode)
	store.SetDriverNote(input.DriverNote)
	store.SetFlightNumber(input.FlightNumber)
	c.Status(http.StatusNoContent)
}

// Validate runs the full ordered form validation over the draft.
func (h *BookingHandler) Validate(c *gin.Context) {
	state := h.scope(c).Store.Snapshot()
	c.JSON(http.StatusOK, booking.ValidateBookingForm(&state))
}

// FindDrivers quotes available vehicle regions around the draft's pickup.
func (h *BookingHandler) FindDrivers(c *gin.Context) {
	session := sessionFrom(c)
	regions, err := h.scope(c).Orchestrator.FindDrivers(c.Request.Context(), session)
	if err != nil {
		h.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

// FetchPromotions loads the promotions for the draft's pickup into the store.
func (h *BookingHandler) FetchPromotions(c *gin.Context) {
	session := sessionFrom(c)
	scope := h.scope(c)
	state := scope.Store.Snapshot()
	if res := booking.ValidatePickup(state.Pickup); !res.IsValid {
		c.JSON(http.StatusOK, gin.H{"promotions": []models.Promotion{}})
		return
	}
	promos, err := h.Manager.Promotions(c.Request.Context(), session, state.Pickup.Lat, state.Pickup.Lng)
	if err != nil {
		h.replyError(c, err)
		return
	}
	scope.Store.SetPromotions(promos)
	c.JSON(http.StatusOK, gin.H{"promotions": promos})
}

// Submit shapes and submits the pickup schedule.
func (h *BookingHandler) Submit(c *gin.Context) {
	session := sessionFrom(c)
	resp, err := h.scope(c).Orchestrator.SubmitPickupSchedule(c.Request.Context(), session)
	if err != nil {
		h.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// replyError maps the error taxonomy onto responses: session errors answer
// 401 with a redirect, precondition and validation failures answer 400, and
// remote failures pass through verbatim for toast display.
func (h *BookingHandler) replyError(c *gin.Context, err error) {
	switch err.(type) {
	case *booking.PreconditionError, *booking.ValidationError:
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	if user.IsSessionError(err) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": "/"})
		return
	}
	h.Logger.Warn("booking call failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
