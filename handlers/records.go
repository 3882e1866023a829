package handlers

import (
	"net/http"

	recordsRepo "ridebook/database/repository/records"
	"ridebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecordsHandler serves booking history and recent locations.
type RecordsHandler struct {
	Records recordsRepo.BookingRecordRepository
	Recents recordsRepo.RecentLocationRepository
	Logger  *zap.Logger
}

func NewRecordsHandler(records recordsRepo.BookingRecordRepository, recents recordsRepo.RecentLocationRepository, logger *zap.Logger) *RecordsHandler {
	return &RecordsHandler{Records: records, Recents: recents, Logger: logger}
}

// ListBookings returns the rider's submitted bookings, newest first.
func (h *RecordsHandler) ListBookings(c *gin.Context) {
	session := sessionFrom(c)
	records, err := h.Records.GetByUserID(c.Request.Context(), session.UserID)
	if err != nil {
		h.Logger.Warn("booking history fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load booking history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": records})
}

// ListRecentLocations returns the rider's recently used route points.
func (h *RecordsHandler) ListRecentLocations(c *gin.Context) {
	session := sessionFrom(c)
	locations, err := h.Recents.GetByUserID(c.Request.Context(), session.UserID, 10)
	if err != nil {
		h.Logger.Warn("recent locations fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load recent locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// ClearRecentLocations removes the rider's recent locations.
func (h *RecordsHandler) ClearRecentLocations(c *gin.Context) {
	session := sessionFrom(c)
	if err := h.Recents.DeleteByUserID(c.Request.Context(), session.UserID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "could not clear recent locations", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
