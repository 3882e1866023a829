package handlers

import (
	"net/http"

	"ridebook/services/operator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OperatorHandler serves the per-tenant operator configuration.
type OperatorHandler struct {
	Operator *operator.Service
	Logger   *zap.Logger
}

func NewOperatorHandler(svc *operator.Service, logger *zap.Logger) *OperatorHandler {
	return &OperatorHandler{Operator: svc, Logger: logger}
}

// GetParams returns the operator params, fetching them on first use.
func (h *OperatorHandler) GetParams(c *gin.Context) {
	params, err := h.Operator.Params(c.Request.Context())
	if err != nil {
		h.Logger.Warn("operator params fetch failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, params)
}
