package handlers

import (
	"net/http"

	"ridebook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler returns the latest stored dependency health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
