package handlers

import (
	"net/http"

	"frontdesk/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler returns the latest external-service health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
