package handlers

import (
	"net/http"

	"github.com/Gidy30B/project02-sub000/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "ok": status.Healthy()})
}
