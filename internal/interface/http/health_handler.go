package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/pkg/response"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	AppName string
	Version string
	started time.Time
}

func NewHealthHandler(appName, version string) *HealthHandler {
	return &HealthHandler{AppName: appName, Version: version, started: time.Now()}
}

func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"app":     h.AppName,
		"version": h.Version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	}, "ok")
}
