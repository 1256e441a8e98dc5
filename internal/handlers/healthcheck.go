package handlers

import (
	"github.com/gin-gonic/gin"
)

type HealthcheckHandler struct{}

func NewHealthcheckHandler() *HealthcheckHandler {
	return &HealthcheckHandler{}
}

func (h *HealthcheckHandler) Healthcheck(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}
