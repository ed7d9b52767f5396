package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/material-rental/internal/httpresp"
	"github.com/BruksfildServices01/material-rental/internal/timezone"
)

func Health(c *gin.Context) {
	httpresp.OK(c, gin.H{
		"status": "ok",
		"time":   timezone.Now(),
	})
}
