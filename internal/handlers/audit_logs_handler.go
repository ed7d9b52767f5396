package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	"github.com/BruksfildServices01/material-rental/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logger *audit.Logger
}

func NewAuditLogsHandler(logger *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------
	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	loc := timezone.Location(timezone.DefaultTimezone)
	if from, err := time.ParseInLocation("2006-01-02", c.Query("from"), loc); err == nil {
		f.From = from
	}
	if to, err := time.ParseInLocation("2006-01-02", c.Query("to"), loc); err == nil {
		f.To = to.Add(24 * time.Hour)
	}

	logs, total, err := h.logger.Query(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
