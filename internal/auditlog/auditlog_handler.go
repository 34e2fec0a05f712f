package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var knownResourceTypes = map[string]bool{
	"inventory_item":  true,
	"supplier":        true,
	"sale":            true,
	"pending_payment": true,
}

type AuditLogHandler struct {
	r *AuditLogRepository
}

func NewAuditLogHandler(r *AuditLogRepository) *AuditLogHandler {
	return &AuditLogHandler{r: r}
}

func (h *AuditLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit/:type/:id", h.GetResourceLog)
}

// GetResourceLog returns the change history of one resource, newest first.
func (h *AuditLogHandler) GetResourceLog(c *gin.Context) {
	resourceType := c.Param("type")
	if !knownResourceTypes[resourceType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown resource type"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind resource ID"})
		return
	}

	logs, err := h.r.GetResourceLog(id, resourceType)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get audit log", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}
