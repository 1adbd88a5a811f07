// internal/middleware/logging.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/models"
)

// RequestLogger emits one structured log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": duration.Milliseconds(),
			"ip":       c.ClientIP(),
		}).Info("Request processed")
	}
}

// AuditLogMiddleware records mutating requests, keeping the admin
// trade-data import/clear trail. Reads are skipped.
func AuditLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.Method == "OPTIONS" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		c.Next()

		entry := &models.AuditLog{
			Action:       c.Request.Method + " " + c.Request.URL.Path,
			ResourceType: resourceType(c.FullPath()),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			Details: models.JSONB{
				"status": c.Writer.Status(),
			},
		}

		if userID, exists := c.Get("user_id"); exists {
			if id, ok := userID.(uuid.UUID); ok {
				entry.UserID = &id
			}
		}
		if adminID, exists := c.Get("admin_id"); exists {
			if id, ok := adminID.(string); ok {
				entry.AdminID = id
			}
		}

		// Written off the request path; a failed audit write never fails
		// the request.
		go func() {
			if err := db.Create(entry).Error; err != nil {
				logrus.WithError(err).Error("Failed to write audit log")
			}
		}()
	}
}

func resourceType(fullPath string) string {
	// /api/v1/<resource>/...
	const prefix = "/api/v1/"
	if len(fullPath) > len(prefix) && fullPath[:len(prefix)] == prefix {
		rest := fullPath[len(prefix):]
		for i := 0; i < len(rest); i++ {
			if rest[i] == '/' {
				return rest[:i]
			}
		}
		return rest
	}
	return "unknown"
}
