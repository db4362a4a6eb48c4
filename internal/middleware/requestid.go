package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/pkg/logger"
)

const (
	HeaderXRequestID = "X-Request-ID"
	ContextRequestID = "request_id"

	// MaxRequestIDLength bounds caller-supplied IDs before they reach logs.
	MaxRequestIDLength = 64
)

// RequestID tags each ops request. A caller's X-Request-ID is reused only when
// it is short printable ASCII; anything else is replaced with a fresh UUID.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if !validRequestID(rid) {
			if rid != "" {
				log.Warn("replacing malformed request id",
					"path", c.Request.URL.Path,
					"length", len(rid),
				)
			}
			rid = uuid.New().String()
		}

		c.Set(ContextRequestID, rid)
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] < 0x21 || rid[i] > 0x7e {
			return false
		}
	}
	return true
}
