package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hms/hms-api/pkg/httputil"
)

// SizeLimit rejects requests whose declared body size exceeds maxBytes and
// caps the reader for requests that lie about their length.
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, httputil.Response{
				Success: false,
				Error: &httputil.Error{
					Code:    "PAYLOAD_TOO_LARGE",
					Message: fmt.Sprintf("body exceeds %d bytes", maxBytes),
				},
			})
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
