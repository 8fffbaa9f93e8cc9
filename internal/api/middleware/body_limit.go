package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proj-int-univesp/lai-cmg/pkg/response"
)

// BodyLimit caps the request body at maxBytes. The attachment upload route
// bypasses the global limit with its own, larger one.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
				return
			}
		}
	}
}
