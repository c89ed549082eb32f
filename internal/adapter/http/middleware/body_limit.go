package middleware

import (
	"net/http"

	"peer-wallet/pkg/apperror"
	"peer-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize limits the request body size. A declared Content-Length over
// the limit is rejected with 413 up front; otherwise the reader fails once
// the limit is crossed and binding reports the error.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, apperror.ErrPayloadTooLarge())
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
