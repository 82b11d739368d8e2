package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradepulse/internal/domain/dto"
	"github.com/guttosm/tradepulse/internal/logger"
)

// RecoveryMiddleware returns a Gin middleware that recovers from panics raised
// while handling a request, including panics inside chart renderers.
//
// Behavior:
//   - Logs the panic value, the stack, the route and the request id.
//   - Responds 500 with dto.ErrorResponse unless the handler already started writing,
//     in which case the connection is left as is and the request is only aborted.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			rid, _ := c.Get(RequestIDKey)
			logger.L().Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Str("route", c.FullPath()).
				Str("request_id", toString(rid)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("internal server error", fmt.Errorf("%v", r)))
		}()

		c.Next()
	}
}
