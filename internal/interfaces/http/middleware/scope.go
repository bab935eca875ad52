package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orgadmin/backend/internal/infrastructure/logger"
)

// RequestScope pushes the request ID, the acting user and a request-scoped
// logger into the request context, so application services (and the audit
// trail in particular) can resolve them without seeing the transport.
//
// The actor is taken from the X-Actor-ID header placed there by the external
// identity system's gateway; authentication itself happens upstream of this
// service. A malformed actor ID is ignored rather than rejected.
func RequestScope(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		scoped := log

		if requestID := c.GetString("request_id"); requestID != "" {
			ctx, scoped = logger.WithRequestID(ctx, scoped, requestID)
		} else {
			ctx = logger.WithContext(ctx, scoped)
		}

		if actorID := c.GetHeader("X-Actor-ID"); actorID != "" {
			if _, err := uuid.Parse(actorID); err == nil {
				ctx, _ = logger.WithActorID(ctx, scoped, actorID)
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
