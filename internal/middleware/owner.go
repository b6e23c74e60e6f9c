package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/backend/internal/apierror"
	"github.com/inkwell-app/inkwell/backend/internal/logger"
)

// OwnerHeader carries the authenticated owner's ID, set by the edge
// gateway that terminates authentication. This core trusts it as-is;
// token verification is out of scope here.
const OwnerHeader = "X-Owner-ID"

// Owner resolves the owner ID header into the request context. Requests
// without a valid owner UUID are rejected.
func Owner() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(OwnerHeader)
		if raw == "" {
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		ownerID, err := uuid.Parse(raw)
		if err != nil {
			log := logger.FromContext(c.Request.Context())
			log.Debug("rejected request with malformed owner id", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		c.Set("owner_id", ownerID)
		ctx := logger.WithOwnerID(c.Request.Context(), ownerID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OwnerID extracts the owner UUID set by Owner. The boolean is false
// when the middleware did not run.
func OwnerID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("owner_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
