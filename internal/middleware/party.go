package middleware

import (
	"github.com/gin-gonic/gin"
)

const partyIDKey = contextKey("actingPartyID")

// ActingPartyHeader names the request header carrying the party performing
// the call. Identity verification happens upstream of this service.
const ActingPartyHeader = "X-Acting-Party-ID"

// defaultActingPartyID tags writes when no acting party header is present.
const defaultActingPartyID = "SYSTEM"

// ActingPartyMiddleware resolves the acting party for the request and stores
// it in the Gin context for handlers to attribute writes to.
func ActingPartyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		partyID := c.GetHeader(ActingPartyHeader)
		if partyID == "" {
			partyID = defaultActingPartyID
		}
		c.Set(string(partyIDKey), partyID)
		c.Next()
	}
}

// GetPartyIDFromContext retrieves the acting party id from the Gin context.
func GetPartyIDFromContext(c *gin.Context) (string, bool) {
	partyID, exists := c.Get(string(partyIDKey))
	if !exists {
		return "", false
	}
	id, ok := partyID.(string)
	return id, ok && id != ""
}
