package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey     = contextKey("userID")
	customerIDKey = contextKey("customerID")
	roleKey       = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context, with a fallback to the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userIDKey)
}

// GetCustomerIDFromContext retrieves the acting customer's identifier.
// Handlers pass this into the core explicitly; the core never reads it from
// ambient state.
func GetCustomerIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, customerIDKey)
}

// GetRoleFromContext retrieves the authenticated user's role.
func GetRoleFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, roleKey)
}

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	if v, exists := c.Get(string(key)); exists {
		if s, ok := v.(string); ok {
			return s, true
		}
		return "", false
	}
	if v := c.Request.Context().Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}
