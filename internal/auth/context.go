package auth

import "github.com/gin-gonic/gin"

const (
	customerNumberKey = "customerNumber"
	isAdminKey        = "isAdmin"
)

// GetCustomerNumber returns the authenticated customer's number or empty string.
func GetCustomerNumber(c *gin.Context) string {
	if v, ok := c.Get(customerNumberKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsAdmin reports whether the authenticated customer carries the admin claim.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(isAdminKey)
}
