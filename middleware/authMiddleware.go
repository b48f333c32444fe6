package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StaffChecker reports whether the host flagged the current panel user as staff.
type StaffChecker interface {
	IsStaff() bool
}

// StaffOnly hides management routes from non-staff panels. The host decides who is staff;
// this only enforces what it pushed.
func StaffOnly(staff StaffChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !staff.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{"error": "staff only"})
			c.Abort()
			return
		}
		c.Set("staff", true)
		c.Next()
	}
}

// HostTokenHeader carries the shared secret on pushes the host posts over HTTP.
const HostTokenHeader = "X-Host-Token"

// HostOnly admits requests carrying token in HostTokenHeader. With an empty token every
// request is refused.
func HostOnly(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "host ingress disabled"})
			c.Abort()
			return
		}
		got := c.GetHeader(HostTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid host token"})
			c.Abort()
			return
		}
		c.Next()
	}
}
