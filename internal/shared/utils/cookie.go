package utils

import (
	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie = "access_token"
)

// GetTokenFromCookie retrieves the token from a cookie. The desk never
// issues cookies itself; the main CRM sets them on a shared domain, so
// only the read side lives here.
func GetTokenFromCookie(c *gin.Context, cookieName string) string {
	token, err := c.Cookie(cookieName)
	if err == nil && token != "" {
		return token
	}
	return ""
}
