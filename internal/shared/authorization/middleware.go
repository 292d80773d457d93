package authorization

import (
	"github.com/gin-gonic/gin"
)

// RequireElevated aborts the request unless the authenticated user holds the
// admin or coordinator role.
func RequireElevated() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := UserRole(c.GetString("user_role"))
		if !userRole.IsElevated() {
			c.JSON(403, gin.H{
				"error": "admin or coordinator access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

type OwnedResource interface {
	GetOwnerID() uint
}

func CanAccessResource(userID uint, userRole UserRole, resource OwnedResource) bool {
	if userRole.IsElevated() {
		return true
	}
	return userID == resource.GetOwnerID()
}

func CanAccessResourceByOwnerID(userID uint, userRole UserRole, resourceOwnerID uint) bool {
	if userRole.IsElevated() {
		return true
	}
	return userID == resourceOwnerID
}
