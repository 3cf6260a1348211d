package middleware

import (
	"net/http"
	"net/url"

	"engler-house/internal/models"

	"github.com/gin-gonic/gin"
)

const LoginURL = "/accounts/login/"

// RequireAuth закрывает страницы личного кабинета: без входа отправляем на логин с возвратом.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginURL+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole для JSON API админки: 401 без входа, 403 при чужой роли.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if _, ok := roleSet[user.Role()]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

func RequireStaff() gin.HandlerFunc {
	return RequireRole(models.RoleStaff)
}
