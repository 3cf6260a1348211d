package middleware

import (
	"context"
	"errors"
	"log/slog"

	"engler-house/internal/models"
	"engler-house/internal/repositories"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	SessionUserID  = "user_id"
	currentUserKey = "CurrentUser"
)

type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// InjectUser кладёт в контекст пользователя из сессии. Удалённый или
// выключенный аккаунт разлогинивается.
func InjectUser(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uid, ok := sess.Get(SessionUserID).(uint); ok && uid > 0 {
			user, err := users.GetUser(c.Request.Context(), uid)
			switch {
			case err == nil && user.CanLogin():
				c.Set(currentUserKey, user)
			case err == nil || errors.Is(err, repositories.ErrNotFound):
				sess.Delete(SessionUserID)
				_ = sess.Save()
			default:
				slog.Error("could not load session user", "user", uid, "err", err)
			}
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
