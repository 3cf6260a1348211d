package handlers

import (
	"engler-house/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// render оборачивает c.HTML и во все шаблоны прокидывает CurrentUser и flash-сообщения.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u := middleware.CurrentUser(c); u != nil {
		data["CurrentUser"] = u
		data["IsStaff"] = u.IsStaff || u.IsSuperuser
	}

	sess := sessions.Default(c)
	if flashes := sess.Flashes(); len(flashes) > 0 {
		data["Messages"] = flashes
		_ = sess.Save()
	}

	c.HTML(status, tmpl, data)
}

func flash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
}
