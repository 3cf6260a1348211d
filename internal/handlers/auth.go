package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"engler-house/internal/middleware"
	"engler-house/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const profileURL = "/accounts/profile/"

// safeNext пропускает только локальные пути, чтобы ?next= не уводил на чужой сайт.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return profileURL
}

func (h *Handler) ShowLogin(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, profileURL)
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{"error": "", "email": "", "next": c.Query("next")})
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Некорректные данные", "email": "", "next": ""})
		return
	}

	user, err := h.Accounts.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		msg := ""
		switch {
		case errors.Is(err, services.ErrValidation):
			msg = "Введите email и пароль"
		case errors.Is(err, services.ErrInvalidCredentials):
			msg = "Неверный email или пароль"
		case errors.Is(err, services.ErrAccountDisabled):
			msg = "Аккаунт деактивирован"
		default:
			serverError(c, err)
			return
		}
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": msg, "email": form.Email, "next": form.Next})
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserID, user.ID)
	_ = sess.Save()

	c.Redirect(http.StatusFound, safeNext(form.Next))
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.AddFlash("Вы вышли из аккаунта")
	_ = sess.Save()
	c.Redirect(http.StatusFound, middleware.LoginURL)
}

func (h *Handler) ShowProfile(c *gin.Context) {
	render(c, http.StatusOK, "profile.html", gin.H{"user": middleware.CurrentUser(c), "error": ""})
}

// UpdateProfile при ошибке показывает форму с тем, что ввёл пользователь.
func (h *Handler) UpdateProfile(c *gin.Context) {
	user := *middleware.CurrentUser(c)

	in := services.ProfileInput{
		FirstName:  c.PostForm("first_name"),
		LastName:   c.PostForm("last_name"),
		Patronymic: c.PostForm("patronymic"),
	}

	if err := h.Accounts.UpdateProfile(c.Request.Context(), &user, in); err != nil {
		status, msg := http.StatusBadRequest, "Проверьте введённые данные"
		if !errors.Is(err, services.ErrValidation) {
			slog.Error("could not update profile", "user", user.ID, "err", err)
			status, msg = http.StatusInternalServerError, "Ошибка сохранения профиля"
		}
		render(c, status, "profile.html", gin.H{"user": &user, "error": msg})
		return
	}

	flash(c, "Профиль обновлен")
	c.Redirect(http.StatusFound, profileURL)
}
