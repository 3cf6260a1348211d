package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"engler-house/internal/middleware"
	"engler-house/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Index(c *gin.Context) {
	page, err := h.Pages.Home(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "index.html", gin.H{"page": page})
}

func (h *Handler) ServicesPage(c *gin.Context) {
	items, err := h.Pages.Services(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "services.html", gin.H{"services": items})
}

func (h *Handler) ProjectsPage(c *gin.Context) {
	page, err := h.Pages.Projects(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "projects.html", gin.H{"page": page})
}

func (h *Handler) ArchitectsPage(c *gin.Context) {
	page, err := h.Pages.Architects(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "architects.html", gin.H{"page": page})
}

func (h *Handler) AboutPage(c *gin.Context) {
	page, err := h.Pages.About(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "about.html", gin.H{"page": page})
}

func (h *Handler) ContactPage(c *gin.Context) {
	info, err := h.Pages.Contact(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "contact.html", gin.H{"contact": info})
}

//
// ПРОЕКТ И ОТЗЫВЫ
//

func (h *Handler) renderProject(c *gin.Context, status int, id uint, form services.ReviewInput, fieldErrs map[string]string) {
	project, err := h.Pages.Project(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	render(c, status, "works-progress.html", gin.H{
		"project": project,
		"form":    form,
		"errors":  fieldErrs,
	})
}

func (h *Handler) ProjectDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		notFound(c)
		return
	}
	h.renderProject(c, http.StatusOK, id, services.ReviewInput{}, nil)
}

// SubmitReview отправляет отзыв на модерацию, после успеха редирект на ту же страницу.
func (h *Handler) SubmitReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		notFound(c)
		return
	}

	var form services.ReviewInput
	if err := c.ShouldBind(&form); err != nil {
		h.renderProject(c, http.StatusBadRequest, id, form, map[string]string{"_": "Некорректные данные"})
		return
	}

	_, err := h.Reviews.Submit(c.Request.Context(), id, form)
	switch {
	case err == nil:
		flash(c, "Спасибо! Ваш отзыв отправлен на модерацию.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/projects/%d/", id))
	case errors.Is(err, services.ErrValidation):
		h.renderProject(c, http.StatusBadRequest, id, form, services.FieldErrors(err))
	case errors.Is(err, services.ErrNotFound):
		notFound(c)
	default:
		serverError(c, err)
	}
}

//
// ЛИЧНЫЙ КАБИНЕТ
//

func (h *Handler) MyProjects(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.Orders.ListOrdersForUser(c.Request.Context(), user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "my-projects.html", gin.H{"orders": orders})
}
