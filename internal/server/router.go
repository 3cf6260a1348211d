package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"engler-house/internal/config"
	"engler-house/internal/handlers"
	"engler-house/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// mediaURL превращает путь из БД в ссылку на загруженный файл.
func mediaURL(base string) func(string) string {
	base = strings.TrimRight(base, "/") + "/"
	return func(path string) string {
		if path == "" {
			return ""
		}
		if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "/") {
			return path
		}
		return base + path
	}
}

func templateFuncs(cfg *config.Config) template.FuncMap {
	return template.FuncMap{
		"media":   mediaURL(cfg.MediaURL),
		"date":    func(t time.Time) string { return t.Format("02.01.2006") },
		"percent": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"seq": func(from, to int) []int {
			out := make([]int, 0, to-from+1)
			for i := from; i <= to; i++ {
				out = append(out, i)
			}
			return out
		},
	}
}

func NewRouter(cfg *config.Config, h *handlers.Handler, users middleware.UserLoader) *gin.Engine {
	r := gin.Default()

	r.Static("/static", cfg.StaticRoot)
	r.Static(strings.TrimRight(cfg.MediaURL, "/"), cfg.MediaRoot)

	r.SetFuncMap(templateFuncs(cfg))
	r.LoadHTMLGlob(cfg.TemplatesGlob)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 14 * 24 * 3600, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("engler_session", store))

	r.Use(middleware.InjectUser(users))

	Register(r, h)

	// HEALTHCHECK И МЕТРИКИ
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
	})

	return r
}

// Register вешает маршруты сайта и админки на готовый движок.
func Register(r gin.IRouter, h *handlers.Handler) {
	// ПУБЛИЧНЫЕ СТРАНИЦЫ
	r.GET("/", h.Index)
	r.GET("/services/", h.ServicesPage)
	r.GET("/projects/", h.ProjectsPage)
	r.GET("/projects/:id/", h.ProjectDetail)
	r.POST("/projects/:id/", h.SubmitReview)
	r.GET("/architects/", h.ArchitectsPage)
	r.GET("/about/", h.AboutPage)
	r.GET("/contact/", h.ContactPage)

	// ФОРМА ОБРАТНОЙ СВЯЗИ
	r.Any("/api/submit-zayavka/", h.SubmitInquiry)

	// AUTH
	r.GET("/accounts/login/", h.ShowLogin)
	r.POST("/accounts/login/", h.Login)
	r.GET("/accounts/logout/", h.Logout)
	r.POST("/accounts/logout/", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())
	auth.GET("/accounts/profile/", h.ShowProfile)
	auth.POST("/accounts/profile/", h.UpdateProfile)
	auth.GET("/my-projects/", h.MyProjects)

	// АДМИНКА (JSON)
	admin := r.Group("/admin/api")
	admin.Use(middleware.RequireStaff())

	admin.POST("/users", h.AdminCreateUser)

	admin.POST("/orders", h.AdminCreateOrder)
	admin.GET("/orders/:id", h.AdminGetOrder)
	admin.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)
	admin.POST("/orders/:id/tasks", h.AdminAddTask)
	admin.PUT("/tasks/:id", h.AdminUpdateTask)
	admin.PATCH("/tasks/:id/status", h.AdminSetTaskStatus)
	admin.DELETE("/tasks/:id", h.AdminDeleteTask)

	admin.POST("/hero", h.AdminSaveHero())
	admin.POST("/hero/:id/activate", h.AdminActivateHero())
	admin.POST("/press", h.AdminSavePress())
	admin.POST("/press/:id/activate", h.AdminActivatePress())
	admin.POST("/contact", h.AdminSaveContactInfo())
	admin.POST("/contact/:id/activate", h.AdminActivateContactInfo())

	admin.POST("/services", h.AdminCreateService())
	admin.POST("/projects", h.AdminCreateProject())
	admin.DELETE("/projects/:id", h.AdminDeleteProject)
	admin.POST("/projects/:id/carousel", h.AdminCreateCarouselImage())
	admin.POST("/projects/:id/details", h.AdminCreateProjectDetail())
	admin.POST("/gallery", h.AdminCreateGalleryImage())
	admin.POST("/press-items", h.AdminCreatePressItem())
	admin.POST("/architects", h.AdminCreateArchitect())

	admin.POST("/reviews/:id/approve", h.AdminApproveReview)
	admin.POST("/reviews/:id/hide", h.AdminHideReview)

	admin.GET("/inquiries", h.AdminListInquiries)
	admin.POST("/inquiries/:id/processed", h.AdminMarkInquiry)

	admin.GET("/audit", h.AdminListAuditLogs)
}
