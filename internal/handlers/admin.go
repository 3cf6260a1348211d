package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"engler-house/internal/database"
	"engler-house/internal/middleware"
	"engler-house/internal/models"
	"engler-house/internal/services"

	"github.com/gin-gonic/gin"
)

// actorID: кто из сотрудников выполняет действие, для журнала.
func actorID(c *gin.Context) uint {
	if u := middleware.CurrentUser(c); u != nil {
		return u.ID
	}
	return 0
}

func (h *Handler) audit(c *gin.Context, entity string, entityID uint, action, details string) {
	database.CreateAuditLog(h.DB.WithContext(c.Request.Context()), actorID(c), entity, entityID, action, details)
}

// apiError переводит ошибки сервисов в HTTP-коды JSON API.
func apiError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": services.FieldErrors(err)})
	case errors.Is(err, models.ErrGallerySlotRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrOrderNumberTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		slog.Error("admin api request failed", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}

func pathID(c *gin.Context) (uint, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	}
	return id, ok
}

//
// АККАУНТЫ
//

func (h *Handler) AdminCreateUser(c *gin.Context) {
	var in services.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	user, err := h.Accounts.CreateUser(c.Request.Context(), in)
	if err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "user", user.ID, "create", "Создан пользователь "+user.Email)
	c.JSON(http.StatusCreated, user)
}

//
// ЗАКАЗЫ И ЭТАПЫ
//

func (h *Handler) AdminCreateOrder(c *gin.Context) {
	var in services.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	order, err := h.Orders.CreateOrder(c.Request.Context(), in)
	if err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "order", order.ID, "create", "Создан заказ #"+order.OrderNumber)
	c.JSON(http.StatusCreated, order)
}

type orderResponse struct {
	*models.Order
	Progress int `json:"progress"`
}

func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse{Order: order, Progress: order.ProgressPercentage()})
}

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	if err := h.Orders.UpdateOrderStatus(c.Request.Context(), id, req.Status); err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "order", id, "status_change", "Статус: "+req.Status.Label())
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (h *Handler) AdminAddTask(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}

	var in services.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	task, err := h.Orders.AddTask(c.Request.Context(), orderID, in)
	if err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "task", task.ID, "create", fmt.Sprintf("Этап %q добавлен в заказ %d", task.Title, orderID))
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) AdminUpdateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in services.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	task, err := h.Orders.UpdateTask(c.Request.Context(), id, in)
	if err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "task", task.ID, "update", "Статус: "+task.Status.Label())
	c.JSON(http.StatusOK, task)
}

type taskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

func (h *Handler) AdminSetTaskStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	task, err := h.Orders.SetTaskStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "task", task.ID, "status_change", "Статус: "+task.Status.Label())
	c.JSON(http.StatusOK, task)
}

func (h *Handler) AdminDeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Orders.DeleteTask(c.Request.Context(), id); err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "task", id, "delete", "")
	c.Status(http.StatusNoContent)
}

//
// КОНТЕНТ
//

type identified interface {
	GetID() uint
	ResetModel()
}

// createContent: общий обработчик создания записи каталога. Новая запись активна,
// если в запросе не сказано иное; scope может привязать её к родителю из URL.
func createContent[T any, PT interface {
	*T
	identified
}](h *Handler, entity string, activate func(PT), save func(*gin.Context, PT) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		item := PT(new(T))
		activate(item)

		if err := c.ShouldBindJSON(item); err != nil {
			badJSON(c, err)
			return
		}
		item.ResetModel()

		var err error
		if save != nil {
			err = save(c, item)
		} else {
			err = h.Content.Create(c.Request.Context(), item)
		}
		if err != nil {
			apiError(c, err)
			return
		}

		h.audit(c, entity, item.GetID(), "create", "")
		c.JSON(http.StatusCreated, item)
	}
}

// inProject привязывает дочернюю запись к активному проекту из пути.
func (h *Handler) inProject(c *gin.Context, setProject func(uint), item any) error {
	id, ok := parseID(c, "id")
	if !ok {
		return services.ErrNotFound
	}
	if _, err := h.Content.GetActiveProject(c.Request.Context(), id); err != nil {
		return err
	}
	setProject(id)
	return h.Content.Create(c.Request.Context(), item)
}

func (h *Handler) AdminCreateService() gin.HandlerFunc {
	return createContent(h, "service", func(s *models.Service) { s.IsActive = true }, nil)
}

func (h *Handler) AdminCreateProject() gin.HandlerFunc {
	return createContent(h, "project", func(p *models.Project) { p.IsActive = true }, nil)
}

func (h *Handler) AdminCreateCarouselImage() gin.HandlerFunc {
	return createContent(h, "project_carousel",
		func(pc *models.ProjectCarousel) { pc.IsActive = true },
		func(c *gin.Context, pc *models.ProjectCarousel) error {
			return h.inProject(c, func(id uint) { pc.ProjectID = id }, pc)
		})
}

func (h *Handler) AdminCreateProjectDetail() gin.HandlerFunc {
	return createContent(h, "project_detail",
		func(pd *models.ProjectDetail) { pd.IsActive = true },
		func(c *gin.Context, pd *models.ProjectDetail) error {
			return h.inProject(c, func(id uint) { pd.ProjectID = id }, pd)
		})
}

func (h *Handler) AdminCreateGalleryImage() gin.HandlerFunc {
	return createContent(h, "gallery", func(g *models.GalleryImage) { g.IsActive = true }, nil)
}

func (h *Handler) AdminCreatePressItem() gin.HandlerFunc {
	return createContent(h, "press_item", func(pi *models.PressItem) { pi.IsActive = true }, nil)
}

func (h *Handler) AdminCreateArchitect() gin.HandlerFunc {
	return createContent(h, "architect", func(a *models.Architect) { a.IsActive = true }, nil)
}

func (h *Handler) AdminSaveHero() gin.HandlerFunc {
	return createContent(h, "hero", func(hs *models.HeroSection) { hs.IsActive = true },
		func(c *gin.Context, hs *models.HeroSection) error {
			return h.Content.SaveHero(c.Request.Context(), hs)
		})
}

func (h *Handler) AdminSavePress() gin.HandlerFunc {
	return createContent(h, "press", func(p *models.Press) { p.IsActive = true },
		func(c *gin.Context, p *models.Press) error {
			return h.Content.SavePress(c.Request.Context(), p)
		})
}

func (h *Handler) AdminSaveContactInfo() gin.HandlerFunc {
	return createContent(h, "contact_info", func(ci *models.ContactInfo) { ci.IsActive = true },
		func(c *gin.Context, ci *models.ContactInfo) error {
			return h.Content.SaveContactInfo(c.Request.Context(), ci)
		})
}

// activateHandler делает запись единственной активной в своём типе.
func (h *Handler) activateHandler(entity string, activate func(*gin.Context, uint) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := activate(c, id); err != nil {
			apiError(c, err)
			return
		}
		h.audit(c, entity, id, "activate", "")
		c.JSON(http.StatusOK, gin.H{"id": id, "is_active": true})
	}
}

func (h *Handler) AdminActivateHero() gin.HandlerFunc {
	return h.activateHandler("hero", func(c *gin.Context, id uint) error {
		return h.Content.ActivateHero(c.Request.Context(), id)
	})
}

func (h *Handler) AdminActivatePress() gin.HandlerFunc {
	return h.activateHandler("press", func(c *gin.Context, id uint) error {
		return h.Content.ActivatePress(c.Request.Context(), id)
	})
}

func (h *Handler) AdminActivateContactInfo() gin.HandlerFunc {
	return h.activateHandler("contact_info", func(c *gin.Context, id uint) error {
		return h.Content.ActivateContactInfo(c.Request.Context(), id)
	})
}

func (h *Handler) AdminDeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Content.DeleteProject(c.Request.Context(), id); err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "project", id, "delete", "")
	c.Status(http.StatusNoContent)
}

//
// МОДЕРАЦИЯ И ЗАЯВКИ
//

func (h *Handler) AdminApproveReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Reviews.Approve(c.Request.Context(), id); err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "review", id, "approve", "")
	c.JSON(http.StatusOK, gin.H{"id": id, "is_active": true})
}

func (h *Handler) AdminHideReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Reviews.Hide(c.Request.Context(), id); err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "review", id, "hide", "")
	c.JSON(http.StatusOK, gin.H{"id": id, "is_active": false})
}

func (h *Handler) AdminListInquiries(c *gin.Context) {
	inquiries, err := h.Inquiries.List(c.Request.Context(), c.Query("new") != "")
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

type processedRequest struct {
	Processed *bool `json:"processed"`
}

func (h *Handler) AdminMarkInquiry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	processed := true
	var req processedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badJSON(c, err)
			return
		}
		if req.Processed != nil {
			processed = *req.Processed
		}
	}

	if err := h.Inquiries.MarkProcessed(c.Request.Context(), id, processed); err != nil {
		apiError(c, err)
		return
	}

	h.audit(c, "inquiry", id, "processed", fmt.Sprint(processed))
	c.JSON(http.StatusOK, gin.H{"id": id, "is_processed": processed})
}
