package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	aptsvc "github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/appointment"
)

const resourceName = "Appointment"

type Handler struct {
	service *aptsvc.Service
}

func NewHandler(service *aptsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.List)
		appointments.POST("", h.Create)
		appointments.GET("/:id", h.Get)
		appointments.PUT("/:id", h.Update)
		appointments.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.AdminList)
		appointments.GET("/:id", h.AdminGet)
		appointments.PUT("/:id", h.AdminUpdate)
		appointments.DELETE("/:id", h.AdminDelete)
	}
}

func (h *Handler) List(c *gin.Context) {
	caller, ok := handler.Caller(c)
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), caller)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ToAppointmentResponses(items))
}

func (h *Handler) Get(c *gin.Context) {
	caller, ok := handler.Caller(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	apt, err := h.service.Get(c.Request.Context(), caller, id)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, apt.ToResponse())
}

func (h *Handler) Create(c *gin.Context) {
	caller, ok := handler.Caller(c)
	if !ok {
		return
	}

	var req model.CreateAppointmentRequest
	if !handler.BindJSON(c, &req, aptsvc.MsgMissingFields) {
		return
	}

	apt, err := h.service.Create(c.Request.Context(), caller, &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, apt.ToResponse())
}

func (h *Handler) Update(c *gin.Context) {
	caller, ok := handler.Caller(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	var req model.UpdateAppointmentRequest
	if !handler.BindJSON(c, &req, handler.MsgInvalidBody) {
		return
	}

	apt, err := h.service.Update(c.Request.Context(), caller, id, &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, apt.ToResponse())
}

func (h *Handler) Delete(c *gin.Context) {
	caller, ok := handler.Caller(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		handler.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) AdminList(c *gin.Context) {
	items, err := h.service.AdminList(c.Request.Context())
	if err != nil {
		handler.Fail(c, err)
		return
	}

	resp := make([]*model.AdminAppointmentResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, item.ToAdminResponse())
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AdminGet(c *gin.Context) {
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	item, err := h.service.AdminGet(c.Request.Context(), id)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, item.ToAdminResponse())
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	var req model.UpdateAppointmentRequest
	if !handler.BindJSON(c, &req, handler.MsgInvalidBody) {
		return
	}

	item, err := h.service.AdminUpdate(c.Request.Context(), id, &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, item.ToAdminResponse())
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	if err := h.service.AdminDelete(c.Request.Context(), id); err != nil {
		handler.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
