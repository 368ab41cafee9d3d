package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	rxsvc "github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/prescription"
)

const resourceName = "Prescription"

type Handler struct {
	service *rxsvc.Service
}

func NewHandler(service *rxsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.GET("", h.List)
		prescriptions.POST("", h.Create)
		prescriptions.GET("/:id", h.Get)
		prescriptions.PUT("/:id", h.Update)
		prescriptions.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.GET("", h.AdminList)
		prescriptions.GET("/:id", h.AdminGet)
		prescriptions.PUT("/:id", h.AdminUpdate)
		prescriptions.DELETE("/:id", h.AdminDelete)
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

	c.JSON(http.StatusOK, model.ToPrescriptionResponses(items))
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

	rx, err := h.service.Get(c.Request.Context(), caller, id)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, rx.ToResponse())
}

func (h *Handler) Create(c *gin.Context) {
	caller, ok := handler.Caller(c)
	if !ok {
		return
	}

	var req model.CreatePrescriptionRequest
	if !handler.BindJSON(c, &req, rxsvc.MsgMissingFields) {
		return
	}

	rx, err := h.service.Create(c.Request.Context(), caller, &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, rx.ToResponse())
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

	var req model.UpdatePrescriptionRequest
	if !handler.BindJSON(c, &req, handler.MsgInvalidBody) {
		return
	}

	rx, err := h.service.Update(c.Request.Context(), caller, id, &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, rx.ToResponse())
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

	resp := make([]*model.AdminPrescriptionResponse, 0, len(items))
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

	var req model.UpdatePrescriptionRequest
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
