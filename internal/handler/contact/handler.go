package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	contactsvc "github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/contact"
)

const resourceName = "Message"

type Handler struct {
	service *contactsvc.Service
}

func NewHandler(service *contactsvc.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public contact form.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/contact", h.Submit)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	messages := r.Group("/contact-messages")
	{
		messages.GET("", h.List)
		messages.GET("/:id", h.Get)
		messages.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	var req model.CreateContactRequest
	if !handler.BindJSON(c, &req, contactsvc.MsgAllFieldsRequired) {
		return
	}

	msg, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) List(c *gin.Context) {
	msgs, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	msg, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
