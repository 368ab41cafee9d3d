package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	usersvc "github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/user"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
)

const resourceName = "User"

type Handler struct {
	service *usersvc.Service
}

func NewHandler(service *usersvc.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the self-service endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("/me", h.GetMe)
		users.PUT("/me", h.UpdateMe)
	}
}

// RegisterAdminRoutes mounts account management on an admin-only group.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
		users.PATCH("/:id/roles", h.SetRoles)
		users.PATCH("/:id/activate", h.Activate)
		users.PATCH("/:id/deactivate", h.Deactivate)
	}
}

func (h *Handler) GetMe(c *gin.Context) {
	caller, ok := handler.Caller(c)
	if !ok {
		return
	}

	user, err := h.service.GetMe(c.Request.Context(), caller, c.Query("email"))
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

func (h *Handler) UpdateMe(c *gin.Context) {
	caller, ok := handler.Caller(c)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if !handler.BindJSON(c, &req, usersvc.MsgEmailRequired) {
		return
	}

	user, err := h.service.UpdateMe(c.Request.Context(), caller, &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ToUserResponses(users))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if !handler.BindJSON(c, &req, usersvc.MsgCredentialsNeeded) {
		return
	}

	user, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	var req model.AdminUpdateUserRequest
	if !handler.BindJSON(c, &req, handler.MsgInvalidBody) {
		return
	}

	user, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// SetRoles expects the body to be a bare JSON array of role names.
func (h *Handler) SetRoles(c *gin.Context) {
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	var roles []string
	if !handler.BindJSON(c, &roles, handler.MsgRolesNotArray) {
		return
	}
	// a JSON null binds cleanly to a nil slice
	if roles == nil {
		handler.Fail(c, apperrors.BadRequest(handler.MsgRolesNotArray, nil))
		return
	}

	user, err := h.service.SetRoles(c.Request.Context(), id, roles)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

func (h *Handler) Activate(c *gin.Context) {
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	user, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := handler.ParseID(c, resourceName)
	if !ok {
		return
	}

	user, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
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
