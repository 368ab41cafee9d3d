package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/middleware"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	authsvc "github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/auth"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/session"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
)

type Handler struct {
	service  *authsvc.Service
	sessions *session.Manager
}

func NewHandler(service *authsvc.Service, sessions *session.Manager) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
	}
}

type LoginResponse struct {
	User *model.UserResponse `json:"user"`
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.Authenticate(), h.Logout)
	}
}

func (h *Handler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if !handler.BindJSON(c, &req, authsvc.MsgCredentialsRequired) {
		return
	}

	user, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSON(c, &req, authsvc.MsgCredentialsRequired) {
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	if _, err := h.sessions.Start(c, user); err != nil {
		handler.Fail(c, apperrors.Internal(err))
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("User logged in")
	c.JSON(http.StatusOK, LoginResponse{User: user.ToResponse()})
}

func (h *Handler) Logout(c *gin.Context) {
	s, ok := handler.Caller(c)
	if !ok {
		return
	}

	if err := h.sessions.Destroy(c, s); err != nil {
		handler.Fail(c, apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, handler.MessageResponse{Message: handler.MsgLoggedOut})
}
