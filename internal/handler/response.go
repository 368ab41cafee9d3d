package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/session"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/validator"
)

const (
	MsgInvalidBody     = "Invalid request body"
	MsgRolesNotArray   = "Roles must be an array"
	MsgLoggedOut       = "Logged out successfully"
	MsgUnauthenticated = "Unauthorized - Please login"
)

// MessageResponse is returned by endpoints that have nothing else to say.
type MessageResponse struct {
	Message string `json:"message"`
}

// BindJSON decodes the request body into obj. On failure it records a 400
// carrying msg, with per-field details when validation rejected the body,
// and returns false.
func BindJSON(c *gin.Context, obj interface{}, msg string) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		Fail(c, bindError(err, msg))
		return false
	}
	return true
}

func bindError(err error, msg string) error {
	if errors.Is(err, model.ErrRolesNotArray) {
		return apperrors.BadRequest(MsgRolesNotArray, err)
	}
	if fields := validator.Describe(err); fields != nil {
		return apperrors.BadRequest(msg, err).WithDetails(fields)
	}
	return apperrors.BadRequest(msg, err)
}

// ParseID reads the :id path parameter. Ids that cannot exist are reported
// as a missing resource.
func ParseID(c *gin.Context, resource string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		Fail(c, apperrors.NotFound(resource, err))
		return 0, false
	}
	return id, true
}

// Caller returns the session placed on the request by the session
// middleware. Routes using it sit behind Authenticate.
func Caller(c *gin.Context) (*session.Session, bool) {
	s, ok := session.FromContext(c.Request.Context())
	if !ok {
		Fail(c, apperrors.Unauthorized(MsgUnauthenticated))
	}
	return s, ok
}

// Fail hands err to the error middleware.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
}
