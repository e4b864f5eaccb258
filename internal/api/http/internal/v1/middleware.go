package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saludplus/backend/pkg/logger"
)

const (
	authorizationHeader = "Authorization"
	sessionHeader       = "X-Registration-Session"

	doctorCtx  = "doctorId"
	sessionCtx = "registrationSessionId"
)

// sessionIdentityMiddleware binds the request to a registration session. The
// client owns the session id; a fresh UUID starts a new draft, a known one
// resumes it.
func (h *Handler) sessionIdentityMiddleware(c *gin.Context) {
	raw := c.GetHeader(sessionHeader)
	if raw == "" {
		errorResponse(c, SessionHeaderMissingCode)
		return
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		errorResponse(c, SessionHeaderMissingCode)
		return
	}

	c.Set(sessionCtx, id.String())
}

func (h *Handler) getSessionID(c *gin.Context) (string, error) {
	id, ok := c.Get(sessionCtx)
	if !ok {
		return "", errors.New("session id not found")
	}

	return id.(string), nil
}

func (h *Handler) doctorIdentityMiddleware(c *gin.Context) {
	id, err := h.parseAuthHeader(c)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Error("parse auth header failed", zap.Error(err))
		}
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set(doctorCtx, id)
}

func (h *Handler) parseAuthHeader(c *gin.Context) (string, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return "", errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return "", errors.New("invalid auth header")
	}

	if len(headerParts[1]) == 0 {
		return "", errors.New("token is empty")
	}

	return h.tokenManager.Parse(headerParts[1])
}
