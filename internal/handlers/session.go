package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/proposal-board-api/internal/constants"
	apierrors "github.com/yukikurage/proposal-board-api/internal/errors"
	"github.com/yukikurage/proposal-board-api/internal/middleware"
)

// SessionHandler names the operator behind a browser session. The name is
// stamped as createdBy and recorded on cascades; it is not a credential.
type SessionHandler struct{}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// GetSession returns the current actor.
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actor": middleware.GetActor(c)})
}

// CreateSession stores the operator name in the session.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	type CreateSessionRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Name is required")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		apierrors.BadRequest(c, "Name is required")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyActor, name)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"actor": name})
}

// DeleteSession forgets the operator name.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to clear session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"actor": constants.DefaultActor})
}
