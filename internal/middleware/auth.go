package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/proposal-board-api/internal/constants"
)

// LoadActor copies the operator name from the session into the context.
// Requests without a session act as the default actor.
func LoadActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := constants.DefaultActor
		session := sessions.Default(c)
		if v, ok := session.Get(constants.SessionKeyActor).(string); ok && v != "" {
			actor = v
		}

		c.Set(constants.ContextKeyActor, actor)
		c.Next()
	}
}

// GetActor retrieves the current actor from context
func GetActor(c *gin.Context) string {
	if actor := c.GetString(constants.ContextKeyActor); actor != "" {
		return actor
	}
	return constants.DefaultActor
}
