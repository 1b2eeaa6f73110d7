package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

const actorContextKey = "actor"

// actorMiddleware resolves the acting user from the identity headers set by
// the upstream gateway. Requests without a user ID are rejected.
func actorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing X-User-ID header",
			})
			return
		}

		actor := entity.Actor{
			ID:           userID,
			OrgID:        strings.TrimSpace(c.GetHeader("X-Org-ID")),
			PodeAprovar:  headerBool(c, "X-User-Pode-Aprovar"),
			PodeVerTodas: headerBool(c, "X-User-Pode-Ver-Todas"),
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

func headerBool(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.GetHeader(name)))
	if err != nil {
		return false
	}
	return v
}

// actorFrom retrieves the actor placed by actorMiddleware
func actorFrom(c *gin.Context) entity.Actor {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(entity.Actor); ok {
			return actor
		}
	}
	return entity.Actor{}
}
