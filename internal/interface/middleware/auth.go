package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	repo "github.com/freshbasket/api/internal/domain/repository"
	"github.com/freshbasket/api/pkg/helpers"
	"github.com/freshbasket/api/pkg/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserIDKey    = "userID"
	CtxUserRoleKey  = "userRole"
	CtxUserNameKey  = "userName"
	CtxUserEmailKey = "userEmail"
)

// Auth resolves an `Authorization: Bearer <token>` header into an
// authenticated identity. The token's subject is re-checked against the
// credential store so tokens for deleted accounts stop working; the safe
// identity (never the password hash) is attached to the request context.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || u == nil {
			response.AbortError(c, http.StatusUnauthorized, "user not found")
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserRoleKey, u.Role)
		c.Set(CtxUserNameKey, u.Name)
		c.Set(CtxUserEmailKey, u.Email)
		c.Next()
	}
}

// RequireRoles gates a route to the given roles. Must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(CtxUserRoleKey)
		if _, ok := allowed[role]; !ok {
			response.AbortError(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
