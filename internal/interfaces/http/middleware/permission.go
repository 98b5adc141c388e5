package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saturday/backend/internal/infrastructure/auth"
	"github.com/saturday/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	Logger *zap.Logger
}

// RequireRole lets the request through when the caller holds any of the roles
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig is RequireRole with logging of denials
func RequireRoleWithConfig(cfg RoleConfig, roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required").
					WithRequestID(c.GetString("request_id")))
			return
		}

		if !claims.HasAnyRole(roles...) {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Role check failed",
					zap.String("user_id", claims.UserID),
					zap.String("path", c.Request.URL.Path),
					zap.Any("required_any", roles),
				)
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "You do not have access to this resource").
					WithRequestID(c.GetString("request_id")))
			return
		}

		c.Next()
	}
}
