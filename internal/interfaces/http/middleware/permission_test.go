package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saturday/backend/internal/infrastructure/auth"
	"github.com/saturday/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	router := newAuthRouter(svc, RequireRole(auth.RoleManager))

	t.Run("manager passes", func(t *testing.T) {
		token, _ := issueToken(t, svc, auth.RoleManager)
		w := serve(router, http.MethodGet, "/test", map[string]string{AuthHeaderKey: BearerPrefix + token})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("keeper is forbidden", func(t *testing.T) {
		token, _ := issueToken(t, svc, auth.RoleKeeper)
		w := serve(router, http.MethodGet, "/test", map[string]string{AuthHeaderKey: BearerPrefix + token})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrCodeForbidden, errorCode(t, w.Body.Bytes()))
	})

	t.Run("no roles is forbidden", func(t *testing.T) {
		token, _ := issueToken(t, svc)
		w := serve(router, http.MethodGet, "/test", map[string]string{AuthHeaderKey: BearerPrefix + token})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("without JWTAuth is unauthorized", func(t *testing.T) {
		bare := gin.New()
		bare.GET("/test", RequireRole(auth.RoleManager), func(c *gin.Context) { c.Status(http.StatusOK) })
		w := serve(bare, http.MethodGet, "/test", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
