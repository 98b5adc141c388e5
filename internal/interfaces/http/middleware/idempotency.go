package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/infrastructure/logger"
	"github.com/saturday/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader names the client supplied retry key
const IdempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLength bounds the header so it cannot bloat the store
const maxIdempotencyKeyLength = 255

// Idempotency rejects a repeated Idempotency-Key with 409 while the first
// claim is held. Requests without the header pass through untouched. A
// request that fails (status >= 400) releases its key so the client may retry.
// Keys are scoped to the caller so two users cannot collide.
func Idempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if !cfg.Enabled || store == nil || key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewFieldErrorResponse(dto.ErrCodeInvalidInput, "Idempotency-Key is too long", IdempotencyKeyHeader).
					WithRequestID(c.GetString("request_id")))
			return
		}

		scoped := key
		if claims := GetJWTClaims(c); claims != nil {
			scoped = claims.UserID + ":" + key
		}

		ctx := c.Request.Context()
		log := logger.L(ctx)

		claimed, err := store.Claim(ctx, scoped, cfg.TTL)
		if err != nil {
			// Store outage must not block sales
			log.Error("Idempotency claim failed, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			log.Info("Duplicate request rejected", zap.String("idempotency_key", key))
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewFieldErrorResponse(dto.ErrCodeDuplicateRequest, shared.ErrDuplicateRequest.Message, IdempotencyKeyHeader).
					WithRequestID(c.GetString("request_id")))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Release(ctx, scoped); err != nil {
				log.Warn("Failed to release idempotency key", zap.String("idempotency_key", key), zap.Error(err))
			}
		}
	}
}
