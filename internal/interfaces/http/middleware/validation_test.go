package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/saturday/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleLine struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

type saleRequest struct {
	Name     string     `json:"name" binding:"required,max=5"`
	Products []saleLine `json:"products" binding:"required,dive"`
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req saleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString("request_id")))
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(req.Name))
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("reports json field paths", func(t *testing.T) {
		w := post(`{"name": "much too long", "products": [{"product_id": "nope"}]}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-42", resp.Error.RequestID)
		assert.Equal(t, "name", resp.Error.Field)
		require.Len(t, resp.Error.Details, 2)
		assert.Equal(t, "Must be at most 5 characters", resp.Error.Details[0].Message)
		assert.Equal(t, "products[0].product_id", resp.Error.Details[1].Field)
		assert.Equal(t, "Invalid UUID format", resp.Error.Details[1].Message)
	})

	t.Run("missing required field", func(t *testing.T) {
		w := post(`{"products": []}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"name"`)
	})

	t.Run("valid input passes", func(t *testing.T) {
		w := post(`{"name": "Budi", "products": [{"product_id": "7c9e6679-7425-40de-944b-e07fc1f90ae7"}]}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non validation error has no details", func(t *testing.T) {
		resp := FormatValidationErrors(assert.AnError, "")
		assert.Empty(t, resp.Error.Details)
		assert.Empty(t, resp.Error.Field)
	})
}
