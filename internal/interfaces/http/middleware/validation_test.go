package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/medstock/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleValidationError(t *testing.T) {
	type vendorBody struct {
		VendorName string `json:"vendor_name" binding:"required"`
		Email      string `json:"email" binding:"omitempty,email"`
		Rating     int    `json:"rating" binding:"omitempty,min=1,max=5"`
	}

	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var body vendorBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(body string) (*httptest.ResponseRecorder, dto.Response) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp dto.Response
		if w.Code != http.StatusOK {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		}
		return w, resp
	}

	t.Run("details are keyed by json name", func(t *testing.T) {
		w, resp := post(`{"email":"nope","rating":9}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Tag
		}
		assert.Equal(t, map[string]string{"vendor_name": "required", "email": "email", "rating": "max"}, fields)
	})

	t.Run("type mismatch names the field", func(t *testing.T) {
		w, resp := post(`{"vendor_name":"Acme","rating":"five"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "rating", resp.Error.Details[0].Field)
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		w, resp := post(`{"vendor_name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})

	t.Run("valid body passes", func(t *testing.T) {
		w, _ := post(`{"vendor_name":"Acme","rating":4}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
