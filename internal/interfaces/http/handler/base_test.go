package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/seeder/internal/domain/shared"
	"github.com/erp/seeder/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleError_DomainError(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"MODULE_DISABLED", http.StatusForbidden},
		{"EMAIL_TAKEN", http.StatusConflict},
		{"CUSTOMER_NOT_FOUND", http.StatusNotFound},
		{"NO_PAYMENT_METHOD", http.StatusUnprocessableEntity},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, recorder := newTestContext(t)

			h.HandleError(c, shared.NewDomainError(tt.code, "boom"))

			assert.Equal(t, tt.status, recorder.Code)
			resp := decodeResponse(t, recorder)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "boom", resp.Error.Message)
		})
	}
}

func TestBaseHandler_HandleError_WrappedDomainError(t *testing.T) {
	h := &BaseHandler{}
	c, recorder := newTestContext(t)

	wrapped := fmt.Errorf("creating customer: %w", shared.NewDomainError("EMAIL_TAKEN", "taken"))
	h.HandleError(c, wrapped)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	resp := decodeResponse(t, recorder)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMAIL_TAKEN", resp.Error.Code)
}

func TestBaseHandler_HandleError_UnknownError(t *testing.T) {
	h := &BaseHandler{}
	c, recorder := newTestContext(t)

	h.HandleError(c, fmt.Errorf("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	resp := decodeResponse(t, recorder)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
}

func TestBaseHandler_HandleError_CarriesRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, recorder := newTestContext(t)
	c.Set(RequestIDKey, "req-42")

	h.HandleError(c, shared.NewDomainError("INVALID_LOCALE", "Locale xx_XX is not allowed"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	resp := decodeResponse(t, recorder)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}

func TestBaseHandler_Success(t *testing.T) {
	h := &BaseHandler{}
	c, recorder := newTestContext(t)

	h.Success(c, map[string]int{"count": 3})

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}
