package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kerem/schoolhub/internal/pkg/apperrors"
)

func handleError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "student not found", err: apperrors.ErrStudentNotFound, wantCode: http.StatusNotFound, wantBody: "RES_001"},
		{name: "payment not found", err: apperrors.ErrPaymentNotFound, wantCode: http.StatusNotFound, wantBody: "RES_001"},
		{name: "duplicate month", err: apperrors.ErrDuplicateMonth, wantCode: http.StatusConflict, wantBody: "PAY_001"},
		{name: "class exists", err: apperrors.ErrClassAlreadyExists, wantCode: http.StatusConflict, wantBody: "RES_002"},
		{name: "bad credentials", err: apperrors.ErrInvalidCredentials, wantCode: http.StatusUnauthorized, wantBody: "AUTH_001"},
		{name: "expired token", err: apperrors.ErrTokenExpired, wantCode: http.StatusUnauthorized, wantBody: "AUTH_003"},
		{name: "forbidden", err: apperrors.ErrPermissionDenied, wantCode: http.StatusForbidden, wantBody: "AUTH_005"},
		{name: "invalid month", err: apperrors.ErrInvalidMonth, wantCode: http.StatusBadRequest, wantBody: "VAL_001"},
		{name: "bad request with message", err: apperrors.NewBadRequestError("class name cannot be empty"), wantCode: http.StatusBadRequest, wantBody: "class name cannot be empty"},
		{name: "unknown error", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantBody: "SRV_001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := handleError(tt.err)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandleAPIErrorDuplicateMonthField(t *testing.T) {
	w := handleError(apperrors.ErrDuplicateMonth)
	assert.Contains(t, w.Body.String(), `"field":"month"`)
}
