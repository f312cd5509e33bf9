package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAppError_Error(t *testing.T) {
	err := NewNotFound("patient not found")
	if err.Error() != "patient not found" {
		t.Errorf("Error() = %q, expected %q", err.Error(), "patient not found")
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   int
	}{
		{"bad request", NewBadRequest("x"), http.StatusBadRequest, 400},
		{"unauthorized", NewUnauthorized("x"), http.StatusUnauthorized, 401},
		{"forbidden", NewForbidden("x"), http.StatusForbidden, 403},
		{"not found", NewNotFound("x"), http.StatusNotFound, 404},
		{"conflict", NewConflict("x"), http.StatusConflict, 409},
		{"unprocessable", NewUnprocessable("x"), http.StatusUnprocessableEntity, 422},
		{"server error", NewServerError("x"), http.StatusInternalServerError, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, expected %d", tt.err.HTTPStatus, tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, expected %d", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, map[string]string{"key": "overview"})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", w.Code)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Code != 0 {
		t.Errorf("code = %d, expected 0", resp.Code)
	}
	if resp.Message != "ok" {
		t.Errorf("message = %q, expected %q", resp.Message, "ok")
	}
}

func TestError_AppError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, NewForbidden("not your record"))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, expected 403", w.Code)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Code != 403 {
		t.Errorf("code = %d, expected 403", resp.Code)
	}
	if resp.Message != "not your record" {
		t.Errorf("message = %q, expected %q", resp.Message, "not your record")
	}
}

func TestError_GenericError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, json.Unmarshal([]byte("{"), &struct{}{}))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", w.Code)
	}
}
