package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/courseportal/internal/app/models/dto"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
	"github.com/yigit/courseportal/internal/pkg/validation"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantCode     dto.ErrorCode
		wantMsg      string
		wantSeverity dto.ErrorSeverity
	}{
		{
			name:         "Lecturer not found",
			err:          apperrors.NewLecturerNotFoundError("42"),
			wantStatus:   http.StatusNotFound,
			wantCode:     dto.ErrorCodeResourceNotFound,
			wantMsg:      "Lecturer not found with id: 42",
			wantSeverity: dto.ErrorSeverityWarning,
		},
		{
			name:         "Wrapped duplicate email",
			err:          fmt.Errorf("creating lecturer: %w", apperrors.NewDuplicateEmailError("a@x.edu")),
			wantStatus:   http.StatusConflict,
			wantCode:     dto.ErrorCodeResourceAlreadyExists,
			wantMsg:      "Email already exists: a@x.edu",
			wantSeverity: dto.ErrorSeverityWarning,
		},
		{
			name:         "Model validation",
			err:          &validation.Error{Fields: []validation.FieldError{{Field: "price", Message: "price must be greater than 0"}}},
			wantStatus:   http.StatusBadRequest,
			wantCode:     dto.ErrorCodeValidationFailed,
			wantMsg:      "Input validation failed",
			wantSeverity: dto.ErrorSeverityWarning,
		},
		{
			name:         "Bad request",
			err:          apperrors.NewBadRequestError("nope"),
			wantStatus:   http.StatusBadRequest,
			wantCode:     dto.ErrorCodeBadRequest,
			wantMsg:      "nope",
			wantSeverity: dto.ErrorSeverityWarning,
		},
		{
			name:         "Database failure",
			err:          fmt.Errorf("failed to save course: %w", &pgconn.PgError{Code: "57P01", Message: "terminating connection"}),
			wantStatus:   http.StatusInternalServerError,
			wantCode:     dto.ErrorCodeDatabaseError,
			wantMsg:      "A database error occurred",
			wantSeverity: dto.ErrorSeverityCritical,
		},
		{
			name:         "Unexpected error hides internals",
			err:          errors.New("connection refused"),
			wantStatus:   http.StatusInternalServerError,
			wantCode:     dto.ErrorCodeInternalServer,
			wantMsg:      "An unexpected error occurred",
			wantSeverity: dto.ErrorSeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Success || resp.Error == nil {
				t.Fatalf("unexpected response %s", rec.Body.String())
			}
			if resp.Error.Code != tt.wantCode || resp.Error.Message != tt.wantMsg {
				t.Errorf("expected %s %q, got %s %q", tt.wantCode, tt.wantMsg, resp.Error.Code, resp.Error.Message)
			}
			if resp.Error.Severity != tt.wantSeverity {
				t.Errorf("expected severity %s, got %s", tt.wantSeverity, resp.Error.Severity)
			}
			if tt.wantStatus >= http.StatusInternalServerError && resp.Error.DebugInfo != tt.err.Error() {
				t.Errorf("expected debug info %q outside release mode, got %q", tt.err.Error(), resp.Error.DebugInfo)
			}
		})
	}
}

func TestHandleAPIError_ReleaseModeOmitsDebugInfo(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, errors.New("connection refused"))

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == nil || resp.Error.DebugInfo != "" {
		t.Errorf("expected no debug info in release mode, got %s", rec.Body.String())
	}
}

func TestBindJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode dto.ErrorCode
	}{
		{name: "Valid", body: `{"title":"Optics","description":"Light and lenses.","price":12.5}`, wantOK: true},
		{name: "Rule failure", body: `{"title":"Op","description":"Light and lenses.","price":12.5}`, wantCode: dto.ErrorCodeValidationFailed},
		{name: "Truncated body", body: `{"title":`, wantCode: dto.ErrorCodeBadRequest},
		{name: "Wrong type", body: `{"title":"Optics","description":"Light and lenses.","price":"cheap"}`, wantCode: dto.ErrorCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req dto.CreateCourseRequest
			ok := BindJSON(c, &req)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v (%s)", tt.wantOK, ok, rec.Body.String())
			}
			if ok {
				return
			}

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, rec.Body.String())
			}
		})
	}
}
