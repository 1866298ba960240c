package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    dto.ErrorCode
		wantMessage string
	}{
		{
			name:        "store failure hides the cause",
			err:         fmt.Errorf("%w: reading launch by id: %w", apperrors.ErrBackendUnavailable, errors.New("connection reset")),
			wantStatus:  503,
			wantCode:    dto.ErrorCodeBackendUnavailable,
			wantMessage: "Service temporarily unavailable, try again shortly",
		},
		{
			name:        "missing draft passes the guard message through",
			err:         apperrors.NewCustomError(apperrors.ErrApplicationNotFound, "Application not found. Save a draft first."),
			wantStatus:  400,
			wantCode:    dto.ErrorCodeStateGuard,
			wantMessage: "Application not found. Save a draft first.",
		},
		{
			name:        "incomplete team passes the guard message through",
			err:         apperrors.NewCustomError(apperrors.ErrTeamIncomplete, "a@b.com still need to complete their profiles before you can submit."),
			wantStatus:  400,
			wantCode:    dto.ErrorCodeStateGuard,
			wantMessage: "a@b.com still need to complete their profiles before you can submit.",
		},
		{
			name:        "unregistered caller",
			err:         apperrors.ErrNotRegistered,
			wantStatus:  403,
			wantCode:    dto.ErrorCodeNotRegistered,
			wantMessage: "Not registered for this event. Register first.",
		},
		{
			name:       "unknown resource",
			err:        apperrors.ErrLaunchNotFound,
			wantStatus: 404,
			wantCode:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:       "bad credentials",
			err:        apperrors.ErrInvalidCredentials,
			wantStatus: 401,
			wantCode:   dto.ErrorCodeInvalidCredentials,
		},
		{
			name:        "validation failure carries its message",
			err:         apperrors.NewValidationError("comment cannot be empty"),
			wantStatus:  400,
			wantCode:    dto.ErrorCodeValidationFailed,
			wantMessage: "comment cannot be empty",
		},
		{
			name:       "taken slug",
			err:        apperrors.ErrSlugTaken,
			wantStatus: 409,
			wantCode:   dto.ErrorCodeResourceAlreadyExists,
		},
		{
			name:       "unrecognized error",
			err:        errors.New("boom"),
			wantStatus: 500,
			wantCode:   dto.ErrorCodeInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			HandleAPIError(c, tt.err)

			if recorder.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, recorder.Code)
			}

			var response dto.APIResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if response.Error == nil {
				t.Fatal("expected an error detail in the envelope")
			}
			if response.Error.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, response.Error.Code)
			}
			if tt.wantMessage != "" && response.Error.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, response.Error.Message)
			}
		})
	}
}
