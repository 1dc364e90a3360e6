package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/crypto"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/service"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/store"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

func TestChangePassword(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	identity := sessionIdentity()
	account.EXPECT().
		VerifySession(gomock.Any(), "good-token").
		Return(identity, models.Claims{}, nil)

	rotated := identity
	rotated.Version = 2
	account.EXPECT().
		ChangePassword(gomock.Any(), identity.ID, "old password 1", "new password 2").
		Return(rotated, nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/change-password",
		jsonBody(t, models.ChangePasswordRequest{OldPassword: "old password 1", NewPassword: "new password 2"}))
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), identity.ID)
}

func TestChangePassword_Failures(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "wrong old password",
			serviceErr: service.ErrInvalidOldPassword,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "decryption failed",
			serviceErr: crypto.ErrDecryptionFailed,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wallet-only account",
			serviceErr: service.ErrPasswordAuthDisabled,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "concurrent rotation",
			serviceErr: store.ErrVersionConflict,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "weak new password",
			serviceErr: service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, account := newTestRouter(t)
			identity := sessionIdentity()
			account.EXPECT().
				VerifySession(gomock.Any(), "good-token").
				Return(identity, models.Claims{}, nil)
			account.EXPECT().
				ChangePassword(gomock.Any(), identity.ID, gomock.Any(), gomock.Any()).
				Return(models.Identity{}, tt.serviceErr)

			request := httptest.NewRequest(http.MethodPost, "/api/auth/change-password",
				jsonBody(t, models.ChangePasswordRequest{OldPassword: "old", NewPassword: "new password 2"}))
			request.Header.Set("Authorization", "Bearer good-token")
			recorder := httptest.NewRecorder()

			// Act
			router.ServeHTTP(recorder, request)

			// Assert
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
