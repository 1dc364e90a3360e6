package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/service"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/token"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// TestRequestPasswordReset checks that the endpoint answers 202 for any
// well-formed request, registered email or not.
func TestRequestPasswordReset(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	account.EXPECT().
		RequestPasswordReset(gomock.Any(), "ghost@example.com").
		Return(nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/password-reset",
		jsonBody(t, models.ResetRequest{Email: "ghost@example.com"}))
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusAccepted, recorder.Code)
}

func TestConfirmPasswordReset(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	result := models.AuthResult{
		Identity: sessionIdentity(),
		Token:    "session-token",
		Mnemonic: "abandon ability able",
	}
	account.EXPECT().
		ResetPassword(gomock.Any(), "reset-token", "brand new password").
		Return(result, nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/password-reset/confirm",
		jsonBody(t, models.ResetConfirmRequest{Token: "reset-token", NewPassword: "brand new password"}))
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Bearer session-token", recorder.Header().Get("Authorization"))
	assert.Contains(t, recorder.Body.String(), "abandon ability able")
}

// TestConfirmPasswordReset_TokenFailures checks the status mapping for the
// confirm endpoint: superseded tokens answer 410 so clients know to request
// a fresh one, while cryptographically invalid tokens answer 401.
func TestConfirmPasswordReset_TokenFailures(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "superseded token",
			serviceErr: service.ErrTokenSuperseded,
			wantStatus: http.StatusGone,
		},
		{
			name:       "expired token",
			serviceErr: token.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "tampered token",
			serviceErr: token.ErrSignatureInvalid,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "weak password",
			serviceErr: service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "backend failure",
			serviceErr: assert.AnError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, account := newTestRouter(t)
			account.EXPECT().
				ResetPassword(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(models.AuthResult{}, tt.serviceErr)

			request := httptest.NewRequest(http.MethodPost, "/api/auth/password-reset/confirm",
				jsonBody(t, models.ResetConfirmRequest{Token: "t", NewPassword: "p"}))
			recorder := httptest.NewRecorder()

			// Act
			router.ServeHTTP(recorder, request)

			// Assert
			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				// Internal detail never reaches the caller.
				assert.NotContains(t, recorder.Body.String(), tt.serviceErr.Error())
			}
		})
	}
}

func TestRequestEmailVerification(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	identity := sessionIdentity()
	account.EXPECT().
		VerifySession(gomock.Any(), "good-token").
		Return(identity, models.Claims{}, nil)
	account.EXPECT().
		RequestEmailVerification(gomock.Any(), identity.ID).
		Return(nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/verify-email", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusAccepted, recorder.Code)
}

func TestRequestEmailVerification_AlreadyVerified(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	identity := sessionIdentity()
	account.EXPECT().
		VerifySession(gomock.Any(), "good-token").
		Return(identity, models.Claims{}, nil)
	account.EXPECT().
		RequestEmailVerification(gomock.Any(), identity.ID).
		Return(service.ErrEmailAlreadyVerified)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/verify-email", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestConfirmEmailVerification(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	identity := sessionIdentity()
	identity.EmailVerified = true
	account.EXPECT().
		VerifyEmail(gomock.Any(), "verify-token").
		Return(identity, nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/verify-email/confirm",
		jsonBody(t, models.VerifyConfirmRequest{Token: "verify-token"}))
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"email_verified":true`)
}

func TestConfirmEmailVerification_Superseded(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	account.EXPECT().
		VerifyEmail(gomock.Any(), "older-token").
		Return(models.Identity{}, service.ErrTokenSuperseded)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/verify-email/confirm",
		jsonBody(t, models.VerifyConfirmRequest{Token: "older-token"}))
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusGone, recorder.Code)
	assert.Contains(t, recorder.Body.String(), service.ErrTokenSuperseded.Error())
}
