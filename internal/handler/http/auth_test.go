package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/service"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/store"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

func jsonBody(t *testing.T, payload any) *bytes.Buffer {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	return bytes.NewBuffer(body)
}

func TestRegister(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	req := models.RegisterRequest{
		Email:    "farmer@example.com",
		Name:     "Test Farmer",
		Role:     models.RoleFarmer,
		Password: "correct horse battery",
	}
	result := models.AuthResult{
		Identity: sessionIdentity(),
		Token:    "session-token",
		Mnemonic: "abandon ability able",
	}
	account.EXPECT().Register(gomock.Any(), req).Return(result, nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, req))
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "Bearer session-token", recorder.Header().Get("Authorization"))

	var got models.AuthResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Equal(t, result, got)
}

func TestRegister_Failures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "malformed json",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid data",
			body:       `{"email":"x","password":"short"}`,
			serviceErr: service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"farmer@example.com","name":"f","role":"FARMER","password":"password123"}`,
			serviceErr: store.ErrEmailAlreadyExists,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "backend failure",
			body:       `{"email":"farmer@example.com","name":"f","role":"FARMER","password":"password123"}`,
			serviceErr: assert.AnError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, account := newTestRouter(t)
			if tt.serviceErr != nil {
				account.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(models.AuthResult{}, tt.serviceErr)
			}

			request := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()

			// Act
			router.ServeHTTP(recorder, request)

			// Assert
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	result := models.AuthResult{Identity: sessionIdentity(), Token: "session-token"}
	account.EXPECT().
		Login(gomock.Any(), "farmer@example.com", "correct horse battery").
		Return(result, nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		jsonBody(t, models.LoginRequest{Email: "farmer@example.com", Password: "correct horse battery"}))
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Bearer session-token", recorder.Header().Get("Authorization"))

	var got models.AuthResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Empty(t, got.Mnemonic)
	assert.Equal(t, result.Identity.ID, got.Identity.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	account.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.AuthResult{}, service.ErrInvalidCredentials)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		jsonBody(t, models.LoginRequest{Email: "farmer@example.com", Password: "wrong"}))
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), service.ErrInvalidCredentials.Error())
	assert.Empty(t, recorder.Header().Get("Authorization"))
}

func TestWalletConnect(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	identity := sessionIdentity()
	identity.AuthMethods = []string{models.AuthMethodWallet}
	account.EXPECT().
		WalletConnect(gomock.Any(), "02abc123").
		Return(models.AuthResult{Identity: identity, Token: "session-token"}, nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/wallet-connect",
		jsonBody(t, models.WalletConnectRequest{PublicKey: "02abc123"}))
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Bearer session-token", recorder.Header().Get("Authorization"))
}

func TestWalletConnect_MalformedKey(t *testing.T) {
	// Arrange
	router, account := newTestRouter(t)
	account.EXPECT().
		WalletConnect(gomock.Any(), gomock.Any()).
		Return(models.AuthResult{}, service.ErrInvalidDataProvided)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/wallet-connect",
		jsonBody(t, models.WalletConnectRequest{PublicKey: "zz"}))
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
