package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/mock"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/service"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

const testVersion = "v1.2.3-test"

// newTestRouter wires the full route table around a mocked account service.
// Requests run through the real middleware chain, so tests exercise the
// trace-id, logging and authentication gates exactly as production does.
func newTestRouter(t *testing.T) (*chi.Mux, *mock.MockAccountService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	account := mock.NewMockAccountService(ctrl)

	h := NewHandler(&service.Services{Account: account}, testVersion, logger.Nop())

	return h.Init(), account
}

func sessionIdentity() models.Identity {
	return models.Identity{
		ID:          "id-1",
		Email:       "farmer@example.com",
		Name:        "Test Farmer",
		Role:        models.RoleFarmer,
		PublicKey:   "02abc123",
		AuthMethods: []string{models.AuthMethodPassword},
		Version:     1,
	}
}

func TestGetServerVersion(t *testing.T) {
	// Arrange
	router, _ := newTestRouter(t)
	request := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, testVersion, recorder.Body.String())
}

// TestCheckHTTPMethod checks that a known route hit with an unregistered
// method answers 404 rather than chi's default 405, hiding the route.
func TestCheckHTTPMethod(t *testing.T) {
	// Arrange
	router, _ := newTestRouter(t)
	request := httptest.NewRequest(http.MethodDelete, "/api/version", nil)
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
