package http

import (
	"errors"
	"net/http"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/crypto"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/service"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/store"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/token"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrInvalidCredentials:   http.StatusUnauthorized,
	service.ErrInvalidOldPassword:   http.StatusUnauthorized,
	service.ErrPasswordAuthDisabled: http.StatusConflict,
	service.ErrEmailAlreadyVerified: http.StatusConflict,
	service.ErrTokenSuperseded:      http.StatusGone,

	crypto.ErrDecryptionFailed: http.StatusUnauthorized,

	token.ErrTokenExpired:       http.StatusUnauthorized,
	token.ErrTokenMalformed:     http.StatusUnauthorized,
	token.ErrSignatureInvalid:   http.StatusUnauthorized,
	token.ErrPurposeMismatch:    http.StatusUnauthorized,
	token.ErrUnsupportedPurpose: http.StatusInternalServerError,

	store.ErrIdentityNotFound:   http.StatusNotFound,
	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrWalletAlreadyBound: http.StatusConflict,
	store.ErrVersionConflict:    http.StatusConflict,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
