package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/crypto"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/service"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/store"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/utils"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		log.Error().Msg("no identity in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, identity.Sanitized(), http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.Account.ChangePassword(ctx, identity.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidOldPassword),
			errors.Is(err, crypto.ErrDecryptionFailed):
			log.Warn().Str("id", identity.ID).Msg("credential rotation rejected")
			http.Error(w, service.ErrInvalidOldPassword.Error(), http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrPasswordAuthDisabled):
			log.Warn().Str("id", identity.ID).Msg("password auth is not enabled")
			http.Error(w, service.ErrPasswordAuthDisabled.Error(), http.StatusConflict)
			return
		case errors.Is(err, store.ErrVersionConflict):
			log.Warn().Str("id", identity.ID).Msg("concurrent credential update")
			http.Error(w, "account was modified concurrently, retry", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during credential rotation")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Info().Str("id", updated.ID).Msg("credentials rotated")

	utils.WriteJSON(w, updated.Sanitized(), http.StatusOK)
}
