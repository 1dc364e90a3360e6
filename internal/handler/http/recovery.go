package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/service"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/utils"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// requestPasswordReset always answers 202 for well-formed requests so the
// endpoint cannot be used to probe which emails are registered.
func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.Account.RequestPasswordReset(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during reset request")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.Account.ResetPassword(ctx, req.Token, req.NewPassword)
	if err != nil {
		h.writeErrorStatus(w, r, err, "password reset failed")
		return
	}

	log.Info().Str("id", result.Identity.ID).Msg("password reset completed")

	setBearer(w, result.Token)
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) requestEmailVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.Account.RequestEmailVerification(ctx, identity.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyVerified):
			log.Warn().Str("id", identity.ID).Msg("email is already verified")
			http.Error(w, service.ErrEmailAlreadyVerified.Error(), http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during verification request")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) confirmEmailVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	identity, err := h.services.Account.VerifyEmail(ctx, req.Token)
	if err != nil {
		h.writeErrorStatus(w, r, err, "email verification failed")
		return
	}

	log.Info().Str("id", identity.ID).Msg("email verified")

	utils.WriteJSON(w, identity.Sanitized(), http.StatusOK)
}

// writeErrorStatus maps err through errorStatusMap. Client-caused failures
// echo the sentinel message so callers can tell "request a new token" apart
// from "token is garbage"; everything else is reported opaquely.
func (h *Handler) writeErrorStatus(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Warn().Err(err).Msg(msg)
	http.Error(w, err.Error(), status)
}
