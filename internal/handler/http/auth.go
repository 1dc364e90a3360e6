package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/service"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/store"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/utils"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.Account.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already registered")
			http.Error(w, "email already registered", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	setBearer(w, result.Token)
	utils.WriteJSON(w, result, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.Account.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Warn().Msg("login rejected")
			http.Error(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("id", result.Identity.ID).Msg("user successfully logged in")

	setBearer(w, result.Token)
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) walletConnect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.WalletConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.Account.WalletConnect(ctx, req.PublicKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid wallet public key")
			http.Error(w, "invalid wallet public key", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during wallet connect")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("id", result.Identity.ID).Msg("wallet connected")

	setBearer(w, result.Token)
	utils.WriteJSON(w, result, http.StatusOK)
}

func setBearer(w http.ResponseWriter, token string) {
	w.Header().Set("Authorization", "Bearer "+token)
}
