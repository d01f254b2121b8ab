package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

type SessionHandler struct {
	Sessions *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a session token. Unknown emails and wrong passwords get the same answer.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"email and password"
//	@Success		200		{object}	authsdk.Response		"data is authsdk.SessionData"
//	@Failure		400		{object}	authsdk.Response		"missing fields or incorrect email or password"
//	@Failure		500		{object}	authsdk.Response		"unexpected failure"
//	@Router			/v1/sessions [post].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.Fail(http.StatusBadRequest, msgBadBody).WriteError(w)
		return
	}

	session, err := h.Sessions.Login(ctx, req.Email, req.Password)
	switch {
	case err == nil:
		writeSuccess(w, http.StatusOK, "Logged in successfully.", authsdk.SessionData{
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt,
		})
	case errors.Is(err, service.ErrValidation):
		authsdk.Fail(http.StatusBadRequest, "email and password fields are mandatory").WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.Fail(http.StatusBadRequest, "Incorrect email or password").WriteError(w)
	default:
		log.Error("login failed", "err", err)
		authsdk.ServerError(msgServerFail, err).WriteError(w)
	}
}
