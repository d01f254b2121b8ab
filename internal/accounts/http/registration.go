package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

type RegistrationHandler struct {
	Registration *service.RegistrationService
	Pages        PageRenderer
}

// HandleInitiate godoc
//
//	@Summary		Start registration
//	@Description	Validates the email and password and emails a verification link. No account exists until the link is followed.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegistrationRequest	true	"email and password"
//	@Success		200		{object}	authsdk.Response			"verification email sent"
//	@Failure		400		{object}	authsdk.Response			"invalid input or email already registered"
//	@Failure		500		{object}	authsdk.Response			"email could not be sent"
//	@Router			/v1/registrations [post].
func (h *RegistrationHandler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegistrationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.Fail(http.StatusBadRequest, msgBadBody).WriteError(w)
		return
	}

	err := h.Registration.Initiate(ctx, req.Email, req.Password)
	switch {
	case err == nil:
		writeSuccess(w, http.StatusOK, "Verification email sent successfully. Please check your email.", nil)
	case errors.Is(err, service.ErrValidation):
		authsdk.Fail(http.StatusBadRequest, validationMessage(err)).WriteError(w)
	case errors.Is(err, service.ErrAlreadyRegistered):
		authsdk.Fail(http.StatusBadRequest, "An account with this email already exists.").WriteError(w)
	default:
		log.Error("failed to initiate registration", "err", err)
		authsdk.ServerError("Failed to initiate registration. Please try again later.", err).WriteError(w)
	}
}

// HandleComplete godoc
//
//	@Summary		Complete registration
//	@Description	Redeems a registration token and creates the account.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.CompleteRegistrationRequest	true	"token from the verification link"
//	@Success		201		{object}	authsdk.Response					"account created, data is authsdk.AccountData"
//	@Failure		400		{object}	authsdk.Response					"expired or invalid token, or already registered"
//	@Failure		500		{object}	authsdk.Response					"unexpected failure"
//	@Router			/v1/registrations/complete [post].
func (h *RegistrationHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.CompleteRegistrationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.Fail(http.StatusBadRequest, msgBadBody).WriteError(w)
		return
	}

	user, err := h.Registration.Complete(ctx, req.Token)
	switch {
	case err == nil:
		writeSuccess(w, http.StatusCreated, "User account created successfully.", accountData(user))
	case errors.Is(err, service.ErrTokenExpired):
		authsdk.Fail(http.StatusBadRequest, PageLinkExpired.Message).WriteError(w)
	case errors.Is(err, service.ErrTokenInvalid):
		authsdk.Fail(http.StatusBadRequest, PageInvalidLink.Message).WriteError(w)
	case errors.Is(err, service.ErrAlreadyRegistered), errors.Is(err, service.ErrDuplicateEmail):
		authsdk.Fail(http.StatusBadRequest, PageAlreadyVerified.Message).WriteError(w)
	default:
		log.Error("failed to complete registration", "err", err)
		authsdk.ServerError("Failed to complete registration. Please try again later.", err).WriteError(w)
	}
}

// HandleLink godoc
//
//	@Summary		Follow a verification link
//	@Description	The target of the emailed link. Completes the registration and renders an HTML result page.
//	@Tags			Registration
//	@Produce		html
//	@Param			token	path		string	true	"registration token"
//	@Success		201		{string}	string	"Registration Complete page"
//	@Failure		400		{string}	string	"Link Expired, Invalid Token, Invalid Link or Account Already Verified page"
//	@Failure		500		{string}	string	"Registration Failed page"
//	@Router			/v1/registrations/{token} [get].
func (h *RegistrationHandler) HandleLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := r.PathValue("token")
	if token == "" {
		h.Pages.Render(w, http.StatusBadRequest, PageInvalidLink)
		return
	}

	_, err := h.Registration.Complete(ctx, token)
	switch {
	case err == nil:
		h.Pages.Render(w, http.StatusCreated, PageRegistrationComplete)
	case errors.Is(err, service.ErrTokenExpired):
		h.Pages.Render(w, http.StatusBadRequest, PageLinkExpired)
	case errors.Is(err, service.ErrTokenInvalid):
		h.Pages.Render(w, http.StatusBadRequest, PageInvalidToken)
	case errors.Is(err, service.ErrAlreadyRegistered), errors.Is(err, service.ErrDuplicateEmail):
		h.Pages.Render(w, http.StatusBadRequest, PageAlreadyVerified)
	case errors.Is(err, service.ErrValidation):
		// A signed token whose contents no longer validate.
		h.Pages.Render(w, http.StatusBadRequest, PageInvalidLink)
	default:
		log.Error("failed to complete registration", "err", err)
		h.Pages.Render(w, http.StatusInternalServerError, PageRegistrationFailed)
	}
}
