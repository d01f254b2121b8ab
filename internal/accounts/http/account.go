package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

const msgUserNotFound = "User not found."

// AccountHandler serves the operations on the caller's own account. Every
// route sits behind Authn.
type AccountHandler struct {
	Sessions *service.SessionService
	Users    *service.UserService
}

// HandleWhoami godoc
//
//	@Summary		Current account
//	@Description	Returns the account the session token belongs to.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.Response	"data is authsdk.AccountData"
//	@Failure		401	{object}	authsdk.Response	"not logged in"
//	@Failure		404	{object}	authsdk.Response	"account gone"
//	@Router			/v1/account [get].
func (h *AccountHandler) HandleWhoami(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		authsdk.ErrNotLoggedIn.WriteError(w)
		return
	}

	user, err := h.Users.GetUserByID(ctx, userID)
	switch {
	case err == nil:
		writeSuccess(w, http.StatusOK, "", accountData(user))
	case errors.Is(err, service.ErrUserNotFound):
		authsdk.Fail(http.StatusNotFound, msgUserNotFound).WriteError(w)
	default:
		log.Error("failed to load user", "err", err)
		authsdk.ServerError(msgServerFail, err).WriteError(w)
	}
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Description	Replaces the password after checking the old one. Existing session tokens stay valid until they expire.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ChangePasswordRequest	true	"old and new password"
//	@Success		200		{object}	authsdk.Response				"password updated"
//	@Failure		400		{object}	authsdk.Response				"missing fields or incorrect old password"
//	@Failure		401		{object}	authsdk.Response				"not logged in"
//	@Failure		404		{object}	authsdk.Response				"account gone"
//	@Failure		500		{object}	authsdk.Response				"unexpected failure"
//	@Router			/v1/account/password [put].
func (h *AccountHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		authsdk.ErrNotLoggedIn.WriteError(w)
		return
	}

	var req authsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.Fail(http.StatusBadRequest, msgBadBody).WriteError(w)
		return
	}

	err := h.Sessions.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword)

	var verr *service.ValidationError
	switch {
	case err == nil:
		writeSuccess(w, http.StatusOK, "Password updated successfully.", nil)
	case errors.As(err, &verr) && verr.Reason == service.ReasonRequired:
		authsdk.Fail(http.StatusBadRequest, "Both oldPassword and newPassword are required.").WriteError(w)
	case errors.Is(err, service.ErrValidation):
		authsdk.Fail(http.StatusBadRequest, validationMessage(err)).WriteError(w)
	case errors.Is(err, service.ErrIncorrectPassword):
		authsdk.Fail(http.StatusBadRequest, "Incorrect old password.").WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		authsdk.Fail(http.StatusNotFound, msgUserNotFound).WriteError(w)
	default:
		log.Error("failed to change password", "err", err)
		authsdk.ServerError("Failed to change password. Please try again later.", err).WriteError(w)
	}
}

// HandleDelete godoc
//
//	@Summary		Delete account
//	@Description	Deletes the caller's account. Its session tokens stop working immediately.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.Response	"account deleted"
//	@Failure		401	{object}	authsdk.Response	"not logged in"
//	@Failure		404	{object}	authsdk.Response	"account already gone"
//	@Failure		500	{object}	authsdk.Response	"unexpected failure"
//	@Router			/v1/account [delete].
func (h *AccountHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		authsdk.ErrNotLoggedIn.WriteError(w)
		return
	}

	_, err := h.Users.DeleteAccount(ctx, userID)
	switch {
	case err == nil:
		writeSuccess(w, http.StatusOK, "User account deleted successfully", nil)
	case errors.Is(err, service.ErrUserNotFound):
		authsdk.Fail(http.StatusNotFound, msgUserNotFound).WriteError(w)
	default:
		log.Error("failed to delete account", "err", err)
		authsdk.ServerError("Failed to delete account. Please try again later.", err).WriteError(w)
	}
}
