package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

const (
	msgBadBody    = "Request body must be a single JSON object."
	msgBadEmail   = "Please provide a valid email address."
	msgServerFail = "Something went wrong! Please try again later."
)

func writeSuccess(w http.ResponseWriter, code int, message string, data any) {
	httpx.WriteJSON(w, code, authsdk.Response{
		Status:  authsdk.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// validationMessage words a ValidationError for the response body.
func validationMessage(err error) string {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	if verr.Field == "email" && verr.Reason == service.ReasonEmail {
		return msgBadEmail
	}
	return fmt.Sprintf("%s %s.", verr.Field, verr.Reason)
}

func accountData(u domain.User) authsdk.AccountData {
	return authsdk.AccountData{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
