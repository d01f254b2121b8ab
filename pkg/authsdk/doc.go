/*
Package authsdk is a Go client for the accounts service, plus the wire types
the service itself writes.

# Overview

Every JSON response from the service uses one envelope:

	{"status": "success" | "fail", "message": "...", "data": ..., "error": "..."}

Every 4xx and 5xx answer is "fail"; the HTTP status tells them apart. The
error field is a diagnostic and only appears on 5xx answers.

# SDKClient vs Session

SDKClient covers the public operations:

	client := authsdk.NewSDKClient("https://accounts.example.com")

	// Sends a verification email. Nothing is stored yet.
	err := client.InitiateRegistration(ctx, "a@b.com", "Secret1")

	// Redeem the token from the emailed link.
	account, err := client.CompleteRegistration(ctx, token)

	// Log in to get a Session.
	session, err := client.Login(ctx, "a@b.com", "Secret1")

A Session carries the bearer token for the account operations:

	me, err := session.Whoami(ctx)
	err = session.ChangePassword(ctx, "Secret1", "Secret2")
	err = session.DeleteAccount(ctx)

Session tokens are not refreshed. Once ExpiresAt passes, log in again.

# Error Handling

Non-2xx responses come back as *APIError carrying the HTTP status and the
server's message:

	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		// log in again
	}
*/
package authsdk
