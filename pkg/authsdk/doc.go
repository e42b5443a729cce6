/*
Package authsdk provides the wire types and a Go client for the accounts
authentication service.

# Overview

The package is shared by both sides of the HTTP API. The server uses the
request types (and their Validate methods), the response types and the
APIError values to write responses. Clients use SDKClient and Session to call
the service.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (register, login, password reset,
    health checks, public profiles).
  - Session: operations that need a logged-in user. It carries the session
    token returned by login and sends it as a Bearer token.

Typical flow:

	client := authsdk.NewSDKClient("https://accounts.example.com")

	user, err := client.Register(ctx, authsdk.RegisterRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct horse battery",
	})

	session, err := client.Login(ctx, authsdk.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse battery",
		Remember: true,
	})

	// The token arrives by mail.
	outcome, err := session.Confirm(ctx, token)

	me, err := session.Me(ctx)

# Errors

Every non-2xx response is returned as *APIError. Validation failures carry
the per-field messages in Details:

	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == authsdk.ErrorCodeValidation {
		fmt.Println(apiErr.Details["email"])
	}

Unconfirmed accounts get ErrorCodeConfirmationRequired from every protected
endpoint until they confirm.
*/
package authsdk
