/*
Package authsdk provides a client SDK for the tenant access service.

# Overview

The service grants users access to tenants through invitations. An admin
issues an invitation, the invitee accepts it once and receives generated
credentials, and from then on signs in with those credentials. Admins can
revoke, extend and audit that access.

# SDKClient vs Session

  - SDKClient: public operations (health, accepting invitations, bootstrap,
    sign-in)
  - Session: operations that need a session token

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Redeem an invitation token received by email
	creds, err := client.AcceptInvitation(ctx, token)

	// Sign in, optionally scoped to a tenant
	session, err := client.SignIn(ctx, creds.Email, creds.Password, "myapp")

	// Check the token is still good
	info, err := session.Verify(ctx)

Admin sessions (users with the admin role) can manage invitations, tenants and
users:

	resp, err := session.IssueInvitation(ctx, authsdk.IssueInvitationRequest{
		Email:   "new.user@example.com",
		Tenants: []string{"myapp"},
	})

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP status,
the machine-readable code and, for validation failures, per-field details:

	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == authsdk.ErrorCodeInvalidInvitation {
		// unknown, used, revoked or expired token
	}

# Thread Safety

SDKClient and Session are safe for concurrent use.
*/
package authsdk
