// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth

import "time"

// # Authentication Constraints

const (
	// SignupCodeTTL is how long an emailed signup code stays redeemable.
	SignupCodeTTL = 10 * time.Minute

	// OAuthStateTTL is how long a Google authorization round trip may take.
	OAuthStateTTL = 10 * time.Minute

	// MinPasswordLength applies to locally registered identities.
	MinPasswordLength = 8
)

// Client-facing messages.
const (
	MsgUserExists         = "User already exists"
	MsgUserMissing        = "User doesn't exist"
	MsgInvalidCredentials = "Invalid credentials"
	MsgInvalidOTP         = "Invalid or expired OTP"
	MsgPasswordMismatch   = "Passwords don't match"
	MsgGoogleAccount      = "This account was created with Google. Please sign in with Google."
	MsgGoogleDisabled     = "Google sign-in is not configured"
	MsgGoogleRejected     = "Google credential is invalid or expired"
	MsgOAuthState         = "OAuth state is invalid or expired"
)
