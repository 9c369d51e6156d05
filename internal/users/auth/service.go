// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/mail"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/pointer"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer mints local tokens and reads provider ID tokens.
type TokenIssuer interface {
	// IssueLocalToken signs a token for subject valid for ttl.
	IssueLocalToken(subject sec.Subject, ttl time.Duration) (string, error)

	// DecodeExternalProfile parses a provider ID token without verifying it.
	DecodeExternalProfile(raw string) (*sec.ExternalProfile, error)
}

// Notifier queues an email without waiting for delivery.
type Notifier interface {
	Dispatch(ctx context.Context, msg mail.Message)
}

// Session is returned by every successful signup or login.
type Session struct {
	User  *User  `json:"result"`
	Token string `json:"token"`
}

// ServiceConfig holds the optional knobs of [Service].
type ServiceConfig struct {
	// IsAdminEmail promotes matching emails to admin when the identity is created.
	IsAdminEmail func(email string) bool

	// GenerateCode produces signup codes. Defaults to [sec.GenerateOTP].
	GenerateCode func() (string, error)

	// Logger defaults to [slog.Default].
	Logger *slog.Logger
}

// Service implements the signup and login use cases.
type Service struct {
	users    UserRepository
	codes    SignupCodeRepository
	states   OAuthStateRepository
	tokens   TokenIssuer
	notifier Notifier
	google   GoogleProvider
	config   ServiceConfig
}

// NewService constructs a [Service]. google may be nil when Google sign-in is
// not configured.
func NewService(
	users UserRepository,
	codes SignupCodeRepository,
	states OAuthStateRepository,
	tokens TokenIssuer,
	notifier Notifier,
	google GoogleProvider,
	config ServiceConfig,
) *Service {
	if config.IsAdminEmail == nil {
		config.IsAdminEmail = func(string) bool { return false }
	}
	if config.GenerateCode == nil {
		config.GenerateCode = sec.GenerateOTP
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Service{
		users:    users,
		codes:    codes,
		states:   states,
		tokens:   tokens,
		notifier: notifier,
		google:   google,
		config:   config,
	}
}

// # Signup Flow

/*
RequestSignupCode emails a one-time code to an unregistered address.

Description: any earlier pending code for the same email is replaced.

Parameters:
  - ctx: context.Context
  - email: string

Returns:
  - error: Conflict if the email is registered, storage errors otherwise
*/
func (service *Service) RequestSignupCode(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	_, err := service.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return apperr.Conflict(MsgUserExists)
	case !apperr.HasCode(err, "NOT_FOUND"):
		return err
	}

	code, err := service.config.GenerateCode()
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_generate_code_failed: %w", err))
	}

	if err := service.codes.Set(ctx, email, code, SignupCodeTTL); err != nil {
		return err
	}

	service.notifier.Dispatch(ctx, mail.SignupOTP(email, code, SignupCodeTTL.String()))
	return nil
}

// SignupInput holds the data required to enroll a local identity.
type SignupInput struct {
	Email           string
	OTP             string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

/*
Signup redeems an emailed code and creates a local identity.

Parameters:
  - ctx: context.Context
  - input: SignupInput

Returns:
  - *Session: The new identity and a 1h token
  - error: InvalidInput for a mismatched password or bad code, Conflict for a taken email
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	email := NormalizeEmail(input.Email)

	if input.Password != input.ConfirmPassword {
		return nil, apperr.InvalidInput(MsgPasswordMismatch)
	}

	stored, err := service.codes.Get(ctx, email)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return nil, apperr.InvalidInput(MsgInvalidOTP)
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(input.OTP))) != 1 {
		return nil, apperr.InvalidInput(MsgInvalidOTP)
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	user := &User{
		Email:        email,
		PasswordHash: pointer.To(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         service.initialRole(email),
		AuthProvider: ProviderLocal,
	}
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// A code left behind expires on its own.
	if err := service.codes.Delete(ctx, email); err != nil {
		service.config.Logger.WarnContext(ctx, "auth_signup_code_delete_failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
	}

	return service.session(user, sec.PasswordLoginTTL)
}

// # Login Flows

/*
Login authenticates a local identity by email and password.

Returns:
  - *Session: The identity and a 1h token
  - error: NotFound for an unknown email, Forbidden for a Google identity,
    InvalidInput for a wrong password
*/
func (service *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return nil, apperr.NotFoundMsg(MsgUserMissing)
		}
		return nil, err
	}

	if user.AuthProvider != ProviderLocal {
		return nil, apperr.Forbidden(MsgGoogleAccount)
	}
	if !user.HasPassword() || !sec.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperr.InvalidInput(MsgInvalidCredentials)
	}

	return service.session(user, sec.PasswordLoginTTL)
}

/*
LoginWithGoogleCredential bridges a Google ID token (from the browser SDK) to a
local session.

Description: the credential is decoded without signature verification, as
with every provider token. The identity is created on first use.

Returns:
  - *Session: The identity and a 1d token
  - error: Unauthorized if the credential cannot be decoded or has expired
*/
func (service *Service) LoginWithGoogleCredential(ctx context.Context, credential string) (*Session, error) {
	profile, err := service.tokens.DecodeExternalProfile(credential)
	if err != nil {
		return nil, apperr.Unauthorized(MsgGoogleRejected).WithCause(err)
	}
	if profile.Email == "" {
		return nil, apperr.Unauthorized(MsgGoogleRejected)
	}

	user, err := service.upsertGoogleIdentity(ctx, GoogleProfile{
		Subject:    profile.Subject,
		Email:      profile.Email,
		GivenName:  profile.GivenName,
		FamilyName: profile.FamilyName,
		Picture:    profile.Picture,
	})
	if err != nil {
		return nil, err
	}
	return service.session(user, sec.BridgedLoginTTL)
}

// GoogleAuthorization is the start of an authorization-code round trip.
type GoogleAuthorization struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

/*
GoogleAuthURL starts a PKCE authorization-code flow.

Returns:
  - *GoogleAuthorization: The consent URL and its state parameter
  - error: ServiceUnavailable when Google is not configured
*/
func (service *Service) GoogleAuthURL(ctx context.Context) (*GoogleAuthorization, error) {
	if service.google == nil {
		return nil, apperr.ServiceUnavailable(MsgGoogleDisabled)
	}

	state := uuidv7.New()
	verifier := oauth2.GenerateVerifier()
	if err := service.states.Set(ctx, state, verifier, OAuthStateTTL); err != nil {
		return nil, err
	}

	return &GoogleAuthorization{URL: service.google.AuthCodeURL(state, verifier), State: state}, nil
}

/*
GoogleCallback completes the flow started by [Service.GoogleAuthURL].

Returns:
  - *Session: The identity and a 1d token
  - error: InvalidInput for an unknown state, Unauthorized if the exchange fails
*/
func (service *Service) GoogleCallback(ctx context.Context, code, state string) (*Session, error) {
	if service.google == nil {
		return nil, apperr.ServiceUnavailable(MsgGoogleDisabled)
	}

	verifier, err := service.states.Take(ctx, state)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return nil, apperr.InvalidInput(MsgOAuthState)
		}
		return nil, err
	}

	profile, err := service.google.Exchange(ctx, code, verifier)
	if err != nil {
		return nil, apperr.Unauthorized(MsgGoogleRejected).WithCause(err)
	}

	user, err := service.upsertGoogleIdentity(ctx, *profile)
	if err != nil {
		return nil, err
	}
	return service.session(user, sec.BridgedLoginTTL)
}

// # Helpers

// upsertGoogleIdentity returns the identity for profile.Email, creating a
// password-less Google identity when none exists.
func (service *Service) upsertGoogleIdentity(ctx context.Context, profile GoogleProfile) (*User, error) {
	email := NormalizeEmail(profile.Email)

	existing, err := service.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !apperr.HasCode(err, "NOT_FOUND") {
		return nil, err
	}

	user := &User{
		Email:        email,
		FirstName:    profile.GivenName,
		LastName:     profile.FamilyName,
		ProfilePhoto: profile.Picture,
		Role:         service.initialRole(email),
		AuthProvider: ProviderGoogle,
	}
	if err := service.users.Create(ctx, user); err != nil {
		// Two first logins raced; the other one created the row.
		if apperr.HasCode(err, "CONFLICT") {
			return service.users.FindByEmail(ctx, email)
		}
		return nil, err
	}
	return user, nil
}

func (service *Service) initialRole(email string) sec.Role {
	if service.config.IsAdminEmail(email) {
		return sec.RoleAdmin
	}
	return sec.RoleCustomer
}

func (service *Service) session(user *User, ttl time.Duration) (*Session, error) {
	token, err := service.tokens.IssueLocalToken(user.Subject(), ttl)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_issue_token_failed: %w", err))
	}
	return &Session{User: user, Token: token}, nil
}
