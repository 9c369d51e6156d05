// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Package sec provides password hashing, one-time codes and bearer token handling.
//
// Two token kinds reach the API. Local tokens are HS256 tokens minted by
// [TokenService.IssueLocalToken] and fully verified. External tokens are
// issued by an upstream identity provider (Google) and are only decoded: their
// signature is NOT checked here. That trust boundary is visible in the type
// returned by [TokenService.Resolve]: callers get an [UnverifiedExternalToken]
// and must treat its subject accordingly.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LocalTokenMaxLen is the classification threshold: tokens shorter than this
// are treated as local, anything longer as provider issued.
const LocalTokenMaxLen = 500

// Call-site token lifetimes.
const (
	PasswordLoginTTL = time.Hour
	BridgedLoginTTL  = 24 * time.Hour
)

var (
	// ErrInvalidToken reports a malformed token or a signature mismatch.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrExpiredToken reports a token used at or after its expiry.
	ErrExpiredToken = errors.New("sec: token expired")
)

// # Token Kinds

// TokenKind names the variant of a resolved [Token].
type TokenKind string

const (
	KindLocal              TokenKind = "local"
	KindUnverifiedExternal TokenKind = "unverified_external"
)

// Token is the result of [TokenService.Resolve]. It is a closed union of
// [LocalToken] and [UnverifiedExternalToken].
type Token interface {
	// IdentityID is the identity the token speaks for.
	IdentityID() string
	Kind() TokenKind
	sealed()
}

// LocalToken is a token minted and verified by this service.
type LocalToken struct {
	UserID    string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

func (t LocalToken) IdentityID() string { return t.UserID }
func (t LocalToken) Kind() TokenKind    { return KindLocal }
func (LocalToken) sealed()              {}

// UnverifiedExternalToken is a provider token that was decoded but never
// authenticated locally. Its Subject is the provider's `sub` claim.
type UnverifiedExternalToken struct {
	Subject   string
	Email     string
	Issuer    string
	ExpiresAt time.Time
}

func (t UnverifiedExternalToken) IdentityID() string { return t.Subject }
func (t UnverifiedExternalToken) Kind() TokenKind    { return KindUnverifiedExternal }
func (UnverifiedExternalToken) sealed()              {}

// # Claims

// LocalClaims is the payload of a locally issued token.
type LocalClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// ExternalProfile is the subset of a provider ID token used to bridge a login.
type ExternalProfile struct {
	jwt.RegisteredClaims

	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// Subject is what a token is issued for.
type Subject struct {
	UserID string
	Email  string
	Role   Role
}

// # Token Service

// TokenService issues local tokens and resolves bearer tokens of either kind.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option configures a [TokenService].
type Option func(*TokenService)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret, issuer string, opts ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// IssueLocalToken signs {id, email, role} with an expiry of now+ttl.
func (s *TokenService) IssueLocalToken(subject Subject, ttl time.Duration) (string, error) {
	issuedAt := s.now()
	claims := LocalClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		UserID: subject.UserID,
		Email:  subject.Email,
		Role:   subject.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signed, nil
}

// Resolve classifies raw by length and returns the matching [Token] variant.
//
// Failures are always [ErrInvalidToken] or [ErrExpiredToken].
func (s *TokenService) Resolve(raw string) (Token, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}
	if len(raw) < LocalTokenMaxLen {
		return s.resolveLocal(raw)
	}
	return s.resolveExternal(raw)
}

func (s *TokenService) resolveLocal(raw string) (Token, error) {
	claims := &LocalClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	// The library accepts a token during its final second; expiry is inclusive here.
	expiresAt := claims.ExpiresAt.Time
	if !s.now().Before(expiresAt) {
		return nil, ErrExpiredToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return LocalToken{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *TokenService) resolveExternal(raw string) (Token, error) {
	profile, err := s.DecodeExternalProfile(raw)
	if err != nil {
		return nil, err
	}

	token := UnverifiedExternalToken{
		Subject: profile.Subject,
		Email:   profile.Email,
		Issuer:  profile.Issuer,
	}
	if profile.ExpiresAt != nil {
		token.ExpiresAt = profile.ExpiresAt.Time
	}
	return token, nil
}

// DecodeExternalProfile parses a provider token WITHOUT verifying its signature.
//
// It rejects tokens without a `sub` claim and tokens whose `exp`, when present,
// has passed.
func (s *TokenService) DecodeExternalProfile(raw string) (*ExternalProfile, error) {
	profile := &ExternalProfile{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, profile); err != nil {
		return nil, ErrInvalidToken
	}
	if profile.Subject == "" {
		return nil, ErrInvalidToken
	}
	if profile.ExpiresAt != nil && !s.now().Before(profile.ExpiresAt.Time) {
		return nil, ErrExpiredToken
	}
	return profile, nil
}
