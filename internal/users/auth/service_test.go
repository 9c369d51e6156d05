// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/mail"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth/authtest"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/pointer"
)

// --- Fakes ---

type recordingNotifier struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (n *recordingNotifier) Dispatch(_ context.Context, msg mail.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *recordingNotifier) sent() []mail.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]mail.Message(nil), n.messages...)
}

type fakeGoogle struct {
	profile      *auth.GoogleProfile
	err          error
	lastVerifier string
}

func (g *fakeGoogle) AuthCodeURL(state, verifier string) string {
	return "https://accounts.example/auth?state=" + state
}

func (g *fakeGoogle) Exchange(_ context.Context, code, verifier string) (*auth.GoogleProfile, error) {
	g.lastVerifier = verifier
	return g.profile, g.err
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *auth.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *auth.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepository) DeleteMany(ctx context.Context, role sec.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role sec.Role) ([]*auth.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]*auth.User), args.Error(1)
}

// --- Test Helpers ---

type harness struct {
	service  *auth.Service
	users    *authtest.Users
	tokens   *sec.TokenService
	notifier *recordingNotifier
	google   *fakeGoogle
	redis    *miniredis.Miniredis
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tokens, err := sec.NewTokenService("test-secret", "test")
	require.NoError(t, err)

	h := &harness{
		users:    authtest.NewUsers(),
		tokens:   tokens,
		notifier: &recordingNotifier{},
		google:   &fakeGoogle{},
		redis:    server,
	}
	h.service = auth.NewService(
		h.users,
		auth.NewSignupCodeRepository(client),
		auth.NewOAuthStateRepository(client),
		tokens,
		h.notifier,
		h.google,
		auth.ServiceConfig{
			IsAdminEmail: func(email string) bool { return email == "root@fashionfiesta.app" },
			GenerateCode: func() (string, error) { return "123456", nil },
		},
	)
	return h
}

func (h *harness) seedLocal(t *testing.T, email, password string) string {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	return h.users.Seed(&auth.User{
		Email:        email,
		PasswordHash: &hash,
		FirstName:    "Mira",
		Role:         sec.RoleCustomer,
		AuthProvider: auth.ProviderLocal,
	})
}

func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

// --- Login ---

/*
TestLogin_Outcomes covers every branch of password login.
*/
func TestLogin_Outcomes(t *testing.T) {
	h := newHarness(t)
	userID := h.seedLocal(t, "mira@example.com", "correct-horse")
	h.users.Seed(&auth.User{
		Email:        "gia@example.com",
		FirstName:    "Gia",
		Role:         sec.RoleCustomer,
		AuthProvider: auth.ProviderGoogle,
	})

	t.Run("wrong password is 400", func(t *testing.T) {
		_, err := h.service.Login(context.Background(), "mira@example.com", "wrong")
		assertAppError(t, err, "INVALID_INPUT", auth.MsgInvalidCredentials)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	t.Run("google identity is 403", func(t *testing.T) {
		_, err := h.service.Login(context.Background(), "gia@example.com", "anything")
		assertAppError(t, err, "FORBIDDEN", auth.MsgGoogleAccount)
		assert.Equal(t, 403, apperr.As(err).HTTPStatus)
	})

	t.Run("unknown email is 404", func(t *testing.T) {
		_, err := h.service.Login(context.Background(), "nobody@example.com", "x")
		assertAppError(t, err, "NOT_FOUND", auth.MsgUserMissing)
	})

	t.Run("success issues a one hour local token", func(t *testing.T) {
		session, err := h.service.Login(context.Background(), "MIRA@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, userID, session.User.ID)

		token, err := h.tokens.Resolve(session.Token)
		require.NoError(t, err)
		local, ok := token.(sec.LocalToken)
		require.True(t, ok)
		assert.Equal(t, userID, local.UserID)
		assert.WithinDuration(t, time.Now().Add(time.Hour), local.ExpiresAt, 5*time.Second)
	})
}

/*
TestLogin_StoreFailurePropagates verifies a repository failure is not masked
as a credentials error.
*/
func TestLogin_StoreFailurePropagates(t *testing.T) {
	repo := &mockUserRepository{}
	storeErr := apperr.Internal(errors.New("connection reset"))
	repo.On("FindByEmail", mock.Anything, "mira@example.com").Return(nil, storeErr)

	tokens, err := sec.NewTokenService("test-secret", "test")
	require.NoError(t, err)
	service := auth.NewService(repo, nil, nil, tokens, &recordingNotifier{}, nil, auth.ServiceConfig{})

	_, err = service.Login(context.Background(), "mira@example.com", "pw")
	assert.ErrorIs(t, err, storeErr)
	repo.AssertExpectations(t)
}

// --- Signup ---

/*
TestSignup_Flow walks the two-step signup and its failure modes.
*/
func TestSignup_Flow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.service.RequestSignupCode(ctx, " New@Example.com "))

	sent := h.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "new@example.com", sent[0].To)
	assert.Contains(t, sent[0].HTML, "123456")

	input := auth.SignupInput{
		Email:           "new@example.com",
		OTP:             "000000",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		FirstName:       "Noor",
		LastName:        "Haddad",
	}

	_, err := h.service.Signup(ctx, input)
	assertAppError(t, err, "INVALID_INPUT", auth.MsgInvalidOTP)

	mismatched := input
	mismatched.OTP = "123456"
	mismatched.ConfirmPassword = "other"
	_, err = h.service.Signup(ctx, mismatched)
	assertAppError(t, err, "INVALID_INPUT", auth.MsgPasswordMismatch)

	input.OTP = "123456"
	session, err := h.service.Signup(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleCustomer, session.User.Role)
	assert.Equal(t, auth.ProviderLocal, session.User.AuthProvider)
	assert.True(t, session.User.HasPassword())
	assert.NotEqual(t, "s3cret-pass", *session.User.PasswordHash)

	// The code is single use.
	assert.False(t, h.redis.Exists("auth:signup_otp:new@example.com"))

	err = h.service.RequestSignupCode(ctx, "new@example.com")
	assertAppError(t, err, "CONFLICT", auth.MsgUserExists)
}

/*
TestSignup_AdminEmailIsPromoted verifies configured admin emails start as admin.
*/
func TestSignup_AdminEmailIsPromoted(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.service.RequestSignupCode(ctx, "root@fashionfiesta.app"))
	session, err := h.service.Signup(ctx, auth.SignupInput{
		Email:           "root@fashionfiesta.app",
		OTP:             "123456",
		Password:        "longenough",
		ConfirmPassword: "longenough",
		FirstName:       "Root",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, session.User.Role)
}

/*
TestSignup_ExpiredCode verifies a code past its TTL is rejected.
*/
func TestSignup_ExpiredCode(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.service.RequestSignupCode(ctx, "late@example.com"))
	h.redis.FastForward(auth.SignupCodeTTL + time.Second)

	_, err := h.service.Signup(ctx, auth.SignupInput{
		Email: "late@example.com", OTP: "123456", Password: "longenough", ConfirmPassword: "longenough",
	})
	assertAppError(t, err, "INVALID_INPUT", auth.MsgInvalidOTP)
}

// stickyCodes keeps codes in memory and fails every delete.
type stickyCodes struct {
	codes map[string]string
}

func (c *stickyCodes) Set(_ context.Context, email, code string, _ time.Duration) error {
	c.codes[email] = code
	return nil
}

func (c *stickyCodes) Get(_ context.Context, email string) (string, error) {
	code, ok := c.codes[email]
	if !ok {
		return "", apperr.NotFound("Signup code")
	}
	return code, nil
}

func (c *stickyCodes) Delete(context.Context, string) error {
	return errors.New("redis: connection refused")
}

/*
TestSignup_CodeDeleteFailureIsLogged verifies a failed cleanup does not fail
the signup but leaves a warning behind.
*/
func TestSignup_CodeDeleteFailureIsLogged(t *testing.T) {
	tokens, err := sec.NewTokenService("test-secret", "test")
	require.NoError(t, err)

	var logs bytes.Buffer
	service := auth.NewService(
		authtest.NewUsers(),
		&stickyCodes{codes: map[string]string{}},
		nil,
		tokens,
		&recordingNotifier{},
		nil,
		auth.ServiceConfig{
			GenerateCode: func() (string, error) { return "123456", nil },
			Logger:       slog.New(slog.NewJSONHandler(&logs, nil)),
		},
	)
	ctx := context.Background()

	require.NoError(t, service.RequestSignupCode(ctx, "ivy@example.com"))
	session, err := service.Signup(ctx, auth.SignupInput{
		Email: "ivy@example.com", OTP: "123456", Password: "longenough", ConfirmPassword: "longenough", FirstName: "Ivy",
	})
	require.NoError(t, err)
	assert.Equal(t, "ivy@example.com", session.User.Email)

	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), "auth_signup_code_delete_failed")
	assert.Contains(t, logs.String(), "connection refused")
}

// --- Google ---

func googleCredential(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("provider-key"))
	require.NoError(t, err)
	return raw
}

/*
TestLoginWithGoogleCredential_UpsertsIdentity verifies the first login creates
a password-less Google identity and later logins reuse it.
*/
func TestLoginWithGoogleCredential_UpsertsIdentity(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	credential := googleCredential(t, jwt.MapClaims{
		"sub":         "google-oauth2|1187",
		"email":       "Lena@Example.com",
		"given_name":  "Lena",
		"family_name": "Ortiz",
		"picture":     "https://lh3.example/photo.png",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	first, err := h.service.LoginWithGoogleCredential(ctx, credential)
	require.NoError(t, err)
	assert.Equal(t, auth.ProviderGoogle, first.User.AuthProvider)
	assert.Nil(t, first.User.PasswordHash)
	assert.Equal(t, "lena@example.com", first.User.Email)
	assert.Equal(t, "https://lh3.example/photo.png", first.User.ProfilePhoto)

	token, err := h.tokens.Resolve(first.Token)
	require.NoError(t, err)
	local := token.(sec.LocalToken)
	assert.Equal(t, first.User.ID, local.UserID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), local.ExpiresAt, 5*time.Second)

	second, err := h.service.LoginWithGoogleCredential(ctx, credential)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	// Password login is refused for the bridged identity.
	_, err = h.service.Login(ctx, "lena@example.com", "guess")
	assertAppError(t, err, "FORBIDDEN", auth.MsgGoogleAccount)
}

/*
TestLoginWithGoogleCredential_Rejects covers undecodable and expired credentials.
*/
func TestLoginWithGoogleCredential_Rejects(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name       string
		credential string
	}{
		{"garbage", "not-a-jwt"},
		{"expired", googleCredential(t, jwt.MapClaims{
			"sub": "g-1", "email": "a@example.com", "exp": time.Now().Add(-time.Minute).Unix(),
		})},
		{"no subject", googleCredential(t, jwt.MapClaims{"email": "a@example.com"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.service.LoginWithGoogleCredential(context.Background(), tt.credential)
			assertAppError(t, err, "UNAUTHORIZED", auth.MsgGoogleRejected)
		})
	}
}

/*
TestGoogleCodeFlow verifies state issuance, verifier round trip and single-use state.
*/
func TestGoogleCodeFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.google.profile = &auth.GoogleProfile{Subject: "g-42", Email: "kai@example.com", GivenName: "Kai"}

	authorization, err := h.service.GoogleAuthURL(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(authorization.URL, authorization.State))

	verifier, err := h.redis.Get("auth:oauth_state:" + authorization.State)
	require.NoError(t, err)

	session, err := h.service.GoogleCallback(ctx, "code-1", authorization.State)
	require.NoError(t, err)
	assert.Equal(t, verifier, h.google.lastVerifier)
	assert.Equal(t, "kai@example.com", session.User.Email)

	_, err = h.service.GoogleCallback(ctx, "code-1", authorization.State)
	assertAppError(t, err, "INVALID_INPUT", auth.MsgOAuthState)
}

/*
TestGoogleCodeFlow_ExchangeFailure verifies a failed exchange is a 401.
*/
func TestGoogleCodeFlow_ExchangeFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.google.err = errors.New("invalid_grant")

	authorization, err := h.service.GoogleAuthURL(ctx)
	require.NoError(t, err)

	_, err = h.service.GoogleCallback(ctx, "bad", authorization.State)
	assertAppError(t, err, "UNAUTHORIZED", auth.MsgGoogleRejected)
}

/*
TestGoogleCodeFlow_Disabled verifies a nil provider reports 503.
*/
func TestGoogleCodeFlow_Disabled(t *testing.T) {
	tokens, err := sec.NewTokenService("test-secret", "test")
	require.NoError(t, err)
	service := auth.NewService(authtest.NewUsers(), nil, nil, tokens, &recordingNotifier{}, nil, auth.ServiceConfig{})

	_, err = service.GoogleAuthURL(context.Background())
	assertAppError(t, err, "SERVICE_UNAVAILABLE", auth.MsgGoogleDisabled)

	_, err = service.GoogleCallback(context.Background(), "c", "s")
	assertAppError(t, err, "SERVICE_UNAVAILABLE", auth.MsgGoogleDisabled)
}

/*
TestProfileReader_MapsUser verifies the middleware adapter.
*/
func TestProfileReader_MapsUser(t *testing.T) {
	users := authtest.NewUsers()
	id := users.Seed(&auth.User{
		Email:        "ana@example.com",
		PasswordHash: pointer.To("hash"),
		FirstName:    "Ana",
		LastName:     "Silva",
		ProfilePhoto: "https://img/ana.png",
		Role:         sec.RoleDesigner,
		AuthProvider: auth.ProviderLocal,
	})

	profile, err := auth.NewProfileReader(users).ReadProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", profile.DisplayName)
	assert.Equal(t, sec.RoleDesigner, profile.Role)

	_, err = auth.NewProfileReader(users).ReadProfile(context.Background(), "missing")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}
