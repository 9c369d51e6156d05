// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/Avi4306/FashionFiesta-sub001/internal/platform/request"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the public authentication endpoints.
//
// Every route here is unauthenticated; the routes that need a caller live in
// the account package.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /signup/otp        : Emails a signup code.
//   - POST /signup            : Redeems the code and creates a local identity.
//   - POST /login             : Password login.
//   - POST /google            : Google ID-token login.
//   - GET  /google/url        : Starts the Google authorization-code flow.
//   - POST /google/callback   : Completes it.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup/otp", handler.requestSignupCode)
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/google", handler.googleCredential)
	router.Get("/google/url", handler.googleURL)
	router.Post("/google/callback", handler.googleCallback)

	return router
}

// # Request Payloads

type signupCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type signupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	OTP             string `json:"otp" validate:"required,len=6,numeric"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleCredentialRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type googleCallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}

/*
requestSignupCode emails a one-time code.

POST /api/v1/auth/signup/otp

Response:
  - 202: Code sent
  - 409: Email already registered
*/
func (handler *Handler) requestSignupCode(writer http.ResponseWriter, request *http.Request) {
	var input signupCodeRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.RequestSignupCode(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusAccepted, respond.SuccessEnvelope{
		Data: map[string]string{"message": "OTP sent to " + NormalizeEmail(input.Email)},
	})
}

/*
signup creates a local identity.

POST /api/v1/auth/signup

Response:
  - 201: Session
  - 400: Validation failure, password mismatch or bad code
  - 409: Email already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Signup(request.Context(), SignupInput{
		Email:           input.Email,
		OTP:             input.OTP,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

/*
login authenticates with email and password.

POST /api/v1/auth/login

Response:
  - 200: Session
  - 400: Invalid credentials
  - 403: Identity registered through Google
  - 404: Unknown email
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// googleCredential handles POST /api/v1/auth/google.
func (handler *Handler) googleCredential(writer http.ResponseWriter, request *http.Request) {
	var input googleCredentialRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.LoginWithGoogleCredential(request.Context(), input.Credential)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// googleURL handles GET /api/v1/auth/google/url.
func (handler *Handler) googleURL(writer http.ResponseWriter, request *http.Request) {
	authorization, err := handler.authService.GoogleAuthURL(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, authorization)
}

// googleCallback handles POST /api/v1/auth/google/callback.
func (handler *Handler) googleCallback(writer http.ResponseWriter, request *http.Request) {
	var input googleCallbackRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.GoogleCallback(request.Context(), input.Code, input.State)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}
