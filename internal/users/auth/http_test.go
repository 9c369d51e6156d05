// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth"
)

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Details []struct {
		Field string `json:"field"`
	} `json:"details"`
}

func serve(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var decoded envelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

/*
TestHandler_Login maps service outcomes onto status codes.
*/
func TestHandler_Login(t *testing.T) {
	h := newHarness(t)
	h.seedLocal(t, "mira@example.com", "correct-horse")
	h.users.Seed(&auth.User{Email: "gia@example.com", Role: sec.RoleCustomer, AuthProvider: auth.ProviderGoogle})
	router := auth.NewHandler(h.service).Routes()

	tests := []struct {
		name   string
		body   string
		status int
		code   string
		error  string
	}{
		{"wrong password", `{"email":"mira@example.com","password":"nope"}`, 400, "INVALID_INPUT", auth.MsgInvalidCredentials},
		{"google identity", `{"email":"gia@example.com","password":"whatever"}`, 403, "FORBIDDEN", auth.MsgGoogleAccount},
		{"unknown", `{"email":"ghost@example.com","password":"x"}`, 404, "NOT_FOUND", auth.MsgUserMissing},
		{"bad email", `{"email":"not-an-email","password":"x"}`, 400, "VALIDATION_ERROR", "Validation failed"},
		{"bad json", `{"email":`, 400, "VALIDATION_ERROR", "Invalid JSON payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := serve(t, router, http.MethodPost, "/login", tt.body)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.error, body.Error)
		})
	}

	t.Run("success", func(t *testing.T) {
		recorder, body := serve(t, router, http.MethodPost, "/login", `{"email":"mira@example.com","password":"correct-horse"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var session struct {
			Result struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"result"`
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &session))
		assert.Equal(t, "mira@example.com", session.Result.Email)
		assert.Equal(t, "customer", session.Result.Role)
		assert.NotEmpty(t, session.Token)
		assert.NotContains(t, recorder.Body.String(), "password")
	})
}

/*
TestHandler_Signup exercises the two signup endpoints end to end.
*/
func TestHandler_Signup(t *testing.T) {
	h := newHarness(t)
	router := auth.NewHandler(h.service).Routes()

	recorder, _ := serve(t, router, http.MethodPost, "/signup/otp", `{"email":"new@example.com"}`)
	require.Equal(t, http.StatusAccepted, recorder.Code)

	recorder, body := serve(t, router, http.MethodPost, "/signup",
		`{"email":"new@example.com","otp":"12345","password":"longenough","confirmPassword":"longenough","firstName":"N"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "otp", body.Details[0].Field)

	recorder, _ = serve(t, router, http.MethodPost, "/signup",
		`{"email":"new@example.com","otp":"123456","password":"longenough","confirmPassword":"longenough","firstName":"N"}`)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	recorder, body = serve(t, router, http.MethodPost, "/signup/otp", `{"email":"new@example.com"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, auth.MsgUserExists, body.Error)
}

/*
TestHandler_GoogleURL verifies the authorization endpoint shape.
*/
func TestHandler_GoogleURL(t *testing.T) {
	h := newHarness(t)
	router := auth.NewHandler(h.service).Routes()

	recorder, body := serve(t, router, http.MethodGet, "/google/url", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var authorization auth.GoogleAuthorization
	require.NoError(t, json.Unmarshal(body.Data, &authorization))
	assert.NotEmpty(t, authorization.State)
	assert.Contains(t, authorization.URL, authorization.State)
}
