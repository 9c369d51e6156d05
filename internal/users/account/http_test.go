// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package account_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/ctxutil"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/account"
)

// asCaller injects the identity the auth gate would attach.
func asCaller(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxutil.WithIdentity(r.Context(), ctxutil.RequestIdentity{UserID: userID, TokenKind: sec.KindLocal})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

/*
TestHandler_MeLifecycle exercises GET, PATCH and DELETE on /me.
*/
func TestHandler_MeLifecycle(t *testing.T) {
	service, users, _ := newService(t)
	id := seedLocal(t, users, "mira@example.com", "correct-horse", sec.RoleCustomer)

	router := chi.NewRouter()
	router.With(asCaller(id)).Mount("/me", account.NewHandler(service).Routes())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"email":"mira@example.com"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPatch, "/me", strings.NewReader(`{"firstName":""}`)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/me", strings.NewReader(`{"password":"nope"}`)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Invalid credentials", body.Error)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/me", strings.NewReader(`{"password":"correct-horse"}`)))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Nil(t, users.Get(id))
}

/*
TestHandler_RequiresIdentity verifies the handler refuses requests the gate did not see.
*/
func TestHandler_RequiresIdentity(t *testing.T) {
	service, _, _ := newService(t)
	recorder := httptest.NewRecorder()
	account.NewHandler(service).Routes().ServeHTTP(recorder,
		httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_AdminRoutes exercises listing, role change and bulk delete.
*/
func TestHandler_AdminRoutes(t *testing.T) {
	service, users, _ := newService(t)
	admin := seedLocal(t, users, "admin@example.com", "pw-pw-pw-pw", sec.RoleAdmin)
	target := seedLocal(t, users, "c@example.com", "pw-pw-pw-pw", sec.RoleCustomer)

	router := chi.NewRouter()
	router.With(asCaller(admin)).Mount("/admin/users", account.NewHandler(service).AdminRoutes())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/users?role=customer", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	var listed struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, target, listed.Data[0].ID)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPatch, "/admin/users/"+target+"/role", strings.NewReader(`{"role":"wizard"}`)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPatch, "/admin/users/"+target+"/role", strings.NewReader(`{"role":"designer"}`)))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, sec.RoleDesigner, users.Get(target).Role)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/admin/users?role=admin", nil))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/admin/users?role=designer", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"deleted":1}}`, recorder.Body.String())
}
