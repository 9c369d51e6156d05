// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package designer_test

import (
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
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth/authtest"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/designer"
)

func asCaller(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxutil.WithIdentity(r.Context(), ctxutil.RequestIdentity{UserID: userID, TokenKind: sec.KindLocal})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

/*
TestHandler_ApplyAndReview drives the workflow over HTTP.
*/
func TestHandler_ApplyAndReview(t *testing.T) {
	users := authtest.NewUsers()
	notifier := &recordingNotifier{}
	handler := designer.NewHandler(newService(users, notifier))

	applicant := seed(users, "ines@example.com", sec.RoleCustomer)
	admin := seed(users, "admin@example.com", sec.RoleAdmin)

	router := chi.NewRouter()
	router.With(asCaller(applicant)).Mount("/designer", handler.Routes())
	router.With(asCaller(admin)).Mount("/admin/designer-applications", handler.AdminRoutes())

	do := func(method, target, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))
		return recorder
	}

	recorder := do(http.MethodPost, "/designer/apply", `{"message":"no brand"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(http.MethodPost, "/designer/apply",
		`{"brandName":"Maison Ines","message":"Evening wear","yearsExperience":6,"specializations":["couture"]}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"role":"pending_designer"`)

	recorder = do(http.MethodPost, "/designer/apply", `{"brandName":"Again","message":"x"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	recorder = do(http.MethodGet, "/admin/designer-applications", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), applicant)

	recorder = do(http.MethodPost, "/admin/designer-applications/"+applicant+"/reject", `{"reason":""}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_INPUT", body.Code)

	recorder = do(http.MethodPost, "/admin/designer-applications/"+applicant+"/approve", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"role":"designer"`)
	assert.Contains(t, recorder.Body.String(), `"verified":true`)

	recorder = do(http.MethodPost, "/admin/designer-applications/"+applicant+"/approve", "")
	require.Equal(t, http.StatusConflict, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_STATE", body.Code)

	assert.Equal(t, sec.RoleDesigner, users.Get(applicant).Role)
}
