// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package requestutil provides helpers for reading HTTP requests: body decoding,
URL parameters and the caller identity attached by the auth gate.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/ctxutil"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body into target.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeAndValidate decodes the body into target and runs its struct tags.
*/
func DecodeAndValidate(writer http.ResponseWriter, request *http.Request, target any) error {
	if err := DecodeJSON(writer, request, target); err != nil {
		return err
	}
	return validate.Struct(target)
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Identity returns the caller resolved by the auth gate.

Returns:
  - ctxutil.RequestIdentity: the caller
  - error: apperr.Unauthorized if the gate did not run
*/
func Identity(request *http.Request) (ctxutil.RequestIdentity, error) {
	identity, ok := ctxutil.GetIdentity(request.Context())
	if !ok {
		return ctxutil.RequestIdentity{}, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}

// RequiredUserID returns the id of the authenticated caller.
func RequiredUserID(request *http.Request) (string, error) {
	identity, err := Identity(request)
	if err != nil {
		return "", err
	}
	return identity.UserID, nil
}
