// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/Avi4306/FashionFiesta-sub001/internal/platform/request"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/respond"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/validate"
)

// Handler implements the account HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the caller-scoped account endpoints. Mount behind the auth gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getMe)
	router.Patch("/", handler.updateMe)
	router.Delete("/", handler.deleteMe)

	return router
}

// AdminRoutes returns the user-management endpoints. Mount behind the admin role check.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)
	router.Delete("/", handler.deleteUsers)
	router.Patch("/{id}/role", handler.changeRole)

	return router
}

// # Self-service Endpoints

/*
GET /api/v1/me.

Response:
  - 200: User: Fully hydrated identity
  - 401: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type updateMeRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	ProfilePhoto *string `json:"profilePhoto"`
}

/*
PATCH /api/v1/me.

Response:
  - 200: User: The updated identity
  - 400: Validation failure
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.FirstName != nil {
		v.Required("firstName", *input.FirstName).MaxLen("firstName", *input.FirstName, 100)
	}
	if input.LastName != nil {
		v.MaxLen("lastName", *input.LastName, 100)
	}
	if input.ProfilePhoto != nil {
		v.MaxLen("profilePhoto", *input.ProfilePhoto, 2048)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		ProfilePhoto: input.ProfilePhoto,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type deleteMeRequest struct {
	Password string `json:"password"`
}

/*
DELETE /api/v1/me.

Description: a local identity confirms with its password; the body may be
empty for a Google identity.

Response:
  - 204: Deleted
  - 400: Invalid credentials
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input deleteMeRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Admin Endpoints

// listUsers handles GET /api/v1/admin/users?role=.
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	role := sec.Role(request.URL.Query().Get("role"))

	users, err := handler.accountService.ListUsers(request.Context(), role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer pending_designer designer admin"`
}

// changeRole handles PATCH /api/v1/admin/users/{id}/role.
func (handler *Handler) changeRole(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeRoleRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.ChangeRole(request.Context(), actorID, requestutil.Param(request, "id"), sec.Role(input.Role))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// deleteUsers handles DELETE /api/v1/admin/users?role=.
func (handler *Handler) deleteUsers(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	role := sec.Role(request.URL.Query().Get("role"))
	removed, err := handler.accountService.DeleteUsersByRole(request.Context(), actorID, role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"deleted": removed})
}
