// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package designer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/Avi4306/FashionFiesta-sub001/internal/platform/request"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/respond"
)

// Handler implements the designer application endpoints.
type Handler struct {
	designerService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{designerService: service}
}

// Routes returns the applicant endpoints. Mount behind the auth gate.
//
// # Endpoints
//   - POST /apply : Submit an application.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/apply", handler.apply)
	return router
}

// AdminRoutes returns the review endpoints. Mount behind the admin role check.
//
// # Endpoints
//   - GET  /              : Pending applications.
//   - POST /{id}/approve  : Approve.
//   - POST /{id}/reject   : Reject with a reason.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listPending)
	router.Post("/{id}/approve", handler.approve)
	router.Post("/{id}/reject", handler.reject)
	return router
}

type applyRequest struct {
	BrandName       string   `json:"brandName" validate:"required,max=120"`
	Message         string   `json:"message" validate:"required,max=2000"`
	PortfolioLink   string   `json:"portfolioLink" validate:"omitempty,url"`
	YearsExperience int      `json:"yearsExperience" validate:"gte=0,lte=80"`
	Specializations []string `json:"specializations" validate:"max=20,dive,max=60"`
	WhyYou          string   `json:"whyYou" validate:"max=2000"`
}

/*
POST /api/v1/designer/apply.

Response:
  - 201: User: The applicant, now pending_designer
  - 400: Validation failure
  - 409: INVALID_STATE when the caller is not a customer
*/
func (handler *Handler) apply(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input applyRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.designerService.Submit(request.Context(), userID, ApplicationInput{
		BrandName:       input.BrandName,
		Message:         input.Message,
		PortfolioLink:   input.PortfolioLink,
		YearsExperience: input.YearsExperience,
		Specializations: input.Specializations,
		WhyYou:          input.WhyYou,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// listPending handles GET /api/v1/admin/designer-applications.
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.designerService.ListPending(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, users)
}

// approve handles POST /api/v1/admin/designer-applications/{id}/approve.
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	adminID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.designerService.Approve(request.Context(), adminID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// reject handles POST /api/v1/admin/designer-applications/{id}/reject.
//
// The reason is validated by the service so a blank reason is reported the
// same way from every caller.
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	adminID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rejectRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.designerService.Reject(request.Context(), adminID, requestutil.Param(request, "id"), input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}
