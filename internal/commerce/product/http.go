// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/Avi4306/FashionFiesta-sub001/internal/platform/request"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/respond"
)

// Handler implements the catalog HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new product [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the catalog router.
//
// Browsing is public. The mutating routes run behind guard, which the server
// builds from the auth gate and the role check.
//
// # Endpoints
//   - GET    /      : List (?category=, ?designer=).
//   - GET    /{id}  : Detail.
//   - POST   /      : Publish (designer or admin).
//   - DELETE /{id}  : Remove (owner or admin).
func (handler *Handler) Routes(publish, remove func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.With(publish).Post("/", handler.create)
	router.With(remove).Delete("/{id}", handler.delete)

	return router
}

// list handles GET /api/v1/products.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	products, err := handler.service.List(request.Context(), Filter{
		Category:   query.Get("category"),
		DesignerID: query.Get("designer"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, products)
}

// get handles GET /api/v1/products/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

type createRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       int64    `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required,max=60"`
	Images      []string `json:"images" validate:"max=10,dive,url"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

/*
POST /api/v1/products.

Response:
  - 201: Product
  - 400: Validation failure
  - 403: Caller is not a designer or admin
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	designerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Create(request.Context(), designerID, CreateInput{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Images:      input.Images,
		Stock:       input.Stock,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, product)
}

// delete handles DELETE /api/v1/products/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actorID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
