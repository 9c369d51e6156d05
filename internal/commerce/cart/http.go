// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/Avi4306/FashionFiesta-sub001/internal/platform/request"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/respond"
)

// Handler implements the cart HTTP endpoints.
type Handler struct {
	cartService *Service
}

// NewHandler constructs a new cart [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{cartService: service}
}

// Routes returns the cart router. Mount behind the auth gate.
//
// # Endpoints
//   - GET    /                    : The caller's cart.
//   - POST   /items               : Add or increment a product.
//   - PUT    /items/{productId}   : Set a quantity.
//   - DELETE /items/{productId}   : Remove a product.
//   - POST   /merge               : Merge the anonymous cart after login.
//   - DELETE /                    : Empty the cart.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.get)
	router.Delete("/", handler.clear)
	router.Post("/items", handler.addItem)
	router.Put("/items/{productId}", handler.setQuantity)
	router.Delete("/items/{productId}", handler.removeItem)
	router.Post("/merge", handler.merge)

	return router
}

type lineItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

type quantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

type mergeRequest struct {
	Items []lineItemRequest `json:"items" validate:"dive"`
}

// get handles GET /api/v1/cart.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.cartService.Get(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

/*
POST /api/v1/cart/items.

Response:
  - 200: View
  - 400: Quantity below 1
  - 404: Unknown product
*/
func (handler *Handler) addItem(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input lineItemRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.cartService.AddItem(request.Context(), ownerID, input.ProductID, input.Quantity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

// setQuantity handles PUT /api/v1/cart/items/{productId}.
func (handler *Handler) setQuantity(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input quantityRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.cartService.SetQuantity(request.Context(), ownerID, requestutil.Param(request, "productId"), input.Quantity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

// removeItem handles DELETE /api/v1/cart/items/{productId}.
func (handler *Handler) removeItem(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.cartService.RemoveItem(request.Context(), ownerID, requestutil.Param(request, "productId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

/*
POST /api/v1/cart/merge.

Description: called by the client right after login with the items it kept
while anonymous. The client is expected to discard its local cart afterwards;
replaying the request adds the quantities again.

Response:
  - 200: View
  - 400: An item without productId or with quantity below 1
  - 409: The cart changed concurrently
*/
func (handler *Handler) merge(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input mergeRequest
	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	items := make([]LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, LineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	view, err := handler.cartService.Merge(request.Context(), ownerID, items)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

// clear handles DELETE /api/v1/cart.
func (handler *Handler) clear(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.cartService.Clear(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}
