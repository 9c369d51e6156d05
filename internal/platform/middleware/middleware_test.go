// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/ctxutil"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/middleware"
)

type devConfig struct{ dev bool }

func (c devConfig) IsDevelopment() bool { return c.dev }

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "client-id", seen)
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewRateLimiter(ctx, 0.0001, 2)
	handler := limiter.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:5000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	prod := middleware.CORS(devConfig{dev: false}, []string{"https://fashionfiesta.app"})(next)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://fashionfiesta.app")
	recorder := httptest.NewRecorder()
	prod.ServeHTTP(recorder, request)
	assert.Equal(t, "https://fashionfiesta.app", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	prod.ServeHTTP(recorder, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)

	router := chi.NewRouter()
	router.Use(metrics.Middleware)
	router.Get("/products/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/42", nil))

	families, err := registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			if labels["path"] == "/products/{id}" && labels["status"] == "418" {
				found = true
				assert.Equal(t, 1.0, metric.GetCounter().GetValue())
			}
		}
	}
	assert.True(t, found)
}
