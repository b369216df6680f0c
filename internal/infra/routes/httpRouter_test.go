package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"whatsapp-agent/internal/infra/handlers"
	"whatsapp-agent/internal/infra/logger"
)

func TestHealthCheck(t *testing.T) {
	log := logger.NewLogger(context.Background(), true)
	router := mux.NewRouter()
	routes := NewRoutes(router, handlers.NewHttpHandlers(log, "secret", nil))
	routes.Init()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestWebhookRouteRegistered(t *testing.T) {
	log := logger.NewLogger(context.Background(), true)
	router := mux.NewRouter()
	routes := NewRoutes(router, handlers.NewHttpHandlers(log, "secret", nil))
	routes.Init()

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=secret&hub.challenge=ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ping", rec.Body.String())
}
