package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"whatsapp-agent/internal/infra/handlers"
)

type Routes struct {
	Mux         *mux.Router
	HttpHandler *handlers.HttpHandlers
}

func NewRoutes(mux *mux.Router, HttpHandler *handlers.HttpHandlers) *Routes {
	return &Routes{mux, HttpHandler}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/webhook", r.HttpHandler.Webhook)

	r.Mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
