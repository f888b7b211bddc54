package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/observability"
)

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.Handle("/metrics", observability.Handler()).Methods("GET")

	r.HandleFunc("/api/tokens", s.CreateTokenHandler).Methods("POST")
	r.HandleFunc("/api/tokens", s.ListTokensHandler).Methods("GET")
	r.HandleFunc("/api/tokens", s.ClearTokensHandler).Methods("DELETE")
	r.HandleFunc("/api/tokens/{mint}", s.GetTokenHandler).Methods("GET")

	r.HandleFunc("/api/connect", s.ConnectHandler).Methods("POST")
	r.HandleFunc("/api/pinata/test", s.PinataTestHandler).Methods("GET")

	if s.uploadsDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir))))
	}

	return r
}
