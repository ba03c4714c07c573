package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the API routes. Everything lives under /api; file
// attachment endpoints are routed but answer as not implemented.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	api.HandleFunc("/token", h.IssueToken).Methods(http.MethodPost)

	api.HandleFunc("/user", h.GetAccount).Methods(http.MethodGet)
	api.HandleFunc("/user", h.UpdateAccount).Methods(http.MethodPost)

	api.HandleFunc("/todos", h.ListTodos).Methods(http.MethodGet)
	api.HandleFunc("/todos", h.CreateTodo).Methods(http.MethodPost)
	api.HandleFunc("/todo/{todo_id}", h.UpdateTodo).Methods(http.MethodPost)
	api.HandleFunc("/todo/{todo_id}", h.DeleteTodo).Methods(http.MethodDelete)

	api.HandleFunc("/projects", h.ListProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", h.CreateProject).Methods(http.MethodPost)
	api.HandleFunc("/project/{project_id}", h.NotImplemented).Methods(http.MethodPost)

	api.HandleFunc("/todo/{todo_id}/files", h.NotImplemented)
	api.HandleFunc("/todo/{todo_id}/file/{file_id}", h.NotImplemented)
	api.HandleFunc("/files", h.NotImplemented).Methods(http.MethodGet)

	return r
}
