package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/evetodo/eve-server/internal/server/models"
	"github.com/evetodo/eve-server/internal/server/services"
)

type todoRequest struct {
	Title       string     `json:"title"`
	Memo        string     `json:"memo"`
	CompletedAt *time.Time `json:"completed_at"`
	Deadline    *time.Time `json:"deadline"`
	ProjectID   *int64     `json:"project_id"`
}

type todoResponse struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Memo              string     `json:"memo"`
	CompletedAt       *time.Time `json:"completed_at"`
	Deadline          *time.Time `json:"deadline"`
	ProjectID         *int64     `json:"project_id"`
	ProjectTodoNumber *int32     `json:"project_todo_number"`
}

func toTodoResponse(t *models.Todo) todoResponse {
	return todoResponse{
		ID:                t.ID,
		Title:             t.Title,
		Memo:              t.Memo,
		CompletedAt:       t.CompletedAt,
		Deadline:          t.Deadline,
		ProjectID:         t.ProjectID,
		ProjectTodoNumber: t.ProjectTodoNumber,
	}
}

func (r todoRequest) params() services.TodoParams {
	return services.TodoParams{
		Title:       r.Title,
		Memo:        r.Memo,
		CompletedAt: r.CompletedAt,
		Deadline:    r.Deadline,
		ProjectID:   r.ProjectID,
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func (h *Handlers) ListTodos(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.requireAccount(w, r)
	if !ok {
		return
	}

	todos, err := h.todos.List(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]todoResponse, 0, len(todos))
	for i := range todos {
		resp = append(resp, toTodoResponse(&todos[i]))
	}
	writeData(w, resp)
}

func (h *Handlers) CreateTodo(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.requireAccount(w, r)
	if !ok {
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	todo, err := h.todos.Create(r.Context(), accountID, req.params())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, toTodoResponse(todo))
}

func (h *Handlers) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.requireAccount(w, r)
	if !ok {
		return
	}

	todoID, err := pathID(r, "todo_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid todo id.")
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	todo, err := h.todos.Update(r.Context(), accountID, todoID, req.params())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, toTodoResponse(todo))
}

func (h *Handlers) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.requireAccount(w, r)
	if !ok {
		return
	}

	todoID, err := pathID(r, "todo_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid todo id.")
		return
	}

	if err := h.todos.Delete(r.Context(), accountID, todoID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Todo is deleted.")
}
