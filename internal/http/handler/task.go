package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dayboard/dayboard-api/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// ServeHTTP routes /api/v1/tasks, /api/v1/tasks/{id}, and the
// completion/category sub-resources.
func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/tasks")
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	taskID := parts[0]
	subPath := ""
	if len(parts) > 1 {
		subPath = parts[1]
	}

	if taskID != "" && subPath == "completion" {
		h.handleToggleCompletion(w, r, taskID)
		return
	}
	if taskID != "" && subPath == "category" {
		h.handleMove(w, r, taskID)
		return
	}

	if taskID != "" {
		switch r.Method {
		case http.MethodPatch:
			h.handleUpdate(w, r, taskID)
		case http.MethodDelete:
			h.handleDelete(w, r, taskID)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	h.handleCreate(w, r)
}

type createTaskRequest struct {
	Title      string  `json:"title"`
	Priority   string  `json:"priority"`
	DueDate    *string `json:"due_date,omitempty"`
	DueTime    *string `json:"due_time,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	Notes      string  `json:"notes"`
}

func (h *TaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	task, err := h.svc.Create(r.Context(), getUserID(r), service.CreateTaskInput{
		Title:      req.Title,
		Priority:   req.Priority,
		DueDate:    req.DueDate,
		DueTime:    req.DueTime,
		CategoryID: req.CategoryID,
		Notes:      req.Notes,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, task)
}

type updateTaskRequest struct {
	Title    *string `json:"title,omitempty"`
	Priority *string `json:"priority,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`
	DueTime  *string `json:"due_time,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (h *TaskHandler) handleUpdate(w http.ResponseWriter, r *http.Request, taskID string) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	task, err := h.svc.Update(r.Context(), getUserID(r), taskID, service.UpdateTaskInput{
		Title:    req.Title,
		Priority: req.Priority,
		DueDate:  req.DueDate,
		DueTime:  req.DueTime,
		Notes:    req.Notes,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request, taskID string) {
	if err := h.svc.Delete(r.Context(), getUserID(r), taskID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type toggleCompletionRequest struct {
	Completed bool `json:"completed"`
	// RecurringCategory is resolved by the client from the category it is
	// rendering; the server does not re-fetch the category on every toggle.
	RecurringCategory bool `json:"recurring_category"`
}

func (h *TaskHandler) handleToggleCompletion(w http.ResponseWriter, r *http.Request, taskID string) {
	if r.Method != http.MethodPatch {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	var req toggleCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	task, err := h.svc.ToggleCompletion(r.Context(), getUserID(r), taskID, req.Completed, req.RecurringCategory)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

type moveTaskRequest struct {
	// CategoryID null (or absent) moves the task to the uncategorized bucket.
	CategoryID *string `json:"category_id"`
}

func (h *TaskHandler) handleMove(w http.ResponseWriter, r *http.Request, taskID string) {
	if r.Method != http.MethodPatch {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	var req moveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	task, err := h.svc.MoveToCategory(r.Context(), getUserID(r), taskID, req.CategoryID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}
