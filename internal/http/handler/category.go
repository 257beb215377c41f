package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dayboard/dayboard-api/internal/middleware"
	"github.com/dayboard/dayboard-api/internal/service"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// ServeHTTP routes /api/v1/categories, /api/v1/categories/{id}, and the
// reorder/bootstrap sub-resources.
func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/categories")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
	case "reorder":
		if r.Method != http.MethodPut {
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		h.handleReorder(w, r)
	case "bootstrap":
		if r.Method != http.MethodPost {
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		h.handleBootstrap(w, r)
	default:
		switch r.Method {
		case http.MethodPatch:
			h.handleUpdate(w, r, path)
		case http.MethodDelete:
			h.handleArchive(w, r, path)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
	}
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context(), getUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsRecurring bool   `json:"is_recurring"`
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	category, err := h.svc.Create(r.Context(), getUserID(r), service.CreateCategoryInput{
		Name:        req.Name,
		Icon:        req.Icon,
		Color:       req.Color,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, category)
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsRecurring *bool   `json:"is_recurring,omitempty"`
}

func (h *CategoryHandler) handleUpdate(w http.ResponseWriter, r *http.Request, categoryID string) {
	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	category, err := h.svc.Update(r.Context(), getUserID(r), categoryID, service.UpdateCategoryInput{
		Name:        req.Name,
		Icon:        req.Icon,
		Color:       req.Color,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, category)
}

// handleArchive maps DELETE to a soft archive: the row and its tasks survive.
func (h *CategoryHandler) handleArchive(w http.ResponseWriter, r *http.Request, categoryID string) {
	if err := h.svc.Archive(r.Context(), getUserID(r), categoryID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	OrderedIDs []string `json:"ordered_ids"`
}

type reorderResultBody struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// handleReorder reports per-id outcomes: the batch is best-effort and a
// partial failure is data the client needs, not something to hide behind a
// single boolean.
func (h *CategoryHandler) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	results, err := h.svc.Reorder(r.Context(), getUserID(r), req.OrderedIDs)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	body := make([]reorderResultBody, 0, len(results))
	for _, res := range results {
		rb := reorderResultBody{ID: res.ID, OK: res.Err == nil}
		if res.Err != nil {
			rb.Error = res.Err.Error()
		}
		body = append(body, rb)
	}

	WriteJSON(w, http.StatusOK, map[string]any{"results": body})
}

func (h *CategoryHandler) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	created, err := h.svc.EnsureBootstrap(r.Context(), getUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"created": created})
}

func getUserID(r *http.Request) string {
	return middleware.GetUserID(r)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, http.StatusForbidden, "FORBIDDEN", "access denied")
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
