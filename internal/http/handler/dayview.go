package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dayboard/dayboard-api/internal/model"
	"github.com/dayboard/dayboard-api/internal/service"
)

type DayViewHandler struct {
	svc *service.DayViewService
}

func NewDayViewHandler(svc *service.DayViewService) *DayViewHandler {
	return &DayViewHandler{svc: svc}
}

// ServeHTTP handles GET /api/v1/dayview?date=YYYY-MM-DD (defaults to today,
// UTC). An aggregation failure degrades to an empty-but-valid view: the
// dashboard renders an empty day, not an error banner.
func (h *DayViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}

	day := time.Now().UTC()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse(model.DateLayout, dateStr)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	view, err := h.svc.GetDayView(r.Context(), getUserID(r), day)
	if err != nil {
		slog.WarnContext(r.Context(), "day view aggregation failed", "error", err)
		view = model.DayView{
			Date:   model.DayOf(day).Format(model.DateLayout),
			Groups: []model.CategoryGroup{{Category: model.Uncategorized(), Tasks: []model.Task{}}},
		}
	}

	WriteJSON(w, http.StatusOK, view)
}
