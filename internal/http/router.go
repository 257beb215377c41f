package http

import (
	"net/http"

	"github.com/dayboard/dayboard-api/internal/http/handler"
	"github.com/dayboard/dayboard-api/internal/service"
)

func NewRouter(categorySvc *service.CategoryService, dayViewSvc *service.DayViewService, taskSvc *service.TaskService, authSvc *service.AuthService) http.Handler {
	mux := http.NewServeMux()

	// Health check - intentionally outside /api/v1 for ALB health check compatibility
	health := handler.NewHealthHandler()
	mux.Handle("/health", health)

	categoryHandler := handler.NewCategoryHandler(categorySvc)
	mux.Handle("/api/v1/categories", categoryHandler)
	mux.Handle("/api/v1/categories/", categoryHandler)

	taskHandler := handler.NewTaskHandler(taskSvc)
	mux.Handle("/api/v1/tasks", taskHandler)
	mux.Handle("/api/v1/tasks/", taskHandler)

	mux.Handle("/api/v1/dayview", handler.NewDayViewHandler(dayViewSvc))

	if authSvc != nil {
		mux.Handle("/api/v1/auth/", handler.NewAuthHandler(authSvc))
	}

	return mux
}
