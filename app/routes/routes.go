package routes

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"todo-cli/app/controllers"
)

// SessionHeader carries the id of the tracker session that served a request.
const SessionHeader = "X-Session-ID"

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router, taskController *controllers.TaskController) {
	router.HandleFunc("/tasks", taskController.GetTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", taskController.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks", taskController.ClearTasks).Methods(http.MethodDelete)
	router.HandleFunc("/tasks/stats", taskController.GetStats).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{taskID}", taskController.GetTaskByID).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{taskID}", taskController.UpdateTask).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{taskID}", taskController.DeleteTask).Methods(http.MethodDelete)
	router.HandleFunc("/tasks/{taskID}/complete", taskController.CompleteTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}/incomplete", taskController.ReopenTask).Methods(http.MethodPost)
}

// SessionMiddleware tags every response with the session id.
func SessionMiddleware(session uuid.UUID) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(SessionHeader, session.String())
			next.ServeHTTP(w, r)
		})
	}
}
