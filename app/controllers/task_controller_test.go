package controllers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-cli/app/controllers"
	"todo-cli/app/models"
	"todo-cli/app/routes"
	"todo-cli/app/services"
)

type testServer struct {
	service *services.TaskService
	router  *mux.Router
	session uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	service := services.NewTaskService()
	session := uuid.New()
	router := mux.NewRouter()
	router.Use(routes.SessionMiddleware(session))
	routes.RegisterRoutes(router, controllers.NewTaskController(service, log.New(io.Discard)))
	return &testServer{service: service, router: router, session: session}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeTasks(t *testing.T, rec *httptest.ResponseRecorder) []models.Task {
	t.Helper()
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	return tasks
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) models.Task {
	t.Helper()
	var task models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func TestCreateAndGetTask(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/tasks", `{"description":"  Buy milk "}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, s.session.String(), rec.Header().Get(routes.SessionHeader))
	created := decodeTask(t, rec)
	assert.Equal(t, models.Task{ID: 1, Description: "Buy milk"}, created)

	rec = s.do(http.MethodGet, "/tasks/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decodeTask(t, rec))
}

func TestCreateTaskRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/tasks", `{"description":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot be empty")

	rec = s.do(http.MethodPost, "/tasks", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 0, s.service.TotalCount())
}

func TestGetTasksFilters(t *testing.T) {
	s := newTestServer(t)
	for _, d := range []string{"a", "b", "c"} {
		_, err := s.service.Add(d)
		require.NoError(t, err)
	}
	require.True(t, s.service.MarkComplete(2))

	rec := s.do(http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeTasks(t, rec), 3)

	rec = s.do(http.MethodGet, "/tasks?status=pending", "")
	pending := decodeTasks(t, rec)
	require.Len(t, pending, 2)
	assert.Equal(t, 1, pending[0].ID)
	assert.Equal(t, 3, pending[1].ID)

	rec = s.do(http.MethodGet, "/tasks?status=completed", "")
	completed := decodeTasks(t, rec)
	require.Len(t, completed, 1)
	assert.Equal(t, 2, completed[0].ID)

	rec = s.do(http.MethodGet, "/tasks?status=overdue", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTasksEmptyIsArray(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCompleteAndReopenTask(t *testing.T) {
	s := newTestServer(t)
	_, err := s.service.Add("a")
	require.NoError(t, err)

	rec := s.do(http.MethodPost, "/tasks/1/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeTask(t, rec).Completed)

	rec = s.do(http.MethodPost, "/tasks/1/incomplete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeTask(t, rec).Completed)

	rec = s.do(http.MethodPost, "/tasks/99/complete", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTask(t *testing.T) {
	s := newTestServer(t)
	_, err := s.service.Add("draft")
	require.NoError(t, err)

	rec := s.do(http.MethodPut, "/tasks/1", `{"description":"final","completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Task{ID: 1, Description: "final", Completed: true}, decodeTask(t, rec))

	rec = s.do(http.MethodPut, "/tasks/1", `{"completed":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Task{ID: 1, Description: "final"}, decodeTask(t, rec))

	rec = s.do(http.MethodPut, "/tasks/1", `{"description":" "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/tasks/7", `{"description":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPut, "/tasks/abc", `{"description":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAndClearTasks(t *testing.T) {
	s := newTestServer(t)
	for _, d := range []string{"a", "b", "c"} {
		_, err := s.service.Add(d)
		require.NoError(t, err)
	}

	rec := s.do(http.MethodDelete, "/tasks/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodDelete, "/tasks/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodGet, "/tasks/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/tasks", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, s.service.TotalCount())

	rec = s.do(http.MethodPost, "/tasks", `{"description":"new"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 4, decodeTask(t, rec).ID)
}

func TestGetStats(t *testing.T) {
	s := newTestServer(t)
	for _, d := range []string{"a", "b", "c"} {
		_, err := s.service.Add(d)
		require.NoError(t, err)
	}
	s.service.MarkComplete(1)
	s.service.MarkComplete(3)

	rec := s.do(http.MethodGet, "/tasks/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, float64(3), stats["total"])
	assert.Equal(t, float64(2), stats["completed"])
	assert.Equal(t, float64(1), stats["pending"])
	assert.InDelta(t, 66.67, stats["completion_rate"], 0.01)
}
