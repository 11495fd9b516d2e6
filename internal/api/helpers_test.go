package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/worktracker/internal/api"
	"github.com/phrazzld/worktracker/internal/api/middleware"
	"github.com/phrazzld/worktracker/internal/mocks"
	"github.com/phrazzld/worktracker/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv wires the real services to mocked stores behind the real router.
type testEnv struct {
	users    *mocks.UserStore
	tasks    *mocks.TaskStore
	notifier *mocks.Notifier
	sql      sqlmock.Sqlmock
	router   chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	env := &testEnv{
		users:    &mocks.UserStore{},
		tasks:    &mocks.TaskStore{},
		notifier: &mocks.Notifier{},
		sql:      sqlMock,
	}
	t.Cleanup(func() {
		env.users.AssertExpectations(t)
		env.tasks.AssertExpectations(t)
		env.notifier.AssertExpectations(t)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		_ = db.Close()
	})

	log := quietLogger()
	userService := service.NewUserService(env.users, env.notifier, log)
	taskService := service.NewTaskService(env.tasks, env.users, db, env.notifier, log)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	api.RegisterRoutes(r,
		api.NewUserHandler(userService, log),
		api.NewTaskHandler(taskService, log),
		nil)
	env.router = r

	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, message, body["error"])
	assert.NotEmpty(t, body["trace_id"])
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

