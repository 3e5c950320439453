package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todoserver/internal/server/session"
	"github.com/iudanet/todoserver/internal/server/storage/boltdb"
	"github.com/iudanet/todoserver/internal/server/storage/sqlite"
	"github.com/iudanet/todoserver/pkg/api"
)

// setupTestServer assembles the full server over in-memory storages
// and returns an httptest server for it
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	sessStore, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sessStore.Close()
	})

	sessions := session.NewManager(logger, sessStore, time.Hour)

	srv := New(logger, ":0", store, sessions)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts
}

// newClient returns an http client with a cookie jar, like a browser
func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{Jar: jar}
}

// doJSON performs a request with an optional JSON body and decodes the
// response into out when it is non-nil
func doJSON(t *testing.T, client *http.Client, method, url string, body, out interface{}) *http.Response {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp
}

func TestServer_EndToEnd(t *testing.T) {
	ts := setupTestServer(t)
	client := newClient(t)

	// Без сессии задачи недоступны
	resp := doJSON(t, client, http.MethodGet, ts.URL+"/api/todos", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Регистрация устанавливает сессию
	var reg api.RegisterResponse
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/auth/register",
		api.RegisterRequest{Username: "alice", Password: "pw1"}, &reg)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(1), reg.UserID)

	var status api.StatusResponse
	resp = doJSON(t, client, http.MethodGet, ts.URL+"/auth/status", nil, &status)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, status.Authenticated)
	assert.Equal(t, int64(1), status.UserID)
	assert.Equal(t, "alice", status.Username)

	// Создаем задачу
	var created api.CreateTodoResponse
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/todos",
		api.CreateTodoRequest{Title: "buy milk"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(1), created.ID)

	// Задача в списке, не выполнена
	var todos []api.Todo
	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/todos", nil, &todos)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, todos, 1)
	assert.Equal(t, int64(1), todos[0].ID)
	assert.Equal(t, "buy milk", todos[0].Title)
	assert.False(t, todos[0].Completed)

	// Отмечаем выполненной
	completed := true
	resp = doJSON(t, client, http.MethodPut, ts.URL+"/api/todos/1",
		api.UpdateTodoRequest{Completed: &completed}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	todos = nil
	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/todos", nil, &todos)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].Completed)

	// Удаляем
	resp = doJSON(t, client, http.MethodDelete, ts.URL+"/api/todos/1", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	todos = nil
	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/todos", nil, &todos)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, todos)
}

func TestServer_LoginFlow(t *testing.T) {
	ts := setupTestServer(t)

	// Регистрируем и разлогиниваемся
	client := newClient(t)
	resp := doJSON(t, client, http.MethodPost, ts.URL+"/auth/register",
		api.RegisterRequest{Username: "alice", Password: "secret"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Неверный пароль: 401, сессии нет
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/auth/login",
		api.LoginRequest{Username: "alice", Password: "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, client, http.MethodGet, ts.URL+"/auth/status", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Верный пароль: сессия установлена
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/auth/login",
		api.LoginRequest{Username: "alice", Password: "secret"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, client, http.MethodGet, ts.URL+"/auth/status", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_LogoutDestroysSession(t *testing.T) {
	ts := setupTestServer(t)
	client := newClient(t)

	resp := doJSON(t, client, http.MethodPost, ts.URL+"/auth/register",
		api.RegisterRequest{Username: "alice", Password: "pw"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Запоминаем токен до logout
	serverURL, err := url.Parse(ts.URL)
	require.NoError(t, err)
	var token string
	for _, c := range client.Jar.Cookies(serverURL) {
		if c.Name == "session_token" {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Старый токен больше ничего не аутентифицирует,
	// даже предъявленный напрямую
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/todos", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, raw.StatusCode)
}

func TestServer_CrossUserIsolation(t *testing.T) {
	ts := setupTestServer(t)

	alice := newClient(t)
	resp := doJSON(t, alice, http.MethodPost, ts.URL+"/auth/register",
		api.RegisterRequest{Username: "alice", Password: "pw"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created api.CreateTodoResponse
	resp = doJSON(t, alice, http.MethodPost, ts.URL+"/api/todos",
		api.CreateTodoRequest{Title: "alice secret task"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	bob := newClient(t)
	resp = doJSON(t, bob, http.MethodPost, ts.URL+"/auth/register",
		api.RegisterRequest{Username: "bob", Password: "pw"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Задачи alice в списке bob не видны
	var bobTodos []api.Todo
	resp = doJSON(t, bob, http.MethodGet, ts.URL+"/api/todos", nil, &bobTodos)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, bobTodos)

	// bob не может изменить или удалить задачу alice
	completed := true
	resp = doJSON(t, bob, http.MethodPut, ts.URL+"/api/todos/1",
		api.UpdateTodoRequest{Completed: &completed}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, bob, http.MethodDelete, ts.URL+"/api/todos/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// У alice задача на месте и не выполнена
	var aliceTodos []api.Todo
	resp = doJSON(t, alice, http.MethodGet, ts.URL+"/api/todos", nil, &aliceTodos)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, aliceTodos, 1)
	assert.False(t, aliceTodos[0].Completed)
}

func TestServer_Healthz(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
