package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftease/internal/auth"
	"shiftease/internal/config"
	"shiftease/internal/lib/logger/handlers/slogdiscard"
	"shiftease/internal/models"
	"shiftease/internal/storage/memory"
)

type apiClient struct {
	t   *testing.T
	srv *httptest.Server
}

func (c apiClient) do(method, path, token string, body any) (int, map[string]any) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, c.srv.URL+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&out))

	return resp.StatusCode, out
}

func (c apiClient) signup(email string) string {
	c.t.Helper()

	code, body := c.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"email":    email,
		"password": "volunteer-pass",
	})
	require.Equal(c.t, http.StatusCreated, code, body)

	return body["token"].(string)
}

func newTestAPI(t *testing.T) (apiClient, string) {
	t.Helper()

	store := memory.New()
	tokens := auth.NewTokenManager("test-secret", time.Hour, nil)
	authService := auth.NewService(store, tokens)

	require.NoError(t, bootstrapAdmin(slogdiscard.NewDiscardLogger(), store, config.Auth{
		BootstrapAdminEmail:    "admin@example.com",
		BootstrapAdminPassword: "admin-pass",
	}))

	srv := httptest.NewServer(newRouter(slogdiscard.NewDiscardLogger(), store, authService, tokens))
	t.Cleanup(srv.Close)

	c := apiClient{t: t, srv: srv}

	code, body := c.do(http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "admin@example.com",
		"password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, code, body)

	return c, body["token"].(string)
}

func createTestEvent(t *testing.T, c apiClient, adminToken string, capacity, standby any) string {
	t.Helper()

	code, body := c.do(http.MethodPost, "/events", adminToken, map[string]any{
		"title":           "Community garden",
		"date":            "2025-04-12",
		"startTime":       "09:00",
		"endTime":         "12:00",
		"capacity":        capacity,
		"standbyCapacity": standby,
	})
	require.Equal(t, http.StatusCreated, code, body)

	return body["event"].(map[string]any)["id"].(string)
}

func userIDs(list any) []string {
	var ids []string
	for _, r := range list.([]any) {
		ids = append(ids, r.(map[string]any)["userId"].(string))
	}
	return ids
}

func TestRegistrationFlow(t *testing.T) {
	c, adminToken := newTestAPI(t)

	eventID := createTestEvent(t, c, adminToken, 1, "1")

	tokenA := c.signup("a@example.com")
	tokenB := c.signup("b@example.com")
	tokenC := c.signup("c@example.com")

	code, body := c.do(http.MethodPost, "/events/"+eventID+"/register", tokenA, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "confirmed", body["registration"])

	code, body = c.do(http.MethodPost, "/events/"+eventID+"/register", tokenB, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "standby", body["registration"])

	code, body = c.do(http.MethodPost, "/events/"+eventID+"/register", tokenC, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "event is full", body["error"])

	code, _ = c.do(http.MethodPost, "/events/"+eventID+"/register", tokenA, nil)
	assert.Equal(t, http.StatusConflict, code)

	_, me := c.do(http.MethodGet, "/users/me", tokenB, nil)
	userB := me["user"].(map[string]any)["id"].(string)

	code, body = c.do(http.MethodPost, "/events/"+eventID+"/unregister", tokenA, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "confirmed", body["removedFrom"])
	assert.Equal(t, userB, body["promotedUserId"])

	code, body = c.do(http.MethodPost, "/events/"+eventID+"/unregister", tokenA, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "user is not registered for this event", body["error"])

	code, body = c.do(http.MethodGet, "/events/"+eventID, "", nil)
	require.Equal(t, http.StatusOK, code)
	event := body["event"].(map[string]any)
	assert.Equal(t, []string{userB}, userIDs(event["registrations"]))
	assert.Empty(t, event["standbyRegistrations"])
}

func TestAccessControl(t *testing.T) {
	c, adminToken := newTestAPI(t)

	eventID := createTestEvent(t, c, adminToken, 2, 0)
	userToken := c.signup("v@example.com")

	testCases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"anonymous list", http.MethodGet, "/events", "", http.StatusOK},
		{"anonymous register", http.MethodPost, "/events/" + eventID + "/register", "", http.StatusUnauthorized},
		{"admin register", http.MethodPost, "/events/" + eventID + "/register", adminToken, http.StatusForbidden},
		{"user create event", http.MethodPost, "/events", userToken, http.StatusForbidden},
		{"user delete event", http.MethodDelete, "/events/" + eventID, userToken, http.StatusForbidden},
		{"user list feedback", http.MethodGet, "/feedback", userToken, http.StatusForbidden},
		{"admin list feedback", http.MethodGet, "/feedback", adminToken, http.StatusOK},
		{"bad token", http.MethodGet, "/events", "garbage", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := c.do(tc.method, tc.path, tc.token, nil)
			assert.Equal(t, tc.want, code)
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	c, _ := newTestAPI(t)

	token := c.signup("v@example.com")

	code, _ := c.do(http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestEditEventKeepsRegistrations(t *testing.T) {
	c, adminToken := newTestAPI(t)

	eventID := createTestEvent(t, c, adminToken, 2, 0)
	tokenA := c.signup("a@example.com")
	tokenB := c.signup("b@example.com")

	for _, tok := range []string{tokenA, tokenB} {
		code, _ := c.do(http.MethodPost, "/events/"+eventID+"/register", tok, nil)
		require.Equal(t, http.StatusOK, code)
	}

	edit := map[string]any{
		"title":           "Community garden (moved)",
		"date":            "2025-04-13",
		"startTime":       "10:00",
		"endTime":         "13:00",
		"capacity":        1,
		"standbyCapacity": 0,
		"registrations":   []any{},
	}

	code, body := c.do(http.MethodPut, "/events/"+eventID, adminToken, edit)
	assert.Equal(t, http.StatusConflict, code, body)

	edit["capacity"] = 3
	code, body = c.do(http.MethodPut, "/events/"+eventID, adminToken, edit)
	require.Equal(t, http.StatusOK, code, body)

	event := body["event"].(map[string]any)
	assert.Equal(t, "Community garden (moved)", event["title"])
	assert.Len(t, event["registrations"], 2)
}

func TestConcurrentRegistrationsOverHTTP(t *testing.T) {
	c, adminToken := newTestAPI(t)

	eventID := createTestEvent(t, c, adminToken, 3, 2)

	const users = 20

	tokens := make([]string, users)
	for i := range tokens {
		tokens[i] = c.signup(fmt.Sprintf("user%d@example.com", i))
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = map[int]int{}
	)

	for _, tok := range tokens {
		wg.Add(1)
		go func(tok string) {
			defer wg.Done()
			code, _ := c.do(http.MethodPost, "/events/"+eventID+"/register", tok, nil)
			mu.Lock()
			codes[code]++
			mu.Unlock()
		}(tok)
	}
	wg.Wait()

	assert.Equal(t, 5, codes[http.StatusOK])
	assert.Equal(t, users-5, codes[http.StatusConflict])

	_, body := c.do(http.MethodGet, "/events/"+eventID, "", nil)
	event := body["event"].(map[string]any)
	assert.Len(t, event["registrations"], 3)
	assert.Len(t, event["standbyRegistrations"], 2)
}

func TestBootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	log := slogdiscard.NewDiscardLogger()
	store := memory.New()

	require.NoError(t, bootstrapAdmin(log, store, config.Auth{}))
	_, err := store.GetUserByEmail(ctx, "admin@example.com")
	require.Error(t, err)

	err = bootstrapAdmin(log, store, config.Auth{BootstrapAdminEmail: "admin@example.com"})
	assert.ErrorIs(t, err, auth.ErrPasswordRequired)

	cfg := config.Auth{BootstrapAdminEmail: "admin@example.com", BootstrapAdminPassword: "admin-pass"}
	require.NoError(t, bootstrapAdmin(log, store, cfg))
	require.NoError(t, bootstrapAdmin(log, store, cfg))

	u, err := store.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	tokens := auth.NewTokenManager("test-secret", time.Hour, nil)
	srv := httptest.NewServer(newRouter(log, store, auth.NewService(store, tokens), tokens))
	t.Cleanup(srv.Close)

	c := apiClient{t: t, srv: srv}

	code, body := c.do(http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "admin@example.com",
		"password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, code, body)

	createTestEvent(t, c, body["token"].(string), 2, 1)
}
