package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/pkg/logger"
	"realtime_chat_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRestApp(env *testEnv) *fiber.App {
	rest := NewChatRestHandler(env.uc, env.tracker)
	auth := middlewares.JWTMiddleware(tokenAuth{})

	r := fiber.New()
	r.Get("/", ConnectCheck)
	r.Post("/debug", DebugLogFlag)
	r.Get("/conversations/:peer/messages", auth, rest.GetHistory)
	r.Post("/conversations/:peer/mark-seen", auth, rest.MarkSeen)
	r.Get("/chats/recent", auth, rest.RecentChats)
	r.Get("/presence/:user_id", auth, rest.Presence)
	return r
}

func doRequest(t *testing.T, r *fiber.App, method, target, user string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if user != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+cred(user))
	}
	resp, err := r.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestRest_History(t *testing.T) {
	env := newTestEnv()
	r := newRestApp(env)
	ctx := context.Background()

	_, err := env.uc.Send(ctx, conv("alice", "bob"), "bob", "hello")
	require.NoError(t, err)
	_, err = env.uc.Send(ctx, conv("alice", "bob"), "alice", "hey")
	require.NoError(t, err)

	status, body := doRequest(t, r, "GET", "/conversations/bob/messages", "alice")
	require.Equal(t, fiber.StatusOK, status)
	var msgs []domain.Message
	require.NoError(t, json.Unmarshal(body, &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, "hey", msgs[1].Content)

	status, body = doRequest(t, r, "GET", "/conversations/carol/messages", "alice")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	cases := []struct {
		name   string
		target string
		user   string
		status int
	}{
		{name: "no credential", target: "/conversations/bob/messages", status: fiber.StatusUnauthorized},
		{name: "unknown peer", target: "/conversations/zed/messages", user: "alice", status: fiber.StatusNotFound},
		{name: "self", target: "/conversations/alice/messages", user: "alice", status: fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := doRequest(t, r, "GET", tc.target, tc.user)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestRest_MarkSeenAndRecent(t *testing.T) {
	env := newTestEnv()
	r := newRestApp(env)
	ctx := context.Background()

	for _, text := range []string{"1", "2"} {
		_, err := env.uc.Send(ctx, conv("alice", "bob"), "alice", text)
		require.NoError(t, err)
	}

	status, body := doRequest(t, r, "GET", "/chats/recent", "bob")
	require.Equal(t, fiber.StatusOK, status)
	var recent domain.RecentChats
	require.NoError(t, json.Unmarshal(body, &recent))
	assert.Equal(t, 2, recent.TotalUnseen)
	require.Len(t, recent.Chats, 1)
	assert.Equal(t, "alice", recent.Chats[0].PeerID)

	status, body = doRequest(t, r, "POST", "/conversations/alice/mark-seen", "bob")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"conversation_id":"alice:bob","updated":2}`, string(body))

	status, body = doRequest(t, r, "POST", "/conversations/alice/mark-seen", "bob")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"conversation_id":"alice:bob","updated":0}`, string(body))

	_, body = doRequest(t, r, "GET", "/chats/recent", "bob")
	require.NoError(t, json.Unmarshal(body, &recent))
	assert.Zero(t, recent.TotalUnseen)
}

func TestRest_Presence(t *testing.T) {
	env := newTestEnv()
	r := newRestApp(env)

	status, body := doRequest(t, r, "GET", "/presence/bob", "alice")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"type":"status","user_id":"bob","status":"offline","last_seen":null}`, string(body))

	c := env.standing(t, "bob")
	_, body = doRequest(t, r, "GET", "/presence/bob", "alice")
	assert.JSONEq(t, `{"type":"status","user_id":"bob","status":"online","last_seen":null}`, string(body))

	env.registry.Unregister(c)
	_, body = doRequest(t, r, "GET", "/presence/bob", "alice")
	var frame domain.StatusFrame
	require.NoError(t, json.Unmarshal(body, &frame))
	require.NotNil(t, frame.LastSeen)
	assert.Equal(t, "last_seen:"+*frame.LastSeen, frame.Status)
}

func TestRest_ConnectCheckAndDebug(t *testing.T) {
	r := newRestApp(newTestEnv())

	status, body := doRequest(t, r, "GET", "/", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "chat service start!", string(body))

	status, body = doRequest(t, r, "POST", "/debug?status=true", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "debug mode is : true", string(body))
	assert.True(t, logger.Log.IsDebugMode())

	status, body = doRequest(t, r, "POST", "/debug?status=false", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "debug mode is : false", string(body))

	status, _ = doRequest(t, r, "POST", "/debug?status=maybe", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, logger.Log.IsDebugMode())
}

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad token", domain.ErrAuth), fiber.StatusUnauthorized},
		{domain.ErrAuthorization, fiber.StatusForbidden},
		{domain.ErrNotFound, fiber.StatusNotFound},
		{domain.ErrValidation, fiber.StatusBadRequest},
		{domain.ErrProtocol, fiber.StatusBadRequest},
		{errors.New("db down"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusCode(tc.err), tc.err.Error())
	}
}

func TestPublicError(t *testing.T) {
	assert.Equal(t, "internal error", publicError(errors.New("mongo: connection refused")))
	err := fmt.Errorf("%w: empty message", domain.ErrValidation)
	assert.Equal(t, err.Error(), publicError(err))
}
