package app

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame map[string]interface{}

// startChatServer fiber websocket server on a random local port, returns ws://host:port
func startChatServer(t *testing.T, env *testEnv) string {
	t.Helper()
	return startChatServerWith(t, env, testRealtime())
}

func startChatServerWith(t *testing.T, env *testEnv, cfg config.RealtimeConfig) string {
	t.Helper()
	handler := NewChatWebsocketHandler(env.registry, env.tracker, env.uc, cfg)

	chatApp := fiber.New(fiber.Config{DisableStartupMessage: true})
	ws := chatApp.Group("/ws", WebsocketUpgrade)
	ws.Get("/conversations/:conversation_id", websocket.New(handler.HandleConversation))
	ws.Get("/notifications/:user_id", websocket.New(handler.HandleStanding))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = chatApp.Listener(ln) }()

	t.Cleanup(func() {
		env.registry.Shutdown()
		_ = chatApp.ShutdownWithTimeout(time.Second)
	})
	return "ws://" + ln.Addr().String()
}

func dialWS(t *testing.T, base, path, credential string) *gws.Conn {
	t.Helper()
	url := base + path
	if credential != "" {
		url += "?auth=" + credential
	}
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "WebSocket 連線失敗")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func writeWS(t *testing.T, conn *gws.Conn, payload string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(gws.TextMessage, []byte(payload)))
}

func readWS(conn *gws.Conn) (frame, error) {
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// readUntil skip frames until match
func readUntil(t *testing.T, conn *gws.Conn, match func(frame) bool) frame {
	t.Helper()
	for {
		f, err := readWS(conn)
		require.NoError(t, err)
		if match(f) {
			return f
		}
	}
}

func isType(typ string) func(frame) bool {
	return func(f frame) bool { return f["type"] == typ }
}

func isStatus(user string, online bool) func(frame) bool {
	return func(f frame) bool {
		if f["type"] != "status" || f["user_id"] != user {
			return false
		}
		status, _ := f["status"].(string)
		return (status == "online") == online
	}
}

// expectClose read until the server closes, returns the close code
func expectClose(t *testing.T, conn *gws.Conn) (int, []frame) {
	t.Helper()
	var before []frame
	for {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			var ce *gws.CloseError
			require.True(t, errors.As(err, &ce), "expected close frame, got %v", err)
			return ce.Code, before
		}
		var f frame
		require.NoError(t, json.Unmarshal(data, &f))
		before = append(before, f)
	}
}

func TestWebsocket_Rejections(t *testing.T) {
	env := newTestEnv()
	base := startChatServer(t, env)

	cases := []struct {
		name       string
		path       string
		credential string
		code       int
	}{
		{name: "no credential", path: "/ws/conversations/alice:bob", code: 4001},
		{name: "bad credential", path: "/ws/conversations/alice:bob", credential: "nope", code: 4001},
		{name: "non participant", path: "/ws/conversations/alice:bob", credential: cred("carol"), code: 4003},
		{name: "unknown peer", path: "/ws/conversations/alice:zed", credential: cred("alice"), code: 4004},
		{name: "malformed conversation id", path: "/ws/conversations/alice", credential: cred("alice"), code: 4400},
		{name: "self conversation", path: "/ws/conversations/alice:alice", credential: cred("alice"), code: 4400},
		{name: "standing bad credential", path: "/ws/notifications/alice", credential: "nope", code: 4001},
		{name: "standing for another user", path: "/ws/notifications/bob", credential: cred("alice"), code: 4001},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn := dialWS(t, base, tc.path, tc.credential)
			code, _ := expectClose(t, conn)
			assert.Equal(t, tc.code, code)
		})
	}
	assert.False(t, env.registry.IsOnline("alice"))
	assert.False(t, env.registry.IsOnline("carol"))
}

func TestWebsocket_ConversationFlow(t *testing.T) {
	env := newTestEnv()
	base := startChatServer(t, env)

	alice := dialWS(t, base, "/ws/conversations/alice:bob", cred("alice"))
	f := readUntil(t, alice, isType("status"))
	assert.Equal(t, "bob", f["user_id"])
	assert.Equal(t, "offline", f["status"])

	// 順序不同的 id 會被正規化
	bob := dialWS(t, base, "/ws/conversations/bob:alice", cred("bob"))
	readUntil(t, bob, isStatus("alice", true))
	readUntil(t, alice, isStatus("bob", true))

	bobNotes := dialWS(t, base, "/ws/notifications/bob", cred("bob"))
	require.Eventually(t, func() bool {
		return len(env.registry.Connections("bob")) == 2
	}, 2*time.Second, 10*time.Millisecond)

	// chat
	writeWS(t, alice, `{"message":"hello bob"}`)
	f = readUntil(t, bob, isType("chat"))
	assert.Equal(t, "alice:bob", f["conversation_id"])
	assert.Equal(t, "alice", f["sender_id"])
	assert.Equal(t, "bob", f["receiver_id"])
	assert.Equal(t, "Alice", f["sender"])
	assert.Equal(t, "hello bob", f["message"])
	assert.NotEmpty(t, f["id"])

	echo := readUntil(t, alice, isType("chat"))
	assert.Equal(t, f["id"], echo["id"])

	note := readUntil(t, bobNotes, isType("new_message"))
	assert.Equal(t, "alice", note["sender_id"])
	assert.Equal(t, "hello bob", note["message"])

	// typing expires with an explicit false
	writeWS(t, alice, `{"typing":true}`)
	f = readUntil(t, bob, isType("typing"))
	assert.Equal(t, true, f["typing"])
	f = readUntil(t, bob, isType("typing"))
	assert.Equal(t, false, f["typing"])

	// validation error keeps the connection open
	writeWS(t, bob, `{"message":"   "}`)
	f = readUntil(t, bob, isType("error"))
	assert.Contains(t, f["error"], "empty message")
	writeWS(t, bob, `{"message":"still here"}`)
	f = readUntil(t, alice, isType("chat"))
	assert.Equal(t, "still here", f["message"])

	// bob 全部離線 -> last_seen
	require.NoError(t, bob.Close())
	require.NoError(t, bobNotes.Close())
	f = readUntil(t, alice, isStatus("bob", false))
	assert.True(t, strings.HasPrefix(f["status"].(string), "last_seen:"), f["status"])
	assert.NotNil(t, f["last_seen"])

	history, err := env.uc.FetchHistory(context.Background(), conv("alice", "bob"), "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hello bob", history[0].Content)
	assert.Equal(t, "still here", history[1].Content)
}

func TestWebsocket_ProtocolErrorsClose(t *testing.T) {
	env := newTestEnv()
	base := startChatServer(t, env)

	alice := dialWS(t, base, "/ws/conversations/alice:bob", cred("alice"))
	readUntil(t, alice, isType("status"))

	for _, payload := range []string{`not json`, `{"foo":1}`, `{"message":42}`} {
		writeWS(t, alice, payload)
	}
	code, frames := expectClose(t, alice)
	assert.Equal(t, 4400, code)
	assert.Len(t, ofTypeFrames(frames, "error"), testRealtime().MaxProtocolErrors)

	require.Eventually(t, func() bool {
		return !env.registry.IsOnline("alice")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWebsocket_StandingIsOutboundOnly(t *testing.T) {
	env := newTestEnv()
	base := startChatServer(t, env)

	notes := dialWS(t, base, "/ws/notifications/alice", cred("alice"))
	require.Eventually(t, func() bool {
		return env.registry.IsOnline("alice")
	}, 2*time.Second, 10*time.Millisecond)

	writeWS(t, notes, `{"message":"hi"}`)
	f := readUntil(t, notes, isType("error"))
	assert.Contains(t, f["error"], "does not accept frames")

	// a conversation peer sees alice online
	bobChat := dialWS(t, base, "/ws/conversations/alice:bob", cred("bob"))
	readUntil(t, bobChat, isStatus("alice", true))
	require.NoError(t, bobChat.Close())

	// follow event through the standing connection
	consumer := NewFollowConsumer(nil, "follow_events", env.fanout)
	require.NoError(t, consumer.HandleFollowEvent([]byte(`{"follower_id":"carol","follower_name":"Carol","followee_id":"alice"}`)))
	f = readUntil(t, notes, isType("follow"))
	assert.Equal(t, "carol", f["follower_id"])
}

func ofTypeFrames(frames []frame, typ string) []frame {
	var out []frame
	for _, f := range frames {
		if f["type"] == typ {
			out = append(out, f)
		}
	}
	return out
}

// stallingRepository Insert blocks until the caller's deadline while stall is set
type stallingRepository struct {
	*memoryMessageRepository
	stall       atomic.Bool
	hadDeadline atomic.Bool
}

func (r *stallingRepository) Insert(ctx context.Context, msg *domain.Message) error {
	if _, ok := ctx.Deadline(); ok {
		r.hadDeadline.Store(true)
	}
	if r.stall.Load() {
		<-ctx.Done()
		return ctx.Err()
	}
	return r.memoryMessageRepository.Insert(ctx, msg)
}

func TestWebsocket_HungStoreTimesOut(t *testing.T) {
	env := newTestEnv()
	repo := &stallingRepository{memoryMessageRepository: env.store}
	repo.stall.Store(true)
	env.uc = NewConversationUseCase(repo, staticDirectory{"alice": "Alice", "bob": "Bob"}, nil, env.registry, env.fanout, testRealtime())

	cfg := testRealtime()
	cfg.FrameTimeout = 100 * time.Millisecond
	base := startChatServerWith(t, env, cfg)

	alice := dialWS(t, base, "/ws/conversations/alice:bob", cred("alice"))
	readUntil(t, alice, isType("status"))

	start := time.Now()
	writeWS(t, alice, `{"message":"stuck"}`)
	f := readUntil(t, alice, isType("error"))
	assert.Equal(t, "internal error", f["error"])
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, repo.hadDeadline.Load())

	// the conversation lock was released, the next frame goes through on the same connection
	repo.stall.Store(false)
	writeWS(t, alice, `{"message":"again"}`)
	f = readUntil(t, alice, isType("chat"))
	assert.Equal(t, "again", f["message"])
}
