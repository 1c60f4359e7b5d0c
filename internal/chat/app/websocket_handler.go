package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/hub"
	"realtime_chat_service/pkg/config"
	"realtime_chat_service/pkg/logger"
	"realtime_chat_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

const (
	// LocalCredential fiber locals key of the bearer credential captured before upgrade
	LocalCredential = "credential"

	writeWait = 10 * time.Second
	// max close reason length allowed by RFC 6455
	maxCloseReason = 123
)

// ChatWebsocketHandler conversation + standing websocket endpoints
type ChatWebsocketHandler struct {
	registry *hub.Registry
	tracker  *hub.Tracker
	uc       *ConversationUseCase
	cfg      config.RealtimeConfig
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(registry *hub.Registry, tracker *hub.Tracker, uc *ConversationUseCase, cfg config.RealtimeConfig) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		registry: registry,
		tracker:  tracker,
		uc:       uc,
		cfg:      cfg.WithDefaults(),
	}
}

// WebsocketUpgrade only websocket upgrades pass, the credential is kept for the handler
// (headers are gone once the connection is upgraded)
func WebsocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals(LocalCredential, middlewares.Credential(c))
	return c.Next()
}

// HandleConversation /ws/conversations/:conversation_id
func (h *ChatWebsocketHandler) HandleConversation(conn *websocket.Conn) {
	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.FrameTimeout)
	defer cancel()
	credential, _ := conn.Locals(LocalCredential).(string)

	userID, err := h.registry.Resolve(ctx, credential)
	if err != nil {
		h.reject(conn, err)
		return
	}
	conversationID, err := domain.ParseConversationID(conn.Params("conversation_id"))
	if err != nil {
		h.reject(conn, err)
		return
	}
	if err := h.uc.CheckParticipant(ctx, conversationID, userID); err != nil {
		h.reject(conn, err)
		return
	}
	c, err := hub.NewConversationConnection(userID, conversationID, h.cfg.SendBuffer)
	if err != nil {
		h.reject(conn, err)
		return
	}
	if err := h.registry.Register(ctx, credential, c); err != nil {
		h.reject(conn, err)
		return
	}
	logger.Log.Info("conversation connection open", zap.String("user_id", userID), zap.String("conversation_id", conversationID.String()))

	// 對方目前的上線狀態
	h.tracker.SendStatus(ctx, c)
	cancel()

	h.serve(conn, c, func(data []byte) error {
		return h.onConversationFrame(c, data)
	})
}

// HandleStanding /ws/notifications/:user_id, outbound only
func (h *ChatWebsocketHandler) HandleStanding(conn *websocket.Conn) {
	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.FrameTimeout)
	defer cancel()
	credential, _ := conn.Locals(LocalCredential).(string)

	c := hub.NewStandingConnection(conn.Params("user_id"), h.cfg.SendBuffer)
	if err := h.registry.Register(ctx, credential, c); err != nil {
		h.reject(conn, err)
		return
	}
	cancel()
	logger.Log.Info("standing connection open", zap.String("user_id", c.UserID))

	h.serve(conn, c, func([]byte) error {
		return fmt.Errorf("%w: notification connection does not accept frames", domain.ErrProtocol)
	})
}

// onConversationFrame each frame gets its own deadline, a hung store never holds the conversation lock past it
func (h *ChatWebsocketHandler) onConversationFrame(c *hub.Connection, data []byte) error {
	frame, err := domain.ParseInboundFrame(data)
	if err != nil {
		return err
	}
	if frame.Typing != nil {
		return h.uc.SetTyping(c.ConversationID, c.UserID, *frame.Typing)
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.FrameTimeout)
	defer cancel()
	_, err = h.uc.Send(ctx, c.ConversationID, c.UserID, *frame.Message)
	return err
}

// serve runs until the client leaves or breaks the protocol too often, then unregisters synchronously
func (h *ChatWebsocketHandler) serve(conn *websocket.Conn, c *hub.Connection, onFrame func([]byte) error) {
	pumpDone := make(chan struct{})
	go h.writePump(conn, c, pumpDone)

	closeErr := h.readLoop(conn, c, onFrame)

	h.registry.Unregister(c)
	h.uc.ConnectionClosed(c)
	<-pumpDone

	logger.Log.Info("websocket close", zap.String("user_id", c.UserID), zap.String("kind", string(c.Kind)))
	if closeErr != nil {
		closeWebSocketConnection(conn, domain.CloseCode(closeErr), closeErr.Error())
		return
	}
	conn.Close()
}

func (h *ChatWebsocketHandler) readLoop(conn *websocket.Conn, c *hub.Connection, onFrame func([]byte) error) error {
	pongWait := 2 * h.cfg.PingInterval
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))

	//server發出ping之後client連線正常會回pong
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	protocolErrors := 0
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				//直接斷線 1006
				logger.Log.Debug("websocket read error", zap.String("user_id", c.UserID), zap.Error(err))
			}
			return nil
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		if mt == websocket.TextMessage {
			err = onFrame(data)
		} else {
			err = fmt.Errorf("%w: only text frames are accepted", domain.ErrProtocol)
		}
		if err == nil {
			continue
		}

		sendError(c, err)
		if errors.Is(err, domain.ErrProtocol) {
			protocolErrors++
			if protocolErrors >= h.cfg.MaxProtocolErrors {
				logger.Log.Warn("too many protocol errors", zap.String("user_id", c.UserID), zap.Int("count", protocolErrors))
				return err
			}
		}
	}
}

// writePump the only writer of conn while the connection is open
func (h *ChatWebsocketHandler) writePump(conn *websocket.Conn, c *hub.Connection, done chan<- struct{}) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		close(done)
	}()

	write := func(payload []byte) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Log.Debug("write message error", zap.String("user_id", c.UserID), zap.Error(err))
			h.registry.Unregister(c)
			conn.Close()
			return false
		}
		return true
	}

	for {
		select {
		case payload := <-c.Egress():
			if !write(payload) {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logger.Log.Debug("ping error", zap.String("user_id", c.UserID), zap.Error(err))
				h.registry.Unregister(c)
				conn.Close()
				return
			}
		case <-c.Done():
			// flush what was queued before close (e.g. the last error frame)
			for {
				select {
				case payload := <-c.Egress():
					if !write(payload) {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func (h *ChatWebsocketHandler) reject(conn *websocket.Conn, err error) {
	logger.Log.Warn("websocket rejected", zap.Error(err))
	closeWebSocketConnection(conn, domain.CloseCode(err), err.Error())
}

// sendError error frame to this connection only
func sendError(c *hub.Connection, err error) {
	b, _ := json.Marshal(domain.ErrorFrame{Type: domain.FrameError, Error: publicError(err)})
	c.Send(b)
}

// publicError hide internal failures from clients
func publicError(err error) string {
	for _, kind := range []error{domain.ErrValidation, domain.ErrProtocol, domain.ErrAuthorization, domain.ErrAuth, domain.ErrNotFound} {
		if errors.Is(err, kind) {
			return err.Error()
		}
	}
	return "internal error"
}

func closeWebSocketConnection(conn *websocket.Conn, code int, reason string) {
	if len(reason) > maxCloseReason {
		reason = reason[:maxCloseReason]
	}
	if err := conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait)); err != nil {
		logger.Log.Debug("Failed to send CloseMessage", zap.Error(err))
	}
	conn.Close()
}
