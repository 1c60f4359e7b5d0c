package app

import (
	"errors"
	"fmt"
	"strconv"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/hub"
	"realtime_chat_service/pkg/logger"
	"realtime_chat_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChatRestHandler history / seen / recent chats / presence over http
type ChatRestHandler struct {
	uc      *ConversationUseCase
	tracker *hub.Tracker
}

// NewChatRestHandler create ChatRestHandler
func NewChatRestHandler(uc *ConversationUseCase, tracker *hub.Tracker) *ChatRestHandler {
	return &ChatRestHandler{uc: uc, tracker: tracker}
}

// MarkSeenResponse mark-seen result
type MarkSeenResponse struct {
	ConversationID domain.ConversationID `json:"conversation_id"`
	Updated        int64                 `json:"updated"`
}

// ErrorResponse error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetHistory conversation history
// @Summary Conversation history
// @Description All messages between the caller and peer, oldest first
// @Tags Chat
// @Param peer path string true "Peer user id"
// @Security BearerAuth
// @Success 200 {array} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /conversations/{peer}/messages [get]
func (h *ChatRestHandler) GetHistory(c *fiber.Ctx) error {
	me := middlewares.MemberID(c)
	conversationID, err := h.uc.OpenConversation(c.UserContext(), me, c.Params("peer"))
	if err != nil {
		return respondError(c, err)
	}
	msgs, err := h.uc.FetchHistory(c.UserContext(), conversationID, me)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msgs)
}

// MarkSeen mark peer messages seen
// @Summary Mark conversation seen
// @Description Sets seen_at on every unseen message the peer sent to the caller
// @Tags Chat
// @Param peer path string true "Peer user id"
// @Security BearerAuth
// @Success 200 {object} MarkSeenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /conversations/{peer}/mark-seen [post]
func (h *ChatRestHandler) MarkSeen(c *fiber.Ctx) error {
	me := middlewares.MemberID(c)
	conversationID, err := h.uc.OpenConversation(c.UserContext(), me, c.Params("peer"))
	if err != nil {
		return respondError(c, err)
	}
	n, err := h.uc.MarkSeen(c.UserContext(), conversationID, me)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(MarkSeenResponse{ConversationID: conversationID, Updated: n})
}

// RecentChats recent chats with unseen counts
// @Summary Recent chats
// @Description Last message and unseen count per peer, newest first, plus the badge total
// @Tags Chat
// @Security BearerAuth
// @Success 200 {object} domain.RecentChats
// @Failure 401 {object} ErrorResponse
// @Router /chats/recent [get]
func (h *ChatRestHandler) RecentChats(c *fiber.Ctx) error {
	recent, err := h.uc.RecentChats(c.UserContext(), middlewares.MemberID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recent)
}

// Presence user presence
// @Summary User presence
// @Description online, or offline with last seen
// @Tags Presence
// @Param user_id path string true "User id"
// @Security BearerAuth
// @Success 200 {object} domain.StatusFrame
// @Failure 401 {object} ErrorResponse
// @Router /presence/{user_id} [get]
func (h *ChatRestHandler) Presence(c *fiber.Ctx) error {
	rec, err := h.tracker.Status(c.UserContext(), c.Params("user_id"))
	if err != nil {
		logger.Log.Warn("presence lookup", zap.String("user_id", rec.UserID), zap.Error(err))
	}
	return c.JSON(domain.NewStatusFrame(rec))
}

// ConnectCheck check service start
// @Summary Check chat service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "chat service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("chat service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param status query bool true "Debug status"
// @Success 200 {string} string "debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	statusStr := c.Query("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	logger.Log.SetDebugMode(status)
	return c.SendString(fmt.Sprintf("debug mode is : %t", logger.Log.IsDebugMode()))
}

// StatusCode http status of an error kind
func StatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrAuth):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrAuthorization):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrProtocol):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(StatusCode(err)).JSON(ErrorResponse{Error: publicError(err)})
}
