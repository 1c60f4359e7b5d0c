package router

import (
	"realtime_chat_service/internal/chat/app"
	"realtime_chat_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes 注册聊天相关的路由
// @title Realtime Chat Service API
// @version 1.0
// @description Chat history, seen state, recent chats and presence
// @host localhost:8081
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func RegisterRoutes(r *fiber.App, resolver middlewares.CredentialResolver, ws *app.ChatWebsocketHandler, rest *app.ChatRestHandler) {
	r.Get("/swagger/*", swagger.HandlerDefault)
	r.Get("/", app.ConnectCheck)
	r.Post("/debug", app.DebugLogFlag)

	// websocket 自行驗證 credential, 失敗以 close code 回覆
	wsRoutes := r.Group("/ws", app.WebsocketUpgrade)
	wsRoutes.Get("/conversations/:conversation_id", websocket.New(ws.HandleConversation))
	wsRoutes.Get("/notifications/:user_id", websocket.New(ws.HandleStanding))

	auth := middlewares.JWTMiddleware(resolver)
	r.Get("/conversations/:peer/messages", auth, rest.GetHistory)
	r.Post("/conversations/:peer/mark-seen", auth, rest.MarkSeen)
	r.Get("/chats/recent", auth, rest.RecentChats)
	r.Get("/presence/:user_id", auth, rest.Presence)
}
