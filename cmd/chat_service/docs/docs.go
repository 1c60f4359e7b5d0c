// Package docs swagger document of the chat REST API, served at /swagger/*.
// 手動維護: 與 internal/chat/app/rest_handler.go 的 swag 註解同步 (router 測試會比對路由)
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Returns a simple confirmation message",
                "tags": ["Shared"],
                "summary": "Check chat service status",
                "responses": {
                    "200": {"description": "chat service start!", "schema": {"type": "string"}}
                }
            }
        },
        "/chats/recent": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Last message and unseen count per peer, newest first, plus the badge total",
                "tags": ["Chat"],
                "summary": "Recent chats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.RecentChats"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/app.ErrorResponse"}}
                }
            }
        },
        "/conversations/{peer}/mark-seen": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Sets seen_at on every unseen message the peer sent to the caller",
                "tags": ["Chat"],
                "summary": "Mark conversation seen",
                "parameters": [
                    {"type": "string", "description": "Peer user id", "name": "peer", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/app.MarkSeenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/app.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/app.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/app.ErrorResponse"}}
                }
            }
        },
        "/conversations/{peer}/messages": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "All messages between the caller and peer, oldest first",
                "tags": ["Chat"],
                "summary": "Conversation history",
                "parameters": [
                    {"type": "string", "description": "Peer user id", "name": "peer", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Message"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/app.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/app.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/app.ErrorResponse"}}
                }
            }
        },
        "/debug": {
            "post": {
                "description": "Enable or disable debug logging",
                "tags": ["Shared"],
                "summary": "Toggle Debug Log Flag",
                "parameters": [
                    {"type": "boolean", "description": "Debug status", "name": "status", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "debug mode updated", "schema": {"type": "string"}},
                    "400": {"description": "Invalid status value", "schema": {"type": "string"}}
                }
            }
        },
        "/presence/{user_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "online, or offline with last seen",
                "tags": ["Presence"],
                "summary": "User presence",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.StatusFrame"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/app.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "app.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "app.MarkSeenResponse": {
            "type": "object",
            "properties": {
                "conversation_id": {"type": "string"},
                "updated": {"type": "integer"}
            }
        },
        "domain.ConversationSummary": {
            "type": "object",
            "properties": {
                "conversation_id": {"type": "string"},
                "last_message": {"$ref": "#/definitions/domain.Message"},
                "peer_id": {"type": "string"},
                "peer_name": {"type": "string"},
                "unseen_count": {"type": "integer"}
            }
        },
        "domain.Message": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "conversation_id": {"type": "string"},
                "created_at": {"type": "integer"},
                "id": {"type": "string"},
                "seen_at": {"type": "integer"},
                "sender_id": {"type": "string"}
            }
        },
        "domain.RecentChats": {
            "type": "object",
            "properties": {
                "chats": {"type": "array", "items": {"$ref": "#/definitions/domain.ConversationSummary"}},
                "total_unseen_messages": {"type": "integer"}
            }
        },
        "domain.StatusFrame": {
            "type": "object",
            "properties": {
                "last_seen": {"type": "string"},
                "status": {"type": "string"},
                "type": {"type": "string"},
                "user_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8081",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Realtime Chat Service API",
	Description:      "Chat history, seen state, recent chats and presence",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
