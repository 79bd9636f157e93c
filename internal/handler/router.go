package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Chat       *ChatHandler
	Properties *PropertiesHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/properties", deps.Properties.Get)

	api.GET("/chat", deps.Chat.Page)
	api.GET("/chat/ws", deps.Chat.WebSocket)
	api.POST("/chat/query", deps.Chat.Query)
}
