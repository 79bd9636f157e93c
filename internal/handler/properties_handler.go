package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/oaichat/internal/pkg/response"
	"github.com/xxxsen/oaichat/internal/service"
)

type PropertiesHandler struct {
	chat *service.ChatService
}

func NewPropertiesHandler(chat *service.ChatService) *PropertiesHandler {
	return &PropertiesHandler{chat: chat}
}

func (h *PropertiesHandler) Get(c *gin.Context) {
	response.Success(c, gin.H{
		"search_enabled":     h.chat.SearchEnabled(),
		"completion_enabled": h.chat.CompletionEnabled(),
		"provider":           h.chat.ProviderName(),
	})
}
