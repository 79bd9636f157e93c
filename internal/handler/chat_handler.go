package handler

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/oaichat/internal/bridge"
	"github.com/xxxsen/oaichat/internal/model"
	appErr "github.com/xxxsen/oaichat/internal/pkg/errors"
	"github.com/xxxsen/oaichat/internal/pkg/response"
	"github.com/xxxsen/oaichat/internal/service"
	"github.com/xxxsen/oaichat/internal/session"
)

//go:embed static/chat.html
var chatPage []byte

type ChatHandler struct {
	chat     *service.ChatService
	renderer *session.Renderer
	upgrader websocket.Upgrader
}

func NewChatHandler(chat *service.ChatService, renderer *session.Renderer) *ChatHandler {
	return &ChatHandler{
		chat:     chat,
		renderer: renderer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the view is served by an editor webview whose origin varies
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type chatQueryRequest struct {
	Query       string `json:"query"`
	FileContent string `json:"file_content"`
}

func (h *ChatHandler) Page(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", chatPage)
}

func (h *ChatHandler) Query(c *gin.Context) {
	var req chatQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, fmt.Errorf("bind chat query: %w", appErr.ErrInvalid))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		response.Invalid(c, "query is empty")
		return
	}
	reply := h.chat.Exchange(c.Request.Context(), model.Query{Text: req.Query, FileContent: req.FileContent})
	rendered := h.renderer.Render(reply.Message)
	response.Success(c, gin.H{
		"intent":   reply.Intent,
		"text":     rendered.Text,
		"markdown": rendered.Markdown,
		"html":     rendered.HTML,
	})
}

func (h *ChatHandler) WebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logutil.GetLogger(c.Request.Context()).Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	bridge.New(conn, h.chat, h.renderer).Serve(c.Request.Context())
}
