package bridge

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/oaichat/internal/model"
	"github.com/xxxsen/oaichat/internal/session"
)

type Exchanger interface {
	Exchange(ctx context.Context, q model.Query) *model.Reply
	SearchEnabled() bool
	CompletionEnabled() bool
}

// Bridge relays messages between one display view and the chat service.
type Bridge struct {
	conn     *websocket.Conn
	chat     Exchanger
	renderer *session.Renderer
	sess     *session.Session

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

func New(conn *websocket.Conn, chat Exchanger, renderer *session.Renderer) *Bridge {
	return &Bridge{
		conn:     conn,
		chat:     chat,
		renderer: renderer,
		sess:     session.New(),
	}
}

func (b *Bridge) Session() *session.Session {
	return b.sess
}

// Serve reads until the view goes away. Every query runs on its own
// goroutine; Serve waits for them before returning.
func (b *Bridge) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		b.wg.Wait()
	}()
	logger := logutil.GetLogger(ctx).With(zap.String("session_id", b.sess.ID))
	logger.Info("chat view connected")
	for {
		_, data, err := b.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("chat view read failed", zap.Error(err))
			}
			logger.Info("chat view disconnected", zap.Int("history", len(b.sess.History())))
			return
		}
		var msg Inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("invalid chat view message", zap.Error(err))
			continue
		}
		b.dispatch(ctx, msg)
	}
}

func (b *Bridge) dispatch(ctx context.Context, msg Inbound) {
	logger := logutil.GetLogger(ctx).With(zap.String("session_id", b.sess.ID))
	switch msg.Command {
	case CommandSendQuery:
		if strings.TrimSpace(msg.Query) == "" {
			return
		}
		b.sess.AppendUser(msg.Query)
		slot := b.sess.Reserve()
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			reply := b.chat.Exchange(ctx, model.Query{Text: msg.Query, FileContent: msg.FileContent})
			if !b.sess.Fill(slot, reply.Message) {
				logger.Info("reply dropped, history cleared")
				return
			}
			b.send(ctx, responseMessage(slot.Seq, b.renderer.Render(reply.Message)))
		}()
	case CommandAttachFile:
		b.send(ctx, Outbound{Command: CommandFileAttached, Text: "File attached: " + msg.FileName})
	case CommandShowHelp:
		card := model.HelpCard(b.chat.SearchEnabled(), b.chat.CompletionEnabled())
		b.sess.AppendAI(model.ChatMessage{Role: model.RoleAI, Card: card})
		b.send(ctx, Outbound{Command: CommandAdaptiveCard, Card: card})
	case CommandClearHistory:
		b.sess.Clear()
		b.send(ctx, Outbound{Command: CommandHistoryCleared})
	default:
		logger.Warn("unknown chat view command", zap.String("command", msg.Command))
	}
}

func (b *Bridge) send(ctx context.Context, out Outbound) {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	if err := b.conn.WriteJSON(out); err != nil {
		logutil.GetLogger(ctx).Warn("write to chat view failed",
			zap.String("session_id", b.sess.ID), zap.String("command", out.Command), zap.Error(err))
	}
}
