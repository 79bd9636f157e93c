package bridge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/oaichat/internal/model"
	"github.com/xxxsen/oaichat/internal/session"
)

type stubExchanger struct {
	delays map[string]time.Duration
}

func (s *stubExchanger) Exchange(ctx context.Context, q model.Query) *model.Reply {
	time.Sleep(s.delays[q.Text])
	return &model.Reply{
		Intent:  "technical",
		Message: model.ChatMessage{Role: model.RoleAI, Text: "re: " + q.Text, Markdown: true},
	}
}

func (s *stubExchanger) SearchEnabled() bool     { return false }
func (s *stubExchanger) CompletionEnabled() bool { return true }

func startBridge(t *testing.T, chat Exchanger) (*websocket.Conn, func() *Bridge) {
	var mu sync.Mutex
	var current *Bridge
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		b := New(conn, chat, session.NewRenderer())
		mu.Lock()
		current = b
		mu.Unlock()
		b.Serve(context.Background())
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, func() *Bridge {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
}

func read(t *testing.T, conn *websocket.Conn) Outbound {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var out Outbound
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

// placeReply mirrors the view: a reply goes after the user entry carrying
// the same seq and any replies already placed behind it.
func placeReply(view []model.ChatMessage, seqs []uint64, reply Outbound) ([]model.ChatMessage, []uint64) {
	for i, seq := range seqs {
		if view[i].Role != model.RoleUser || seq != reply.Seq {
			continue
		}
		at := i + 1
		for at < len(view) && view[at].Role != model.RoleUser {
			at++
		}
		out := append([]model.ChatMessage{}, view[:at]...)
		out = append(out, model.ChatMessage{Role: model.RoleAI, Text: reply.Text})
		out = append(out, view[at:]...)
		outSeqs := append([]uint64{}, seqs[:at]...)
		outSeqs = append(outSeqs, reply.Seq)
		outSeqs = append(outSeqs, seqs[at:]...)
		return out, outSeqs
	}
	return view, seqs
}

func TestBridge_HistoryKeepsSubmissionOrder(t *testing.T) {
	chat := &stubExchanger{delays: map[string]time.Duration{"slow": 200 * time.Millisecond}}
	conn, current := startBridge(t, chat)

	require.NoError(t, conn.WriteJSON(Inbound{Command: CommandSendQuery, Query: "slow"}))
	require.NoError(t, conn.WriteJSON(Inbound{Command: CommandSendQuery, Query: "fast"}))
	view := []model.ChatMessage{
		{Role: model.RoleUser, Text: "slow"},
		{Role: model.RoleUser, Text: "fast"},
	}
	seqs := []uint64{1, 2}

	first := read(t, conn)
	second := read(t, conn)
	require.Equal(t, "re: fast", first.Text)
	require.Equal(t, uint64(2), first.Seq)
	require.Equal(t, "re: slow", second.Text)
	require.Equal(t, uint64(1), second.Seq)
	require.Contains(t, second.HTML, "re: slow")

	view, seqs = placeReply(view, seqs, first)
	view, _ = placeReply(view, seqs, second)
	texts := make([]string, 0, len(view))
	for _, m := range view {
		texts = append(texts, m.Text)
	}
	require.Equal(t, []string{"slow", "re: slow", "fast", "re: fast"}, texts)

	hist := current().Session().History()
	require.Len(t, hist, 4)
	for i, m := range hist {
		require.Equal(t, texts[i], m.Text)
	}
}

func TestBridge_SeqCountsOnlyAcceptedQueries(t *testing.T) {
	conn, _ := startBridge(t, &stubExchanger{})

	require.NoError(t, conn.WriteJSON(Inbound{Command: CommandSendQuery, Query: "   "}))
	require.NoError(t, conn.WriteJSON(Inbound{Command: CommandShowHelp}))
	require.Equal(t, CommandAdaptiveCard, read(t, conn).Command)
	require.NoError(t, conn.WriteJSON(Inbound{Command: CommandClearHistory}))
	require.Equal(t, CommandHistoryCleared, read(t, conn).Command)

	require.NoError(t, conn.WriteJSON(Inbound{Command: CommandSendQuery, Query: "first"}))
	out := read(t, conn)
	require.Equal(t, "re: first", out.Text)
	require.Equal(t, uint64(1), out.Seq)

	require.NoError(t, conn.WriteJSON(Inbound{Command: CommandSendQuery, Query: "second"}))
	out = read(t, conn)
	require.Equal(t, uint64(2), out.Seq)
}

func TestBridge_ClearDropsLateReply(t *testing.T) {
	chat := &stubExchanger{delays: map[string]time.Duration{"slow": 200 * time.Millisecond}}
	conn, current := startBridge(t, chat)

	require.NoError(t, conn.WriteJSON(Inbound{Command: CommandSendQuery, Query: "slow"}))
	require.NoError(t, conn.WriteJSON(Inbound{Command: CommandClearHistory}))
	require.Equal(t, CommandHistoryCleared, read(t, conn).Command)

	require.NoError(t, conn.WriteJSON(Inbound{Command: CommandAttachFile, FileName: "a.txt"}))
	require.Equal(t, CommandFileAttached, read(t, conn).Command)

	time.Sleep(400 * time.Millisecond)
	require.Empty(t, current().Session().History())
}
