package service

import (
	"context"
	"errors"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/oaichat/internal/ai"
	"github.com/xxxsen/oaichat/internal/intent"
	"github.com/xxxsen/oaichat/internal/model"
	"github.com/xxxsen/oaichat/internal/search"
	"github.com/xxxsen/oaichat/internal/session"
)

const (
	StateIdle               = "idle"
	StateAwaitingSearch     = "awaiting_search"
	StateAwaitingCompletion = "awaiting_completion"

	contextBegin = "[BEGIN AZURE AI SEARCH CONTEXT]"
	contextEnd   = "[END AZURE AI SEARCH CONTEXT]"
	fileBegin    = "[BEGIN ATTACHED FILE]"
	fileEnd      = "[END ATTACHED FILE]"
)

type Searcher interface {
	Ready() bool
	URL() string
	ContentFields() []string
	Search(ctx context.Context, query string) ([]search.Document, error)
}

type ChatService struct {
	classifier   *intent.Classifier
	searcher     Searcher
	provider     ai.IProvider
	systemPrompt string
	maxTokens    int
}

func NewChatService(classifier *intent.Classifier, searcher Searcher, provider ai.IProvider, systemPrompt string, maxTokens int) *ChatService {
	return &ChatService{
		classifier:   classifier,
		searcher:     searcher,
		provider:     provider,
		systemPrompt: systemPrompt,
		maxTokens:    maxTokens,
	}
}

func (s *ChatService) SearchEnabled() bool {
	return s.searcher != nil && s.searcher.Ready()
}

func (s *ChatService) CompletionEnabled() bool {
	return ai.Ready(s.provider)
}

func (s *ChatService) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// Exchange runs one query through classify, optional search and completion.
// It never fails: every problem is confined to the returned reply.
func (s *ChatService) Exchange(ctx context.Context, q model.Query) *model.Reply {
	logger := logutil.GetLogger(ctx)
	kind := s.classifier.Classify(q.Text)
	logger.Info("user query", zap.String("query", q.Text), zap.String("intent", string(kind)))

	states := []string{StateIdle}
	var contextBlock string
	if kind != intent.Courtesy && s.SearchEnabled() {
		states = append(states, StateAwaitingSearch)
		contextBlock = s.augment(ctx, q.Text)
	}
	states = append(states, StateAwaitingCompletion)
	text := s.complete(ctx, q, contextBlock)
	states = append(states, StateIdle)

	return &model.Reply{
		Intent: string(kind),
		Message: model.ChatMessage{
			Role:     model.RoleAI,
			Text:     text,
			Markdown: !session.IsError(text),
		},
		States: states,
	}
}

func (s *ChatService) augment(ctx context.Context, query string) string {
	logger := logutil.GetLogger(ctx)
	logger.Info("search request", zap.String("url", s.searcher.URL()))
	docs, err := s.searcher.Search(ctx, query)
	if err != nil {
		logger.Error("search failed, continue without context", zap.String("detail", "Azure Search error: "+err.Error()))
		return ""
	}
	if len(docs) == 0 {
		logger.Info("search returned no results")
		return ""
	}
	fields := s.searcher.ContentFields()
	for i, doc := range docs {
		if _, ok := search.Snippet(doc, fields); !ok {
			logger.Warn("search document has no content field, using full document",
				zap.Int("result", i+1), zap.Strings("fields", fields))
		}
	}
	block := search.BuildContext(docs, fields)
	logger.Debug("search context snippet", zap.Int("results", len(docs)), zap.String("snippet", block))
	return block
}

// BuildMessages assembles the system and user messages for one exchange.
func BuildMessages(systemPrompt string, contextBlock string, q model.Query) []ai.Message {
	system := systemPrompt
	if contextBlock != "" {
		system += "\n\n" + contextBegin + "\n" + contextBlock + "\n" + contextEnd
	}
	user := q.Text
	if strings.TrimSpace(q.FileContent) != "" {
		user += "\n\n" + fileBegin + "\n" + q.FileContent + "\n" + fileEnd
	}
	return []ai.Message{
		{Role: ai.RoleSystem, Content: system},
		{Role: ai.RoleUser, Content: user},
	}
}

func (s *ChatService) complete(ctx context.Context, q model.Query, contextBlock string) string {
	if s.provider == nil {
		return "Echo: " + q.Text
	}
	logger := logutil.GetLogger(ctx)
	msgs := BuildMessages(s.systemPrompt, contextBlock, q)
	logger.Debug("system prompt", zap.String("provider", s.provider.Name()), zap.String("prompt", msgs[0].Content))
	text, err := s.provider.Complete(ctx, &ai.CompletionRequest{Messages: msgs, MaxTokens: s.maxTokens})
	if errors.Is(err, ai.ErrUnavailable) {
		return "Echo: " + q.Text
	}
	if err != nil {
		logger.Error("completion failed", zap.String("provider", s.provider.Name()), zap.Error(err))
		return "Error: " + err.Error()
	}
	if text == "" {
		return ai.NoResponse
	}
	return text
}
