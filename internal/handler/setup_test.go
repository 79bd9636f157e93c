package handler_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/oaichat/internal/ai"
	"github.com/xxxsen/oaichat/internal/handler"
	"github.com/xxxsen/oaichat/internal/intent"
	"github.com/xxxsen/oaichat/internal/search"
	"github.com/xxxsen/oaichat/internal/service"
	"github.com/xxxsen/oaichat/internal/session"
)

func setupRouter(t *testing.T, searchCfg search.Config, completionArgs map[string]interface{}) *gin.Engine {
	gin.SetMode(gin.TestMode)
	classifier, err := intent.NewClassifier(nil)
	require.NoError(t, err)
	provider, err := ai.NewProvider("azure", completionArgs)
	require.NoError(t, err)
	chat := service.NewChatService(classifier, search.NewClient(searchCfg, nil), provider, "You are helpful.", 0)

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"), handler.RouterDeps{
		Chat:       handler.NewChatHandler(chat, session.NewRenderer()),
		Properties: handler.NewPropertiesHandler(chat),
	})
	return engine
}

func newServer(t *testing.T, engine *gin.Engine) *httptest.Server {
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}
