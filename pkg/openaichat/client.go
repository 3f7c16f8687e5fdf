package openaichat

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/sansan0/trendradar/pkg/chat"
)

// Client 基于 eino 的 OpenAI 兼容模型客户端，
// 适用于任何提供标准 chat-completion 语义的服务端。
type Client struct {
	cm model.ChatModel
}

// NewClient 创建客户端并初始化底层模型
func NewClient(ctx context.Context, baseURL, apiKey, modelName string) (*Client, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &Client{cm: cm}, nil
}

// Ensure Client implements chat.Completer
var _ chat.Completer = (*Client)(nil)

// Complete implements chat.Completer
func (c *Client) Complete(ctx context.Context, req *chat.Request) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: req.System},
		{Role: schema.User, Content: req.User},
	}
	resp, err := c.cm.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}
