package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sansan0/trendradar/pkg/chat"
)

const (
	defaultBaseURL = "https://api.deepseek.com/v1/chat/completions"
	defaultModel   = "deepseek-chat"
)

// Client DeepSeek Chat API 客户端
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
}

// NewClient 创建一个新的 DeepSeek 客户端
func NewClient(baseURL, apiKey, model string, temperature float64) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if temperature <= 0 {
		temperature = 0.2
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Ensure Client implements chat.Completer
var _ chat.Completer = (*Client)(nil)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete 调用 chat-completion 接口并返回文本结果。
// 响应缺少标准 choices 结构时，原样透出接口返回的 JSON。
func (c *Client) Complete(ctx context.Context, req *chat.Request) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: c.temperature,
		Stream:      false,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", &chat.RequestError{Status: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var cr completionResponse
	if err := json.Unmarshal(body, &cr); err == nil && len(cr.Choices) > 0 {
		if content := strings.TrimSpace(cr.Choices[0].Message.Content); content != "" {
			return content, nil
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body), nil
	}
	return buf.String(), nil
}
