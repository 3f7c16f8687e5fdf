package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sansan0/trendradar/pkg/config"
)

// Notifier 将分析文本推送到已配置的通知渠道（飞书/钉钉/企业微信/Telegram）。
// 四个渠道收到的都是同一份未渲染的原始文本。
type Notifier struct {
	cfg          config.NotifyConfig
	client       *http.Client
	telegramBase string
}

// NewNotifier 创建通知器；配置了代理时所有渠道都走该代理。
func NewNotifier(cfg config.NotifyConfig) (*Notifier, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("无效的代理地址: %w", err)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}
	return &Notifier{
		cfg:          cfg,
		client:       client,
		telegramBase: "https://api.telegram.org",
	}, nil
}

// Result 单个渠道的推送结果
type Result struct {
	Status int
	Err    error
}

// RequestError 渠道返回非成功状态
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("渠道响应异常 (status %d): %s", e.Status, e.Detail)
}

// Send 逐渠道推送同一文本。渠道之间相互隔离：一个渠道失败只记录在结果里，
// 不影响其余渠道的尝试。未配置的渠道不会出现在结果中。
func (n *Notifier) Send(ctx context.Context, text string) map[string]Result {
	results := make(map[string]Result)

	if n.cfg.FeishuWebhookURL != "" {
		results["feishu"] = n.postJSON(ctx, n.cfg.FeishuWebhookURL, feishuPayload(text))
	}
	if n.cfg.DingTalkWebhookURL != "" {
		results["dingtalk"] = n.postJSON(ctx, n.cfg.DingTalkWebhookURL, dingtalkPayload(text))
	}
	if n.cfg.WeworkWebhookURL != "" {
		results["wework"] = n.postJSON(ctx, n.cfg.WeworkWebhookURL, weworkPayload(text))
	}
	if n.cfg.TelegramBotToken != "" || n.cfg.TelegramChatID != "" {
		results["telegram"] = n.sendTelegram(ctx, text)
	}

	return results
}

func (n *Notifier) postJSON(ctx context.Context, u string, payload any) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Result{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return n.do(req)
}

func (n *Notifier) postForm(ctx context.Context, u string, form url.Values) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return n.do(req)
}

func (n *Notifier) do(req *http.Request) Result {
	res, err := n.client.Do(req)
	if err != nil {
		return Result{Err: err}
	}
	defer res.Body.Close()

	detail, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return Result{
			Status: res.StatusCode,
			Err:    &RequestError{Status: res.StatusCode, Detail: strings.TrimSpace(string(detail))},
		}
	}
	return Result{Status: res.StatusCode}
}
