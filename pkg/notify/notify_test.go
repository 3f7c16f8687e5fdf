package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sansan0/trendradar/pkg/config"
)

func TestSendChannelIsolation(t *testing.T) {
	var feishuBody, weworkBody []byte

	feishuSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		feishuBody, _ = io.ReadAll(r.Body)
	}))
	defer feishuSrv.Close()

	// 钉钉渠道故意返回 500，不应影响其他渠道
	dingSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer dingSrv.Close()

	weworkSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		weworkBody, _ = io.ReadAll(r.Body)
	}))
	defer weworkSrv.Close()

	n, err := NewNotifier(config.NotifyConfig{
		FeishuWebhookURL:   feishuSrv.URL,
		DingTalkWebhookURL: dingSrv.URL,
		WeworkWebhookURL:   weworkSrv.URL,
	})
	if err != nil {
		t.Fatalf("NewNotifier: %v", err)
	}

	results := n.Send(context.Background(), "今日分析")
	if len(results) != 3 {
		t.Fatalf("应有 3 个渠道的结果, got %d", len(results))
	}
	if results["feishu"].Err != nil || results["wework"].Err != nil {
		t.Errorf("成功渠道不应带错误: %+v", results)
	}

	var reqErr *RequestError
	if !errors.As(results["dingtalk"].Err, &reqErr) {
		t.Fatalf("钉钉失败应返回 *RequestError, got %v", results["dingtalk"].Err)
	}
	if reqErr.Status != http.StatusInternalServerError || reqErr.Detail != "boom" {
		t.Errorf("RequestError = %+v", reqErr)
	}

	var fm feishuMessage
	if err := json.Unmarshal(feishuBody, &fm); err != nil || fm.MsgType != "text" || fm.Content.Text != "今日分析" {
		t.Errorf("飞书请求体不符: %s", feishuBody)
	}
	var wm weworkMessage
	if err := json.Unmarshal(weworkBody, &wm); err != nil || wm.MsgType != "markdown" || wm.Markdown.Content != "今日分析" {
		t.Errorf("企业微信请求体不符: %s", weworkBody)
	}
}

func TestSendSkipsUnconfiguredChannels(t *testing.T) {
	n, err := NewNotifier(config.NotifyConfig{})
	if err != nil {
		t.Fatalf("NewNotifier: %v", err)
	}
	results := n.Send(context.Background(), "text")
	if len(results) != 0 {
		t.Errorf("未配置任何渠道时结果应为空, got %+v", results)
	}
}

func TestTelegramHalfConfigured(t *testing.T) {
	n, err := NewNotifier(config.NotifyConfig{TelegramBotToken: "token-only"})
	if err != nil {
		t.Fatalf("NewNotifier: %v", err)
	}
	results := n.Send(context.Background(), "text")
	r, ok := results["telegram"]
	if !ok {
		t.Fatalf("半配置的 telegram 渠道应出现在结果中")
	}
	if !errors.Is(r.Err, ErrTelegramConfig) {
		t.Errorf("err = %v, want ErrTelegramConfig", r.Err)
	}
}

func TestTelegramSendForm(t *testing.T) {
	var gotPath string
	var gotForm map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		gotForm = r.PostForm
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n, err := NewNotifier(config.NotifyConfig{
		TelegramBotToken: "123:abc",
		TelegramChatID:   "42",
	})
	if err != nil {
		t.Fatalf("NewNotifier: %v", err)
	}
	n.telegramBase = srv.URL

	results := n.Send(context.Background(), "*加粗*")
	r := results["telegram"]
	if r.Err != nil {
		t.Fatalf("telegram: %v", r.Err)
	}
	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotForm["chat_id"][0] != "42" || gotForm["text"][0] != "*加粗*" || gotForm["parse_mode"][0] != "Markdown" {
		t.Errorf("form = %+v", gotForm)
	}
}

func TestDingTalkPayloadShape(t *testing.T) {
	body, err := json.Marshal(dingtalkPayload("正文"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(body)
	if !strings.Contains(s, `"msgtype":"markdown"`) || !strings.Contains(s, `"title":"AI深度分析"`) {
		t.Errorf("payload = %s", s)
	}
}

func TestNewNotifierBadProxy(t *testing.T) {
	if _, err := NewNotifier(config.NotifyConfig{ProxyURL: "://bad"}); err == nil {
		t.Errorf("非法代理地址应返回错误")
	}
}
