package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrTelegramConfig Telegram 渠道需要同时配置 bot token 与 chat id
var ErrTelegramConfig = errors.New("telegram 渠道配置不完整: 需要同时设置 bot token 与 chat id")

func (n *Notifier) sendTelegram(ctx context.Context, text string) Result {
	if n.cfg.TelegramBotToken == "" || n.cfg.TelegramChatID == "" {
		return Result{Err: ErrTelegramConfig}
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.telegramBase, n.cfg.TelegramBotToken)
	form := url.Values{}
	form.Set("chat_id", n.cfg.TelegramChatID)
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")
	return n.postForm(ctx, endpoint, form)
}
