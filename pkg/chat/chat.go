package chat

import (
	"context"
	"fmt"
)

// Completer 定义通用的对话补全接口
type Completer interface {
	Complete(ctx context.Context, req *Request) (string, error)
}

// Request 一次补全请求的 system/user 消息对
type Request struct {
	System string
	User   string
}

// RequestError 上游接口返回非成功状态；只报告状态与细节，不自动重试。
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("chat api error (status %d): %s", e.Status, e.Body)
}
