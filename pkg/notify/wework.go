package notify

// weworkMessage 企业微信机器人 markdown 消息
type weworkMessage struct {
	MsgType  string         `json:"msgtype"`
	Markdown weworkMarkdown `json:"markdown"`
}

type weworkMarkdown struct {
	Content string `json:"content"`
}

func weworkPayload(text string) any {
	return weworkMessage{MsgType: "markdown", Markdown: weworkMarkdown{Content: text}}
}
