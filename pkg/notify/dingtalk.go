package notify

// dingtalkMessage 钉钉机器人 markdown 消息
type dingtalkMessage struct {
	MsgType  string           `json:"msgtype"`
	Markdown dingtalkMarkdown `json:"markdown"`
}

type dingtalkMarkdown struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func dingtalkPayload(text string) any {
	return dingtalkMessage{
		MsgType:  "markdown",
		Markdown: dingtalkMarkdown{Title: "AI深度分析", Text: text},
	}
}
