package notify

// feishuMessage 飞书自定义机器人文本消息
type feishuMessage struct {
	MsgType string        `json:"msg_type"`
	Content feishuContent `json:"content"`
}

type feishuContent struct {
	Text string `json:"text"`
}

func feishuPayload(text string) any {
	return feishuMessage{MsgType: "text", Content: feishuContent{Text: text}}
}
