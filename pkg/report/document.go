package report

import (
	"fmt"
	"html/template"
	"strings"
)

// BuildDocument 将原始分析文本渲染为自包含的静态 HTML 报告：
// 分块 → 渲染 → 卡片化 → 套入固定页面模板。整个流程是一次线性遍历，
// 所有状态都属于本次调用，可安全并发处理互不相关的输入。
func BuildDocument(text string) string {
	nodes := Cardify(RenderBlocks(ParseBlocks(text)))

	var body strings.Builder
	for _, n := range nodes {
		writeNode(&body, n)
	}

	var out strings.Builder
	// 模板固定不变，Execute 不会失败
	_ = pageTpl.Execute(&out, pageData{Body: template.HTML(body.String())})
	return out.String()
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

func writeNode(b *strings.Builder, n Node) {
	switch n.Kind {
	case NodeHeading:
		tag := "h3"
		if n.Level == 4 {
			tag = "h4"
		}
		fmt.Fprintf(b, "<%s>%s</%s>\n", tag, esc(n.Text), tag)
	case NodeList:
		b.WriteString("<ul>\n")
		for _, it := range n.Items {
			fmt.Fprintf(b, "<li>%s</li>\n", esc(it))
		}
		b.WriteString("</ul>\n")
	case NodeTable:
		writeTable(b, n.Rows)
	case NodeRule:
		b.WriteString("<hr style=\"border:none;border-top:1px solid #eee; margin:12px 0;\" />\n")
	case NodeParagraph:
		fmt.Fprintf(b, "<p>%s</p>\n", esc(n.Text))
	case NodeCard:
		writeCard(b, n.Card)
	}
}

// writeTable 逐行渲染，行与行的列数允许不一致
func writeTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	b.WriteString("<table><thead><tr>")
	for _, h := range rows[0] {
		fmt.Fprintf(b, "<th>%s</th>", esc(h))
	}
	b.WriteString("</tr></thead><tbody>\n")
	for _, row := range rows[1:] {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(b, "<td>%s</td>", esc(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody></table>\n")
}

func writeCard(b *strings.Builder, c *Card) {
	b.WriteString("<div class=\"card\">\n")
	fmt.Fprintf(b, "<div class=\"card-title\">%s</div>\n", esc(c.Title))
	if len(c.Meta) > 0 {
		b.WriteString("<div class=\"meta\">\n")
		for _, m := range c.Meta {
			v := m.Value
			if v == "" {
				v = "-"
			}
			fmt.Fprintf(b, "<div class=\"meta-item\"><span class=\"meta-label\">%s</span><span class=\"meta-value\">%s</span></div>\n",
				esc(m.Label), esc(v))
		}
		b.WriteString("</div>\n")
	}
	if c.NoteText != "" {
		fmt.Fprintf(b, "<div><span class=\"sub-title\">%s</span>：%s</div>\n", esc(c.NoteLabel), esc(c.NoteText))
	}
	if c.Text != "" {
		fmt.Fprintf(b, "<p>%s</p>\n", esc(c.Text))
	}
	for _, l := range c.Lists {
		if l.Label != "" {
			fmt.Fprintf(b, "<div class=\"sub-title\">%s</div>\n", esc(l.Label))
		}
		b.WriteString("<ul class=\"list\">\n")
		for _, it := range l.Items {
			fmt.Fprintf(b, "<li>%s</li>\n", esc(it))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</div>\n")
}

type pageData struct {
	Body template.HTML
}

var pageTpl = template.Must(template.New("report").Parse(pageShell))

// 页面外壳：头部元信息、保存为图片按钮、页脚项目链接。
// 生成时间由页面脚本在打开时填充。
const pageShell = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>AI 深度分析报告 · TrendRadar</title>
  <script src="https://cdnjs.cloudflare.com/ajax/libs/html2canvas/1.4.1/html2canvas.min.js" crossorigin="anonymous"></script>
  <style>
    * { box-sizing: border-box; }
    body {
        font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', system-ui, sans-serif;
        margin: 0;
        padding: 16px;
        background: #fafafa;
        color: #333;
        line-height: 1.5;
    }
    .container {
        max-width: 600px;
        margin: 0 auto;
        background: white;
        border-radius: 12px;
        overflow: hidden;
        box-shadow: 0 2px 16px rgba(0,0,0,0.06);
    }
    .header {
        background: linear-gradient(135deg, #4f46e5 0%, #7c3aed 100%);
        color: white;
        padding: 32px 24px;
        text-align: center;
        position: relative;
    }
    .save-buttons { position: absolute; top: 16px; right: 16px; display: flex; gap: 8px; }
    .save-btn {
        background: rgba(255, 255, 255, 0.2);
        border: 1px solid rgba(255, 255, 255, 0.3);
        color: white; padding: 8px 16px; border-radius: 6px; cursor: pointer;
        font-size: 13px; font-weight: 500; transition: all 0.2s ease; backdrop-filter: blur(10px);
        white-space: nowrap;
    }
    .save-btn:hover { background: rgba(255,255,255,0.3); border-color: rgba(255,255,255,0.5); transform: translateY(-1px); }
    .header-title { font-size: 22px; font-weight: 700; margin: 0 0 20px 0; }
    .header-info { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; font-size: 14px; opacity: 0.95; }
    .info-item { text-align: center; }
    .info-label { display: block; font-size: 12px; opacity: 0.8; margin-bottom: 4px; }
    .info-value { font-weight: 600; font-size: 16px; }
    .content { padding: 24px; }
    .markdown { font-size: 14px; color: #1a1a1a; }
    .markdown h3 { font-size: 18px; font-weight: 700; margin: 18px 0 10px; }
    .markdown h4 { font-size: 16px; font-weight: 600; margin: 14px 0 8px; }
    .markdown p { margin: 8px 0; }
    .markdown ul { margin: 8px 0 8px 18px; }
    .markdown table { width: 100%; border-collapse: collapse; font-size: 13px; }
    .markdown th, .markdown td { border: 1px solid #e5e7eb; padding: 8px; text-align: left; }
    .section { margin-bottom: 24px; }
    .card { border: 1px solid #f0f0f0; border-radius: 10px; padding: 16px; margin: 12px 0; background:#fff; }
    .card-title { font-size: 15px; font-weight: 600; margin: 0 0 10px 0; color: #111827; }
    .meta { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; font-size: 13px; color: #555; margin-bottom: 8px; }
    .meta-item { background: #f8f9fa; border-radius: 6px; padding: 8px; }
    .meta-label { display:block; font-size:12px; opacity:.7; }
    .meta-value { font-weight:600; }
    .sub-title { font-size: 14px; font-weight: 600; color:#374151; margin: 10px 0 6px; }
    .list { margin: 0; padding-left: 18px; }
    .list li { margin: 4px 0; }
    .footer { margin-top: 32px; padding: 20px 24px; background: #f8f9fa; border-top: 1px solid #e5e7eb; text-align: center; }
    .footer-content { font-size: 13px; color: #6b7280; line-height: 1.6; }
    .footer-link { color: #4f46e5; text-decoration: none; font-weight: 500; transition: color 0.2s ease; }
    .footer-link:hover { color: #7c3aed; text-decoration: underline; }
    .project-name { font-weight: 600; color: #374151; }
    @media (max-width: 480px) {
        body { padding: 12px; }
        .header { padding: 24px 20px; }
        .content { padding: 20px; }
        .footer { padding: 16px 20px; }
        .header-info { grid-template-columns: 1fr; gap: 12px; }
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="save-buttons"><button class="save-btn" onclick="saveAsImage()">保存为图片</button></div>
      <div class="header-title">AI 深度分析报告</div>
      <div class="header-info">
        <div class="info-item">
          <span class="info-label">报告类型</span>
          <span class="info-value">当日深度分析</span>
        </div>
        <div class="info-item">
          <span class="info-label">数据来源</span>
          <span class="info-value">deepseek分析的 Markdown</span>
        </div>
        <div class="info-item">
          <span class="info-label">生成时间</span>
          <span class="info-value" id="gen-time">--:--</span>
        </div>
        <div class="info-item">
          <span class="info-label">版本</span>
          <span class="info-value">v1.0</span>
        </div>
      </div>
    </div>
    <div class="content"><div class="markdown">{{.Body}}</div></div>
    <div class="footer">
      <div class="footer-content">
        由 <span class="project-name">TrendRadar</span> 生成 ·
        <a href="https://github.com/sansan0/TrendRadar" target="_blank" class="footer-link">GitHub 开源项目</a>
      </div>
    </div>
  </div>
  <script>
  (function(){
    const el = document.getElementById('gen-time');
    const d = new Date();
    const v = (
      String(d.getMonth()+1).padStart(2,'0') + '-' +
      String(d.getDate()).padStart(2,'0') + ' ' +
      String(d.getHours()).padStart(2,'0') + ':' +
      String(d.getMinutes()).padStart(2,'0')
    );
    if (el) el.textContent = v;
  })();
  async function saveAsImage(){
    const button = event.target; const originalText = button.textContent;
    try {
      button.textContent = '生成中...'; button.disabled = true; window.scrollTo(0,0);
      await new Promise(r=>setTimeout(r,150)); const buttons = document.querySelector('.save-buttons'); buttons.style.visibility='hidden';
      await new Promise(r=>setTimeout(r,100)); const container = document.querySelector('.container');
      const canvas = await html2canvas(container, { backgroundColor: '#ffffff', scale: 1.5 });
      buttons.style.visibility='visible'; const link = document.createElement('a'); const now = new Date();
      const filename = 'TrendRadar_AI深度分析_' + now.getFullYear() + String(now.getMonth()+1).padStart(2,'0') + String(now.getDate()).padStart(2,'0') + '_' + String(now.getHours()).padStart(2,'0') + String(now.getMinutes()).padStart(2,'0') + '.png';
      link.download = filename; link.href = canvas.toDataURL('image/png', 1.0); document.body.appendChild(link); link.click(); document.body.removeChild(link);
      button.textContent = '保存成功!'; setTimeout(()=>{ button.textContent = originalText; button.disabled=false; }, 2000);
    } catch(e) { const buttons = document.querySelector('.save-buttons'); buttons.style.visibility='visible'; button.textContent = '保存失败'; setTimeout(()=>{ button.textContent = originalText; button.disabled=false; }, 2000); }
  }
  </script>
</body>
</html>
`
