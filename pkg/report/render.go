package report

// NodeKind 渲染节点类型
type NodeKind int

const (
	NodeHeading NodeKind = iota
	NodeList
	NodeTable
	NodeRule
	NodeParagraph
	NodeCard
)

// Node 文档中的一个可寻址渲染节点。卡片化引擎在有序节点切片上按下标
// 前向遍历并整段改写，不存在遍历中修改活动树的问题。
type Node struct {
	Kind  NodeKind
	Level int
	Text  string
	Items []string
	Rows  [][]string
	Card  *Card
}

// MetaField 卡片两列摘要区中的一个带标签字段
type MetaField struct {
	Label string
	Value string
}

// CardList 卡片内的子列表；Label 为空时直接承载原列表
type CardList struct {
	Label string
	Items []string
}

// Card 由一段相邻节点归并而成的可视卡片
type Card struct {
	Title     string
	Meta      []MetaField
	NoteLabel string
	NoteText  string
	Text      string
	Lists     []CardList
}

// RenderBlocks 将区块一比一映射为渲染节点，保持原有顺序，不做任何跨区块处理。
func RenderBlocks(blocks []Block) []Node {
	nodes := make([]Node, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case BlockHeading:
			nodes = append(nodes, Node{Kind: NodeHeading, Level: b.Level, Text: b.Text})
		case BlockList:
			nodes = append(nodes, Node{Kind: NodeList, Items: b.Items})
		case BlockTable:
			nodes = append(nodes, Node{Kind: NodeTable, Rows: b.Rows})
		case BlockRule:
			nodes = append(nodes, Node{Kind: NodeRule})
		case BlockParagraph:
			nodes = append(nodes, Node{Kind: NodeParagraph, Text: b.Text})
		}
	}
	return nodes
}

func isH3(n Node) bool {
	return n.Kind == NodeHeading && n.Level == 3
}
