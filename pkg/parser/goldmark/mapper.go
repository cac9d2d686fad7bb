package goldmark

import (
	"github.com/yaklabco/listtone/pkg/mdast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
// Ranges are filled in bottom-up: leaves take them from goldmark segments,
// containers from the union of their children.
type mapper struct {
	content []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
// The document spans the whole file.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	mdast.SetRange(doc, 0, len(m.content))
	return doc
}

// mapChildren maps all children of a goldmark node and appends them to parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		node := m.mapNode(child)
		if node == nil {
			continue
		}
		mdast.AppendChild(parent, node)

		// goldmark marks line breaks on the preceding text node.
		if text, ok := child.(*ast.Text); ok {
			if brk := m.lineBreak(text); brk != nil {
				mdast.AppendChild(parent, brk)
			}
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Level = gmn.Level
		m.mapLeafBlock(gmn, node)

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewNode(mdast.NodeParagraph)
		m.mapLeafBlock(gmNode, node)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = m.mapListItem(gmn)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapContainer(gmNode, node)

	case *ast.FencedCodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		if gmn.Info != nil {
			node.Ext = map[string]any{"info": string(gmn.Info.Value(m.content))}
		}
		node.Range = blockRange(gmn)

	case *ast.CodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		node.Ext = map[string]any{"indented": true}
		node.Range = blockRange(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)
		node.Range = blockRange(gmn)

	// Inline-level nodes.
	case *ast.Text:
		node = mdast.NewNode(mdast.NodeText)
		node.Literal = gmn.Value(m.content)
		node.Range = segmentRange(gmn)

	case *ast.String:
		node = mdast.NewNode(mdast.NodeText)
		node.Literal = gmn.Value

	case *ast.Emphasis:
		node = m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = mdast.NewNode(mdast.NodeLink)
		node.Ext = map[string]any{"destination": string(gmn.Destination)}
		m.mapContainer(gmn, node)

	case *ast.Image:
		node = mdast.NewNode(mdast.NodeImage)
		node.Ext = map[string]any{"destination": string(gmn.Destination)}
		m.mapContainer(gmn, node)

	case *ast.AutoLink:
		node = mdast.NewNode(mdast.NodeLink)
		node.Ext = map[string]any{"destination": string(gmn.URL(m.content)), "autolink": true}
		label := mdast.NewNode(mdast.NodeText)
		label.Literal = gmn.Label(m.content)
		mdast.AppendChild(node, label)

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)
		node.Range = segmentRange(gmn)

	// GFM extension nodes.
	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeEmphasis)
		node.Ext = map[string]any{"strikethrough": true}
		m.mapContainer(gmn, node)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeText)
		node.Ext = map[string]any{"taskCheckbox": true, "checked": gmn.IsChecked}

	case *east.Table:
		node = mdast.NewNode(mdast.NodeTable)
		m.mapContainer(gmn, node)

	case *east.TableHeader:
		node = m.mapTablePart(gmn, "tableHeader")

	case *east.TableRow:
		node = m.mapTablePart(gmn, "tableRow")

	case *east.TableCell:
		node = m.mapTablePart(gmn, "tableCell")

	default:
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapContainer(gmNode, node)
	}

	return node
}

// mapLeafBlock maps the inline children of a leaf block. The block's range
// comes from its content lines.
func (m *mapper) mapLeafBlock(gmNode ast.Node, node *mdast.Node) {
	m.mapChildren(gmNode, node)
	node.Range = blockRange(gmNode).Union(childrenRange(node))
}

// mapContainer maps children and spans the container over them.
func (m *mapper) mapContainer(gmNode ast.Node, node *mdast.Node) {
	m.mapChildren(gmNode, node)
	node.Range = childrenRange(node)
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	attrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if !list.IsOrdered() {
		attrs.BulletMarker = string(list.Marker)
	}
	node.List = attrs

	m.mapContainer(list, node)
	return node
}

// mapListItem converts a goldmark ListItem. The item starts at its marker
// and ends where its last descendant ends, so nested lists are included.
// An item without content keeps an invalid range.
func (m *mapper) mapListItem(item *ast.ListItem) *mdast.Node {
	node := mdast.NewNode(mdast.NodeListItem)
	m.mapChildren(item, node)

	r := childrenRange(node)
	if !r.IsValid() {
		return node
	}

	r.StartOffset = listItemStart(m.content, r.StartOffset)
	node.Range = r
	return node
}

// mapEmphasis converts a goldmark Emphasis node, widening the range over
// the surrounding delimiters.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	kind := mdast.NodeEmphasis
	if emphasis.Level == 2 {
		kind = mdast.NodeStrong
	}

	node := mdast.NewNode(kind)
	node.Level = emphasis.Level
	m.mapChildren(emphasis, node)

	r := childrenRange(node)
	if r.IsValid() && r.StartOffset > 0 {
		r = widenDelimiters(m.content, r, m.content[r.StartOffset-1], emphasis.Level)
	}
	node.Range = r
	return node
}

// mapCodeSpan converts a goldmark CodeSpan, collecting its text.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	r := noRange
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			node.Literal = append(node.Literal, textNode.Value(m.content)...)
			r = r.Union(segmentRange(textNode))
		}
	}
	node.Range = r
	return node
}

// mapTablePart converts GFM table headers, rows and cells.
func (m *mapper) mapTablePart(gmNode ast.Node, marker string) *mdast.Node {
	node := mdast.NewNode(mdast.NodeRaw)
	node.Ext = map[string]any{marker: true}
	if cell, ok := gmNode.(*east.TableCell); ok {
		node.Ext["alignment"] = cell.Alignment.String()
		m.mapLeafBlock(gmNode, node)
		return node
	}
	m.mapContainer(gmNode, node)
	return node
}

// lineBreak returns a break node for a text node that ends a line, or nil.
func (m *mapper) lineBreak(text *ast.Text) *mdast.Node {
	switch {
	case text.HardLineBreak():
		return mdast.NewNode(mdast.NodeHardBreak)
	case text.SoftLineBreak():
		return mdast.NewNode(mdast.NodeSoftBreak)
	}
	return nil
}
