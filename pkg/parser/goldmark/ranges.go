package goldmark

import (
	"github.com/yaklabco/listtone/pkg/mdast"
	"github.com/yuin/goldmark/ast"
)

var noRange = mdast.SourceRange{StartOffset: -1, EndOffset: -1}

// blockRange returns the span of a leaf block's content lines.
func blockRange(gmNode ast.Node) mdast.SourceRange {
	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return noRange
	}

	first := lines.At(0)
	last := lines.At(lines.Len() - 1)

	return mdast.SourceRange{StartOffset: first.Start, EndOffset: last.Stop}
}

// segmentRange returns the span covered by an inline node's own segments.
// Nodes without segments of their own return an invalid range.
func segmentRange(gmNode ast.Node) mdast.SourceRange {
	switch n := gmNode.(type) {
	case *ast.Text:
		return mdast.SourceRange{StartOffset: n.Segment.Start, EndOffset: n.Segment.Stop}
	case *ast.RawHTML:
		r := noRange
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			r = r.Union(mdast.SourceRange{StartOffset: seg.Start, EndOffset: seg.Stop})
		}
		return r
	}
	return noRange
}

// childrenRange returns the union of the children's ranges.
func childrenRange(node *mdast.Node) mdast.SourceRange {
	r := noRange
	for child := node.FirstChild; child != nil; child = child.Next {
		r = r.Union(child.Range)
	}
	return r
}

// widenDelimiters grows r by up to width delimiter bytes on each side
// when the surrounding source holds the given delimiter.
func widenDelimiters(content []byte, r mdast.SourceRange, delim byte, width int) mdast.SourceRange {
	if !r.IsValid() {
		return r
	}

	start, end := r.StartOffset, r.EndOffset
	for i := 0; i < width && start > 0 && content[start-1] == delim; i++ {
		start--
	}
	for i := 0; i < width && end < len(content) && content[end] == delim; i++ {
		end++
	}

	return mdast.SourceRange{StartOffset: start, EndOffset: end}
}

// listItemStart finds the offset of the list marker that opens an item
// whose first child begins at contentStart.
//
// goldmark records positions for the item's content only. Scanning backward
// over the padding (and a blank first line) reaches the bullet character or
// the ordered number and its delimiter. If no marker is found the content
// start is returned unchanged.
func listItemStart(content []byte, contentStart int) int {
	if contentStart <= 0 || contentStart > len(content) {
		return contentStart
	}

	pos := contentStart
	for pos > 0 && isPadding(content[pos-1]) {
		pos--
	}
	if pos == 0 {
		return contentStart
	}

	switch content[pos-1] {
	case '-', '*', '+':
		return pos - 1
	case '.', ')':
		digits := pos - 1
		for digits > 0 && isDigit(content[digits-1]) {
			digits--
		}
		if digits < pos-1 {
			return digits
		}
	}

	return contentStart
}

func isPadding(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
