package mdast

// SourceRange represents a half-open byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsValid reports whether the range refers to real source.
func (r SourceRange) IsValid() bool {
	return r.StartOffset >= 0 && r.EndOffset >= r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Sub returns the range [start, end) relative to r, expressed in file offsets.
// The result is clamped to r.
func (r SourceRange) Sub(start, end int) SourceRange {
	start = min(max(start, 0), r.Len())
	end = min(max(end, start), r.Len())
	return SourceRange{StartOffset: r.StartOffset + start, EndOffset: r.StartOffset + end}
}

// Union returns the smallest range covering both r and other.
// Invalid ranges are ignored.
func (r SourceRange) Union(other SourceRange) SourceRange {
	if !r.IsValid() {
		return other
	}
	if !other.IsValid() {
		return r
	}
	return SourceRange{
		StartOffset: min(r.StartOffset, other.StartOffset),
		EndOffset:   max(r.EndOffset, other.EndOffset),
	}
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition represents a range in terms of line/column positions.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if both start and end positions are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.Start().IsValid() && sp.End().IsValid()
}

// IsSingleLine returns true if start and end are on the same line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}

// SourceRange returns the byte range for this node, or an invalid range
// if the node has no associated file.
func (n *Node) SourceRange() SourceRange {
	if n.File == nil || !n.Range.IsValid() || n.Range.EndOffset > len(n.File.Content) {
		return SourceRange{StartOffset: -1, EndOffset: -1}
	}
	return n.Range
}

// SourcePosition returns the line/column range for this node.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil {
		return SourcePosition{}
	}
	return n.File.RangePosition(n.SourceRange())
}

// Text returns the source text for this node.
// Returns nil if the node has no associated file or range.
func (n *Node) Text() []byte {
	r := n.SourceRange()
	if !r.IsValid() {
		return nil
	}
	return n.File.Content[r.StartOffset:r.EndOffset]
}
