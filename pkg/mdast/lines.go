package mdast

import "sort"

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// The last line may have no trailing newline; a trailing newline yields an empty final line.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// PositionAt converts a byte offset to a 1-based line and byte column.
// Offsets at or past the end of content map to the end of the last line.
// Returns the zero Position if the offset is negative or the file is empty.
func (f *FileSnapshot) PositionAt(offset int) Position {
	if offset < 0 || len(f.Lines) == 0 {
		return Position{}
	}

	if offset >= len(f.Content) {
		last := f.Lines[len(f.Lines)-1]
		return Position{Line: len(f.Lines), Column: offset - last.StartOffset + 1}
	}

	lineIdx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(f.Lines) {
		lineIdx = len(f.Lines) - 1
	}

	return Position{Line: lineIdx + 1, Column: offset - f.Lines[lineIdx].StartOffset + 1}
}

// RangePosition converts a byte range to line/column positions.
// Returns the zero SourcePosition for an invalid range.
func (f *FileSnapshot) RangePosition(r SourceRange) SourcePosition {
	if !r.IsValid() {
		return SourcePosition{}
	}
	start := f.PositionAt(r.StartOffset)
	end := f.PositionAt(r.EndOffset)
	return SourcePosition{
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     end.Line,
		EndColumn:   end.Column,
	}
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	lineInfo := f.Lines[line-1]
	return f.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}
