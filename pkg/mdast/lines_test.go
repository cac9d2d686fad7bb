package mdast_test

import (
	"reflect"
	"testing"

	"github.com/yaklabco/listtone/pkg/mdast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []mdast.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []mdast.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with LF",
			content: "hello\n",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "CRLF endings",
			content: "a\r\nb\r\n",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 4, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := mdast.BuildLines([]byte(tc.content))
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("BuildLines(%q) = %+v, want %+v", tc.content, got, tc.expected)
			}
		})
	}
}

func TestPositionAt(t *testing.T) {
	t.Parallel()

	file := mdast.NewFileSnapshot("test.md", []byte("- one\n- two 🚀\n"))

	tests := []struct {
		offset int
		want   mdast.Position
	}{
		{offset: 0, want: mdast.Position{Line: 1, Column: 1}},
		{offset: 5, want: mdast.Position{Line: 1, Column: 6}},
		{offset: 6, want: mdast.Position{Line: 2, Column: 1}},
		{offset: 12, want: mdast.Position{Line: 2, Column: 7}},
		// Columns count bytes; the rocket is four bytes wide.
		{offset: 16, want: mdast.Position{Line: 2, Column: 11}},
		{offset: 100, want: mdast.Position{Line: 3, Column: 84}},
		{offset: -1, want: mdast.Position{}},
	}

	for _, tc := range tests {
		if got := file.PositionAt(tc.offset); got != tc.want {
			t.Errorf("PositionAt(%d) = %+v, want %+v", tc.offset, got, tc.want)
		}
	}
}

func TestRangePosition(t *testing.T) {
	t.Parallel()

	file := mdast.NewFileSnapshot("test.md", []byte("intro\n- **Summary**: text\n"))

	pos := file.RangePosition(mdast.SourceRange{StartOffset: 6, EndOffset: 20})
	want := mdast.SourcePosition{StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 15}
	if pos != want {
		t.Errorf("RangePosition = %+v, want %+v", pos, want)
	}

	if got := file.RangePosition(mdast.SourceRange{StartOffset: -1, EndOffset: -1}); got.IsValid() {
		t.Errorf("invalid range produced valid position %+v", got)
	}
}

func TestLineContent(t *testing.T) {
	t.Parallel()

	file := mdast.NewFileSnapshot("test.md", []byte("first\r\nsecond"))

	if got := string(file.LineContent(1)); got != "first" {
		t.Errorf("line 1 = %q", got)
	}
	if got := string(file.LineContent(2)); got != "second" {
		t.Errorf("line 2 = %q", got)
	}
	if got := file.LineContent(3); got != nil {
		t.Errorf("line 3 = %q, want nil", got)
	}
}
