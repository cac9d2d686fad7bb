package lint

import (
	"fmt"

	"github.com/yaklabco/listtone/pkg/mdast"
)

// NodeHandler inspects a single node. Returning mdast.SkipChildren skips
// the node's descendants; any other error stops the dispatch.
type NodeHandler func(node *mdast.Node) error

// NodeHandlers maps node kinds to the handler invoked for every node of
// that kind. Kinds without a handler are walked but not inspected.
type NodeHandlers map[mdast.NodeKind]NodeHandler

// Dispatch walks the document in order and calls the handler registered
// for each node's kind.
func (rc *RuleContext) Dispatch(handlers NodeHandlers) error {
	if rc.Root == nil || len(handlers) == 0 {
		return nil
	}

	err := mdast.Walk(rc.Root, func(node *mdast.Node) error {
		if rc.Cancelled() {
			return fmt.Errorf("dispatch cancelled: %w", rc.Ctx.Err())
		}
		if handler, ok := handlers[node.Kind]; ok {
			return handler(node)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	return nil
}

// LocateRange converts the half-open byte range [start, end), given relative
// to the start of node's source text, into a file position. Offsets are
// clamped to the node's text. An invalid position is returned for nodes
// without source.
func (rc *RuleContext) LocateRange(node *mdast.Node, start, end int) mdast.SourcePosition {
	if node == nil || rc.File == nil {
		return mdast.SourcePosition{}
	}

	r := node.SourceRange()
	if !r.IsValid() {
		return mdast.SourcePosition{}
	}

	return rc.File.RangePosition(r.Sub(start, end))
}
