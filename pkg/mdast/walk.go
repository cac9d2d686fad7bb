package mdast

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return SkipChildren to skip the node's descendants, or any other
// non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// SkipChildren may be returned by a WalkFunc to skip the current node's children.
var SkipChildren = errors.New("skip children") //nolint:revive,staticcheck // sentinel, not a failure

// Walk performs a pre-order traversal of the AST starting at root.
// Nodes are visited in document order.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate, in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}
