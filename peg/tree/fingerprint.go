package tree

import (
	"github.com/cnf/structhash"
)

// shape is the part of a node which is relevant for structural comparison.
// structhash considers exported fields only.
type shape struct {
	Label    string
	From, To int
	Text     string
	Children []shape
}

func shapeOf(n *Node) shape {
	s := shape{
		Label: n.Label,
		From:  n.Span.From(),
		To:    n.Span.To(),
	}
	if n.IsLeaf() {
		s.Text = n.Text
	}
	for _, ch := range n.Children {
		s.Children = append(s.Children, shapeOf(ch))
	}
	return s
}

// Fingerprint returns a hash of the structure of a (sub-)tree: labels,
// spans and the text of leaves. Structurally equal trees have equal
// fingerprints. User values are not considered.
func Fingerprint(n *Node) string {
	if n == nil {
		return ""
	}
	h, err := structhash.Hash(shapeOf(n), 1)
	if err != nil {
		tracer().Errorf("cannot compute fingerprint of tree: %v", err)
		return ""
	}
	return h
}
