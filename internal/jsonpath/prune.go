package jsonpath

import "github.com/jasondoong/formiko/internal/models"

// Prune builds a new tree containing only the matched nodes and their
// ancestor containers. Siblings off every match path are dropped; a matched
// node keeps its entire subtree. If any match is the root itself there is
// nothing to prune below it and the original tree is returned unchanged.
// With no matches Prune returns nil.
func Prune(doc models.Value, matches []Match) models.Value {
	if len(matches) == 0 {
		return nil
	}

	keep := &keepNode{}
	for _, m := range matches {
		if len(m.Path) == 0 {
			return doc
		}
		keep.insert(m.Path)
	}

	return copyKept(doc, keep)
}

// keepNode is a trie over path segments marking which branches survive.
type keepNode struct {
	children map[models.Segment]*keepNode
	terminal bool
}

func (k *keepNode) insert(p models.Path) {
	cur := k
	for _, seg := range p {
		if cur.terminal {
			// An ancestor is already kept wholesale.
			return
		}
		if cur.children == nil {
			cur.children = make(map[models.Segment]*keepNode)
		}
		child := cur.children[seg]
		if child == nil {
			child = &keepNode{}
			cur.children[seg] = child
		}
		cur = child
	}
	cur.terminal = true
	cur.children = nil
}

func copyKept(v models.Value, k *keepNode) models.Value {
	if k.terminal {
		return v
	}
	switch node := v.(type) {
	case *models.Object:
		out := &models.Object{}
		for _, m := range node.Members {
			child := k.children[models.Field(m.Key)]
			if child == nil {
				continue
			}
			if kept := copyKept(m.Value, child); kept != nil {
				out.Members = append(out.Members, models.Member{Key: m.Key, Value: kept})
			}
		}
		if len(out.Members) == 0 {
			return nil
		}
		return out
	case *models.Array:
		out := &models.Array{}
		for i, el := range node.Elements {
			child := k.children[models.Index(i)]
			if child == nil {
				continue
			}
			if kept := copyKept(el, child); kept != nil {
				out.Elements = append(out.Elements, kept)
			}
		}
		if len(out.Elements) == 0 {
			return nil
		}
		return out
	default:
		// A scalar below a non-terminal trie node cannot satisfy the
		// remaining segments.
		return nil
	}
}
