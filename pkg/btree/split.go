package btree

import (
	"cmp"
	"slices"
)

// splitNode splits an over-threshold node and pushes the promoted separator
// into its parent. The cascade is an iterative walk up the parent chain so
// adversarial inputs cannot grow the call stack.
func (t *BTree[K, V]) splitNode(n *node[K, V]) {
	for n != nil {
		var sibling *node[K, V]
		var promoted K

		if n.leaf {
			sibling, promoted = t.splitLeaf(n)
		} else {
			sibling, promoted = splitInternal(n)
		}

		parent := n.parent
		if parent == nil {
			t.root = newRoot(promoted, n, sibling)
			return
		}

		// The sibling slots in immediately after the original node,
		// located by identity among the parent's children.
		pos := slices.Index(parent.children, n)
		parent.keys = slices.Insert(parent.keys, pos, promoted)
		parent.children = slices.Insert(parent.children, pos+1, sibling)
		sibling.parent = parent

		if len(parent.keys) < t.order {
			return
		}
		n = parent
	}
}

// splitLeaf moves the upper half of a leaf into a new sibling spliced into
// the leaf chain right after it. The promoted separator is the sibling's
// first key, which stays in the sibling.
func (t *BTree[K, V]) splitLeaf(n *node[K, V]) (*node[K, V], K) {
	mid := len(n.keys) / 2

	sibling := &node[K, V]{
		leaf:   true,
		keys:   slices.Clone(n.keys[mid:]),
		values: slices.Clone(n.values[mid:]),
		next:   n.next,
	}
	n.keys = n.keys[:mid]
	n.values = n.values[:mid]
	n.next = sibling

	t.leafCount++
	return sibling, sibling.keys[0]
}

// splitInternal promotes the middle key out of the node entirely: the left
// half keeps keys [0,mid) with children [0,mid], the sibling takes keys
// (mid,end) with children (mid+1,end). Moved children are reparented.
func splitInternal[K cmp.Ordered, V any](n *node[K, V]) (*node[K, V], K) {
	mid := len(n.keys) / 2
	promoted := n.keys[mid]

	sibling := &node[K, V]{
		keys:     slices.Clone(n.keys[mid+1:]),
		children: slices.Clone(n.children[mid+1:]),
	}
	for _, child := range sibling.children {
		child.parent = sibling
	}

	n.keys = n.keys[:mid]
	n.children = n.children[:mid+1]

	return sibling, promoted
}

// newRoot installs a fresh internal root over the two halves of a split
// parent-less node.
func newRoot[K cmp.Ordered, V any](promoted K, left, right *node[K, V]) *node[K, V] {
	root := &node[K, V]{
		keys:     []K{promoted},
		children: []*node[K, V]{left, right},
	}
	left.parent = root
	right.parent = root
	return root
}
