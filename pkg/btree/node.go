package btree

import (
	"cmp"
	"slices"
)

// node is the single tagged variant backing both node kinds. The leaf flag
// discriminates: internal nodes use children, leaves use values and next.
// Keys are strictly ascending within a node; an internal node always holds
// exactly len(keys)+1 children.
type node[K cmp.Ordered, V any] struct {
	leaf   bool
	keys   []K
	parent *node[K, V]

	children []*node[K, V] // internal only

	values []V         // leaf only, parallel to keys
	next   *node[K, V] // leaf only, chain in key order
}

func newLeaf[K cmp.Ordered, V any]() *node[K, V] {
	return &node[K, V]{leaf: true}
}

// childFor returns the child to descend into for key. Traversal advances
// past any separator <= key, so a key equal to a separator routes into the
// right subtree. Both search and insert descend through here.
func (n *node[K, V]) childFor(key K) *node[K, V] {
	pos := 0
	for pos < len(n.keys) && key >= n.keys[pos] {
		pos++
	}
	return n.children[pos]
}

// insertKeyValue places the pair at its sorted position in the leaf.
// Returns false without mutating if the key is already present.
func (n *node[K, V]) insertKeyValue(key K, value V) bool {
	pos := 0
	for pos < len(n.keys) && key > n.keys[pos] {
		pos++
	}

	if pos < len(n.keys) && n.keys[pos] == key {
		return false
	}

	n.keys = slices.Insert(n.keys, pos, key)
	n.values = slices.Insert(n.values, pos, value)
	return true
}

// lookup scans the leaf for an exact key match.
func (n *node[K, V]) lookup(key K) (V, bool) {
	for i, k := range n.keys {
		if k == key {
			return n.values[i], true
		}
	}
	var zero V
	return zero, false
}
