// Package btree implements an in-memory B+ tree: sorted keys, values stored
// only in leaves, and leaves chained left-to-right in key order. Nodes split
// once their key count reaches the configured order, and splits cascade up
// through parent links.
//
// The tree is not safe for concurrent use; callers embedding it in a
// multi-threaded host must serialize access externally.
package btree

import (
	"cmp"
	"fmt"
	"strings"
)

// DefaultOrder is the maximum number of keys a node may hold before it
// must split.
const DefaultOrder = 4

// BTree is a B+ tree mapping keys of an ordered type to values.
type BTree[K cmp.Ordered, V any] struct {
	root      *node[K, V]
	order     int
	size      int
	leafCount int
}

// New creates an empty tree whose nodes split on reaching order keys.
// Orders below 3 fall back to DefaultOrder.
func New[K cmp.Ordered, V any](order int) *BTree[K, V] {
	if order < 3 {
		order = DefaultOrder
	}
	return &BTree[K, V]{
		root:      newLeaf[K, V](),
		order:     order,
		leafCount: 1,
	}
}

// Search descends from the root to the leaf that would hold key and scans
// it for an exact match. The second return is false if the key is absent.
func (t *BTree[K, V]) Search(key K) (V, bool) {
	return t.findLeaf(key).lookup(key)
}

// Insert adds a key-value pair, returning false without mutation if the key
// already exists. A leaf reaching the order threshold is split, and the
// split cascades upward as far as needed.
func (t *BTree[K, V]) Insert(key K, value V) bool {
	leaf := t.findLeaf(key)
	if !leaf.insertKeyValue(key, value) {
		return false
	}
	t.size++

	if len(leaf.keys) >= t.order {
		t.splitNode(leaf)
	}
	return true
}

// Len returns the number of stored keys.
func (t *BTree[K, V]) Len() int {
	return t.size
}

// LeafCount returns the number of leaf nodes.
func (t *BTree[K, V]) LeafCount() int {
	return t.leafCount
}

// Order returns the split threshold this tree was built with.
func (t *BTree[K, V]) Order() int {
	return t.order
}

// findLeaf walks from the root to the leaf responsible for key.
func (t *BTree[K, V]) findLeaf(key K) *node[K, V] {
	n := t.root
	for !n.leaf {
		n = n.childFor(key)
	}
	return n
}

// firstLeaf returns the head of the leaf chain.
func (t *BTree[K, V]) firstLeaf() *node[K, V] {
	n := t.root
	for !n.leaf {
		n = n.children[0]
	}
	return n
}

// Dump renders the tree level by level for diagnostics: I[...] for internal
// nodes, L[...] for leaves. Not a machine-readable format.
func (t *BTree[K, V]) Dump() string {
	var b strings.Builder
	level := []*node[K, V]{t.root}

	for len(level) > 0 {
		var next []*node[K, V]
		parts := make([]string, 0, len(level))
		for _, n := range level {
			tag := "I"
			if n.leaf {
				tag = "L"
			}
			parts = append(parts, fmt.Sprintf("%s%v", tag, n.keys))
			next = append(next, n.children...)
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
		level = next
	}

	return b.String()
}
