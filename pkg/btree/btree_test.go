package btree

import (
	"math/rand"
	"testing"
)

// checkInvariants walks the whole tree and fails the test on any structural
// violation: child/key arity, parent back-references, key ordering, and the
// order bound.
func checkInvariants(t *testing.T, tree *BTree[int64, int64]) {
	t.Helper()
	var walk func(n *node[int64, int64])
	walk = func(n *node[int64, int64]) {
		if len(n.keys) >= tree.order {
			t.Fatalf("node holds %d keys, order is %d", len(n.keys), tree.order)
		}
		for i := 1; i < len(n.keys); i++ {
			if n.keys[i-1] >= n.keys[i] {
				t.Fatalf("keys out of order: %v", n.keys)
			}
		}

		if n.leaf {
			if len(n.values) != len(n.keys) {
				t.Fatalf("leaf has %d keys but %d values", len(n.keys), len(n.values))
			}
			return
		}

		if len(n.children) != len(n.keys)+1 {
			t.Fatalf("internal node has %d keys but %d children", len(n.keys), len(n.children))
		}
		for _, child := range n.children {
			if child.parent != n {
				t.Fatalf("child parent pointer does not match")
			}
			walk(child)
		}
	}
	walk(tree.root)
}

// chainKeys collects every key by walking the leaf chain left to right.
func chainKeys(tree *BTree[int64, int64]) []int64 {
	var keys []int64
	for n := tree.firstLeaf(); n != nil; n = n.next {
		keys = append(keys, n.keys...)
	}
	return keys
}

func TestEmptyTreeSearch(t *testing.T) {
	tree := New[int64, int64](DefaultOrder)

	if _, found := tree.Search(42); found {
		t.Error("expected absent result on empty tree")
	}
	if tree.Len() != 0 {
		t.Errorf("expected empty tree, got %d keys", tree.Len())
	}
}

func TestInsertAndSearch(t *testing.T) {
	tree := New[int64, int64](DefaultOrder)

	keys := []int64{15, 3, 27, 8, 42, 1, 99}
	for _, k := range keys {
		if !tree.Insert(k, k*10) {
			t.Fatalf("insert of %d failed", k)
		}
	}

	for _, k := range keys {
		v, found := tree.Search(k)
		if !found {
			t.Fatalf("key %d not found after insert", k)
		}
		if v != k*10 {
			t.Errorf("key %d: expected value %d, got %d", k, k*10, v)
		}
	}

	if _, found := tree.Search(1000); found {
		t.Error("expected absent result for never-inserted key")
	}
	checkInvariants(t, tree)
}

func TestDuplicateInsertRejected(t *testing.T) {
	tree := New[int64, int64](DefaultOrder)

	if !tree.Insert(7, 70) {
		t.Fatal("first insert failed")
	}
	if tree.Insert(7, 700) {
		t.Fatal("duplicate insert succeeded")
	}

	if tree.Len() != 1 {
		t.Errorf("expected 1 key, got %d", tree.Len())
	}
	if v, _ := tree.Search(7); v != 70 {
		t.Errorf("duplicate insert mutated value: got %d", v)
	}
}

func TestSequentialSplit(t *testing.T) {
	tree := New[int64, int64](4)

	// The 4th insert fills the leaf and splits it.
	for k := int64(1); k <= 4; k++ {
		tree.Insert(k, k)
	}

	if tree.root.leaf {
		t.Fatal("expected internal root after split")
	}
	if len(tree.root.keys) != 1 || tree.root.keys[0] != 3 {
		t.Fatalf("expected root keys [3], got %v", tree.root.keys)
	}

	left, right := tree.root.children[0], tree.root.children[1]
	if got := left.keys; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected left leaf [1 2], got %v", got)
	}
	if got := right.keys; len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("expected right leaf [3 4], got %v", got)
	}
	if tree.LeafCount() != 2 {
		t.Errorf("expected 2 leaves, got %d", tree.LeafCount())
	}

	// 5 lands in the [3 4] leaf; three keys stay under the threshold.
	tree.Insert(5, 5)
	if got := right.keys; len(got) != 3 || got[2] != 5 {
		t.Errorf("expected right leaf [3 4 5], got %v", got)
	}
	if tree.LeafCount() != 2 {
		t.Errorf("insert of 5 should not split, leaves: %d", tree.LeafCount())
	}

	want := []int64{1, 2, 3, 4, 5}
	got := chainKeys(tree)
	if len(got) != len(want) {
		t.Fatalf("leaf chain has %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("leaf chain %v, want %v", got, want)
		}
	}
	checkInvariants(t, tree)
}

func TestSeparatorKeyRoutesRight(t *testing.T) {
	tree := New[int64, int64](4)
	for k := int64(1); k <= 4; k++ {
		tree.Insert(k, k)
	}

	// 3 is the promoted separator; it lives in the right leaf and must be
	// reachable through the same routing at search time.
	v, found := tree.Search(3)
	if !found || v != 3 {
		t.Fatalf("separator key 3 not found (found=%v v=%d)", found, v)
	}

	// Re-inserting the separator must also route to the right leaf and
	// be rejected there.
	if tree.Insert(3, 33) {
		t.Fatal("re-insert of separator key succeeded")
	}
}

func TestDescendingInsert(t *testing.T) {
	tree := New[int64, int64](4)

	for k := int64(100); k >= 1; k-- {
		if !tree.Insert(k, k) {
			t.Fatalf("insert of %d failed", k)
		}
	}

	checkInvariants(t, tree)
	keys := chainKeys(tree)
	if len(keys) != 100 {
		t.Fatalf("expected 100 keys in chain, got %d", len(keys))
	}
	for i, k := range keys {
		if k != int64(i+1) {
			t.Fatalf("chain position %d: expected %d, got %d", i, i+1, k)
		}
	}
}

func TestRandomInsertChainSorted(t *testing.T) {
	tree := New[int64, int64](4)
	rng := rand.New(rand.NewSource(1))

	const n = 500
	for _, k := range rng.Perm(n) {
		if !tree.Insert(int64(k), int64(k)) {
			t.Fatalf("insert of %d failed", k)
		}
	}

	checkInvariants(t, tree)

	keys := chainKeys(tree)
	if len(keys) != n {
		t.Fatalf("chain has %d keys, want %d", len(keys), n)
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("chain not strictly ascending at %d: %d >= %d", i, keys[i-1], keys[i])
		}
	}
	if tree.Len() != n {
		t.Errorf("Len() = %d, want %d", tree.Len(), n)
	}
}

func TestCascadingSplits(t *testing.T) {
	tree := New[int64, int64](4)

	// Sequential inserts keep splitting the rightmost path; enough of
	// them force multi-level parent splits.
	const n = 1000
	for k := int64(0); k < n; k++ {
		tree.Insert(k, k)
	}

	checkInvariants(t, tree)
	for k := int64(0); k < n; k++ {
		if _, found := tree.Search(k); !found {
			t.Fatalf("key %d lost after cascading splits", k)
		}
	}
	if _, found := tree.Search(n); found {
		t.Error("expected absent result past the inserted range")
	}
}

func TestConfigurableOrder(t *testing.T) {
	tree := New[int64, int64](8)
	for k := int64(1); k <= 7; k++ {
		tree.Insert(k, k)
	}
	if !tree.root.leaf {
		t.Fatal("7 keys at order 8 should still fit the root leaf")
	}

	tree.Insert(8, 8)
	if tree.root.leaf {
		t.Fatal("8th key at order 8 should split the root leaf")
	}
	checkInvariants(t, tree)
}

func TestDumpShape(t *testing.T) {
	tree := New[int64, int64](4)
	for k := int64(1); k <= 4; k++ {
		tree.Insert(k, k)
	}

	want := "I[3]\nL[1 2] L[3 4]\n"
	if got := tree.Dump(); got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}
