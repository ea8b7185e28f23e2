// Package exhash implements an extendible hash table: a resizable directory
// of bucket references indexed by the low-order bits of a fixed hash, with
// buckets that split independently and a directory that doubles only when a
// splitting bucket's local depth has caught up with the global depth.
//
// Buckets are persisted best-effort through a BucketStore; persistence
// failures are logged and never affect the in-memory structure. The table is
// not safe for concurrent use.
package exhash

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"strings"

	"keydex/pkg/logging"
	"keydex/pkg/utils/functools"
)

const (
	// DefaultBucketCapacity is the number of items a bucket holds before
	// an insert into it forces a split.
	DefaultBucketCapacity = 2

	// DefaultGlobalDepth is the initial number of hash bits used to index
	// the directory.
	DefaultGlobalDepth = 1

	// maxInsertAttempts bounds the split-and-retry loop so a pathological
	// key set cannot spin forever.
	maxInsertAttempts = 10
)

// BucketStore persists bucket blobs keyed by bucket identity, plus one
// table-level metadata blob. Implementations live in pkg/store.
type BucketStore interface {
	PutBucket(id uint64, data []byte) error
	GetBucket(id uint64) ([]byte, error)
	PutMeta(data []byte) error
	GetMeta() ([]byte, error)
}

// Table is the extendible hash table. The directory always has length
// 2^globalDepth; multiple slots may alias the same bucket.
type Table struct {
	globalDepth  int
	capacity     int
	directory    []*bucket
	nextBucketID uint64
	store        BucketStore
	hashFn       func(int64) uint32
	log          *slog.Logger
}

// New creates a table with one initial bucket referenced by every directory
// slot. store may be nil for a purely in-memory table. Non-positive
// capacity or depth fall back to the defaults.
func New(capacity, globalDepth int, store BucketStore) *Table {
	if capacity <= 0 {
		capacity = DefaultBucketCapacity
	}
	if globalDepth < 1 {
		globalDepth = DefaultGlobalDepth
	}

	t := &Table{
		globalDepth: globalDepth,
		capacity:    capacity,
		directory:   make([]*bucket, 1<<globalDepth),
		store:       store,
		hashFn:      hashKey,
		log:         logging.WithComponent("exhash"),
	}

	initial := newBucket(t.nextBucketID, capacity, globalDepth, 0, 0)
	t.nextBucketID++
	for i := range t.directory {
		t.directory[i] = initial
	}

	t.saveBucket(initial)
	t.saveMeta()
	return t
}

// hashKey is the fixed directory hash: FNV-1a over the 8 little-endian
// bytes of the key. It is deliberately not the runtime's map hash, so that
// persisted bucket placement stays reproducible across processes.
func hashKey(key int64) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	h := fnv.New32a()
	h.Write(buf[:])
	return h.Sum32()
}

// dirIndex selects a directory slot from the low globalDepth bits of the
// key's hash.
func (t *Table) dirIndex(key int64) int {
	mask := uint32(1)<<t.globalDepth - 1
	return int(t.hashFn(key) & mask)
}

// Search returns the value stored for key, or false if absent. No side
// effects.
func (t *Table) Search(key int64) (int64, bool) {
	b := t.directory[t.dirIndex(key)]
	v, ok := b.items[key]
	return v, ok
}

// Insert adds a key-value pair, returning false without mutation if the key
// is already present. A full target bucket is split and the insert retried;
// the retry loop is bounded, and exhausting it reports failure.
func (t *Table) Insert(key, value int64) bool {
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		index := t.dirIndex(key)
		b := t.directory[index]

		if b.contains(key) {
			return false
		}

		if b.insert(key, value) {
			t.saveBucket(b)
			return true
		}

		t.splitBucket(index)
	}

	t.log.Warn("insert abandoned after repeated splits", "key", key, "attempts", maxInsertAttempts)
	return false
}

// splitBucket partitions the bucket behind the given slot between itself
// and a new sibling of deeper local depth, growing the directory first when
// the bucket's local depth has already reached the global depth.
func (t *Table) splitBucket(index int) {
	old := t.directory[index]

	if old.localDepth >= t.globalDepth {
		t.growDirectory()
	}

	old.localDepth++

	// The newly significant bit decides which aliasing slots move to the
	// sibling; both halves record it in their slot filters.
	bit := uint32(1) << (old.localDepth - 1)
	old.mask |= bit

	sibling := newBucket(t.nextBucketID, t.capacity, old.localDepth, old.mask, old.bits|bit)
	t.nextBucketID++

	for i, b := range t.directory {
		if b == old && uint32(i)&bit != 0 {
			t.directory[i] = sibling
		}
	}

	// Redistribute under the deeper depth: each item re-hashes to
	// whichever bucket the directory now maps its slot to.
	for k, v := range old.takeItems() {
		t.directory[t.dirIndex(k)].put(k, v)
	}

	t.saveBucket(old)
	t.saveBucket(sibling)
	t.saveMeta()
}

// growDirectory doubles the directory, the upper half mirroring the lower
// slot-for-slot, and deepens the global depth by one.
func (t *Table) growDirectory() {
	t.directory = append(t.directory, t.directory...)
	t.globalDepth++
	t.saveMeta()
}

// GlobalDepth returns the number of hash bits currently indexing the
// directory.
func (t *Table) GlobalDepth() int {
	return t.globalDepth
}

// DirectorySize returns the directory length, always 2^GlobalDepth.
func (t *Table) DirectorySize() int {
	return len(t.directory)
}

// Len returns the number of stored keys.
func (t *Table) Len() int {
	return functools.Reduce(t.uniqueBuckets(), 0, func(n int, b *bucket) int {
		return n + len(b.items)
	})
}

// BucketCount returns the number of distinct buckets reachable from the
// directory.
func (t *Table) BucketCount() int {
	return len(t.uniqueBuckets())
}

func (t *Table) uniqueBuckets() []*bucket {
	seen := make(map[uint64]*bucket)
	var order []uint64
	for _, b := range t.directory {
		if _, ok := seen[b.id]; !ok {
			seen[b.id] = b
			order = append(order, b.id)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	buckets := make([]*bucket, 0, len(order))
	for _, id := range order {
		buckets = append(buckets, seen[id])
	}
	return buckets
}

// Dump renders the directory and bucket contents for diagnostics. Not a
// machine-readable format.
func (t *Table) Dump() string {
	var b strings.Builder

	fmt.Fprintf(&b, "global depth: %d\n", t.globalDepth)
	for i, bk := range t.directory {
		fmt.Fprintf(&b, "dir[%d] -> bucket-%d\n", i, bk.id)
	}

	for _, bk := range t.uniqueBuckets() {
		fmt.Fprintf(&b, "bucket-%d (local depth %d):", bk.id, bk.localDepth)
		if len(bk.items) == 0 {
			b.WriteString(" empty\n")
			continue
		}

		keys := make([]int64, 0, len(bk.items))
		for k := range bk.items {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			fmt.Fprintf(&b, " %d=%d", k, bk.items[k])
		}
		b.WriteString("\n")
	}

	return b.String()
}

// saveBucket persists a bucket blob. Persistence is best-effort: failures
// are logged and the in-memory table proceeds.
func (t *Table) saveBucket(b *bucket) {
	if t.store == nil {
		return
	}
	if err := t.store.PutBucket(b.id, encodeBucket(b)); err != nil {
		logging.WithBucket(b.id).Warn("bucket save failed", "error", err)
	}
}

// saveMeta persists the table-level metadata blob (global depth and the
// next bucket identity).
func (t *Table) saveMeta() {
	if t.store == nil {
		return
	}
	if err := t.store.PutMeta(encodeMeta(t.globalDepth, t.nextBucketID)); err != nil {
		t.log.Warn("metadata save failed", "error", err)
	}
}
